package cfdf

// DriverActivity is the tachograph working-state of the driver
type DriverActivity string

const (
	DriverActivityRest      DriverActivity = "REST"
	DriverActivityAvailable DriverActivity = "AVAILABLE"
	DriverActivityWork      DriverActivity = "WORK"
	DriverActivityDriving   DriverActivity = "DRIVING"
)

// DriverActivityFromCode maps the numeric tachograph status codes onto a
// DriverActivity. Codes outside 0..3 come back as AVAILABLE
func DriverActivityFromCode(code int) DriverActivity {
	switch code {
	case 0:
		return DriverActivityRest
	case 1:
		return DriverActivityAvailable
	case 2:
		return DriverActivityWork
	case 3:
		return DriverActivityDriving
	default:
		return DriverActivityAvailable
	}
}
