package loctracker

// Raw records as the LocTracker field service REST API returns them.
// Every pointer field is optional in the upstream JSON

type Device struct {
	ID                 int64  `json:"id"`
	Number             string `json:"number"`
	RegistrationNumber string `json:"registrationNumber"`
	Name               string `json:"name"`
	GroupName          string `json:"groupName"`
	DriverPhone        string `json:"driverPhone"`
}

type Position struct {
	DeviceNumber  string   `json:"deviceNumber"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	Speed         *float64 `json:"speed"`
	IgnitionState string   `json:"ignitionState"`
	Address       string   `json:"address"`
	LastMessage   string   `json:"lastMessage"`
}

type DriveTime struct {
	Duration          int `json:"duration"`
	DurationRemaining int `json:"durationRemaining"`
}

type TachographState struct {
	DeviceNumber          string     `json:"deviceNumber"`
	Status                int        `json:"status"`
	DriveTimeCurrentDay   *DriveTime `json:"driveTimeCurrentDay"`
	DriveTimeSinceRest    *DriveTime `json:"driveTimeSinceRest"`
	DriveTimeCurrentWeek  *DriveTime `json:"driveTimeCurrentWeek"`
	WorkPeriodStart       *int64     `json:"workPeriodStart"`
	WorkPeriodExpectedEnd *int64     `json:"workPeriodExpectedEnd"`
	ExtendedDailyDrives   int        `json:"extendedDailyDrives"`
	ShortenedDailyRest    int        `json:"shortenedDailyRest"`
	DriverName            string     `json:"driverName"`
	DriverNameFull        string     `json:"driverNameFull"`
}

// DriverFullName prefers the full name over the short one
func (t *TachographState) DriverFullName() string {
	if t.DriverNameFull != "" {
		return t.DriverNameFull
	}

	return t.DriverName
}

type Task struct {
	TaskID            int64    `json:"taskId"`
	Status            string   `json:"status"`
	LocationName      string   `json:"locationName"`
	LocationAddress   string   `json:"locationAddress"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Lat               *float64 `json:"lat"`
	Lng               *float64 `json:"lng"`
	PlannedArrival    *int64   `json:"plannedArrival"`
	Date              *int64   `json:"date"`
	ActualArrival     *int64   `json:"actualArrival"`
	TimeCompleted     *int64   `json:"timeCompleted"`
	CustomerName      string   `json:"customerName"`
	OrderNumber       string   `json:"orderNumber"`
	CargoDescription  string   `json:"cargoDescription"`
	LogistComment     string   `json:"logistComment"`
	PalletCount       *int     `json:"palletCount"`
	ParcelWeight      *int     `json:"parcelWeight"`
	CargoWeight       *float64 `json:"cargoWeight"`
	TotalParcelWeight *float64 `json:"totalParcelWeight"`
	Priority          *int     `json:"priority"`
	Notes             string   `json:"notes"`
	DriverNotes       string   `json:"driverNotes"`
}

// Coordinates returns the task location, handling both coordinate key
// variants the API uses
func (task *Task) Coordinates() (*float64, *float64) {
	if task.Latitude != nil && task.Longitude != nil {
		return task.Latitude, task.Longitude
	}

	return task.Lat, task.Lng
}

// Planned returns the planned arrival, falling back to the task date
func (task *Task) Planned() *int64 {
	if task.PlannedArrival != nil {
		return task.PlannedArrival
	}

	return task.Date
}

// Actual returns the actual arrival, falling back to the completion time
func (task *Task) Actual() *int64 {
	if task.ActualArrival != nil {
		return task.ActualArrival
	}

	return task.TimeCompleted
}

type FleetDevice struct {
	Device *Device `json:"device"`
	Tasks  []Task  `json:"tasks"`
}

type FleetState struct {
	Devices []FleetDevice `json:"devices"`
}

type VehicleReport struct {
	TotalDistance    *float64  `json:"totalDistance"`
	FuelTankCapacity *float64  `json:"fuelTankCapacity"`
	FuelData         *FuelData `json:"fuelData"`
}

type FuelData struct {
	CurrentLevel *float64 `json:"currentLevel"`
	TankCapacity *float64 `json:"tankCapacity"`
}

type Activity struct {
	DeviceNumber string `json:"deviceNumber"`
	Type         string `json:"type"`
	Start        *int64 `json:"start"`
	End          *int64 `json:"end"`
}
