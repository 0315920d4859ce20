package cfdf

import "time"

// VehicleRecord is the fused per-vehicle record for one synchronisation
// pass. It is rebuilt from scratch every pass and never persisted itself -
// only the dispatcher database projection of it survives the pass.
//
// Pointer fields are "present or absent" contracts: a nil value means no
// source supplied the field this pass and the matching dispatcher property
// is left untouched.
type VehicleRecord struct {
	// Identity
	Registration string
	Name         string
	DeviceNumber string
	VehicleID    *int64

	// Position
	Latitude      *float64
	Longitude     *float64
	Speed         *float64
	IgnitionState string
	Address       string
	LastMessage   string

	// Driver
	DriverName  string
	DriverPhone string

	// Tachograph, all driving times in seconds remaining
	DailyDrivingTimeLeft      *int
	ContinuousDrivingTimeLeft *int
	WeeklyDrivingTimeLeft     *int
	CurrentActivity           DriverActivity
	WorkPeriodStart           *int64 // epoch milliseconds
	WorkPeriodExpectedEnd     *int64 // epoch milliseconds
	ExtendedDailyDrives       int
	ShortenedDailyRests       int

	// Tasks
	CurrentTaskAddress string
	NextTaskAddress    string
	TaskStatus         TaskStatus
	PlannedArrival     *int64 // epoch milliseconds
	ActualArrival      *int64 // epoch milliseconds
	CustomerName       string
	OrderNumber        string
	CargoDescription   string
	PalletCount        *int
	CargoWeight        *float64
	Priority           *int
	Notes              string
	CompletedTasks     *int

	// Report & fuel
	DailyDistance    *float64
	FuelTankCapacity *float64
	FuelLevel        *float64 // percentage 0..100
	ExplicitGroup    string
	Utilization      *float64 // explicit percentage 0..100 if supplied

	// Derived - filled in by the derivation engine, never by fusion
	DistanceToTask         *float64
	ETA                    *time.Time
	WarningTier            WarningTier
	Violations             int
	UtilizationFraction    *float64 // 0..1
	DelayMinutes           *int
	FuelLitres             *float64
	Group                  string
	PriorityLabel          string
	DailyDrivingText       string
	ContinuousDrivingText  string
	WeeklyDrivingText      string
}

// Identity returns the canonical vehicle identity - the registration
// plate, falling back to the device name. Records where both are blank
// are dropped before fusion
func (vehicle *VehicleRecord) Identity() string {
	if vehicle.Registration != "" {
		return vehicle.Registration
	}

	return vehicle.Name
}
