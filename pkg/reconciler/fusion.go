package reconciler

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fleetsync/fleetsync/pkg/cfdf"
	"github.com/fleetsync/fleetsync/pkg/loctracker"
)

// TaskSource resolves the ordered task sequence for a single device
type TaskSource interface {
	GetDeviceTasks(deviceNumber string) ([]loctracker.Task, error)
}

// ReportSource resolves the historical report and fuel data for a device
type ReportSource interface {
	GetVehicleReport(deviceNumber string, dateFrom time.Time, dateTo time.Time) (*loctracker.VehicleReport, error)
	GetFuelData(deviceNumber string) (*loctracker.FuelData, error)
}

// Fuser combines a device with everything else known about it this pass
// into one cfdf.VehicleRecord. Individual source failures never abort the
// fusion of a device - the affected fields are simply left absent
type Fuser struct {
	Positions   map[string]loctracker.Position
	Tachographs map[string]loctracker.TachographState
	FleetTasks  map[string][]loctracker.Task

	Tasks   TaskSource
	Reports ReportSource
}

// Fuse builds the fused record for one device. Returns nil when the
// device has no resolvable identity and must be dropped
func (f *Fuser) Fuse(device loctracker.Device) *cfdf.VehicleRecord {
	registration := strings.TrimSpace(device.RegistrationNumber)
	name := strings.TrimSpace(device.Name)

	if registration == "" && name == "" {
		return nil
	}

	record := &cfdf.VehicleRecord{
		Registration: registration,
		Name:         name,
		DeviceNumber: device.Number,
		DriverPhone:  device.DriverPhone,

		ExplicitGroup: device.GroupName,
	}

	if device.ID != 0 {
		vehicleID := device.ID
		record.VehicleID = &vehicleID
	}

	f.overlayPosition(record)
	f.overlayTachograph(record)
	f.overlayTasks(record)
	f.overlayReport(record)

	return record
}

func (f *Fuser) overlayPosition(record *cfdf.VehicleRecord) {
	position, exists := f.Positions[record.DeviceNumber]
	if !exists {
		return
	}

	record.Latitude = position.Lat
	record.Longitude = position.Lng
	record.Speed = position.Speed
	record.IgnitionState = position.IgnitionState
	record.Address = position.Address
	record.LastMessage = position.LastMessage
}

func (f *Fuser) overlayTachograph(record *cfdf.VehicleRecord) {
	tachograph, exists := f.Tachographs[record.DeviceNumber]
	if !exists {
		return
	}

	if tachograph.DriveTimeCurrentDay != nil {
		remaining := tachograph.DriveTimeCurrentDay.DurationRemaining
		record.DailyDrivingTimeLeft = &remaining
	}
	if tachograph.DriveTimeSinceRest != nil {
		remaining := tachograph.DriveTimeSinceRest.DurationRemaining
		record.ContinuousDrivingTimeLeft = &remaining
	}
	if tachograph.DriveTimeCurrentWeek != nil {
		remaining := tachograph.DriveTimeCurrentWeek.DurationRemaining
		record.WeeklyDrivingTimeLeft = &remaining
	}

	record.CurrentActivity = cfdf.DriverActivityFromCode(tachograph.Status)

	record.WorkPeriodStart = tachograph.WorkPeriodStart
	record.WorkPeriodExpectedEnd = tachograph.WorkPeriodExpectedEnd

	record.ExtendedDailyDrives = tachograph.ExtendedDailyDrives
	record.ShortenedDailyRests = tachograph.ShortenedDailyRest

	if driverName := tachograph.DriverFullName(); driverName != "" {
		record.DriverName = driverName
	}
}

// resolveTasks prefers the bulk fleet state task list and only falls back
// to the per-device API call when the bulk list has nothing for the device
func (f *Fuser) resolveTasks(record *cfdf.VehicleRecord) []loctracker.Task {
	if tasks, exists := f.FleetTasks[record.DeviceNumber]; exists && len(tasks) > 0 {
		return tasks
	}

	if f.Tasks == nil {
		return nil
	}

	tasks, err := f.Tasks.GetDeviceTasks(record.DeviceNumber)
	if err != nil {
		log.Debug().Err(err).Str("device", record.DeviceNumber).Msg("No tasks for device")
		return nil
	}

	return tasks
}

func (f *Fuser) overlayTasks(record *cfdf.VehicleRecord) {
	tasks := f.resolveTasks(record)
	if len(tasks) == 0 {
		return
	}

	// Current is the first task not yet completed, or the first task when
	// the whole sequence is done
	currentTask := &tasks[0]
	for i := range tasks {
		if cfdf.TaskStatus(tasks[i].Status) != cfdf.TaskStatusCompleted {
			currentTask = &tasks[i]
			break
		}
	}

	record.CurrentTaskAddress = currentTask.LocationAddress
	record.TaskStatus = cfdf.TaskStatus(currentTask.Status)
	record.PlannedArrival = currentTask.Planned()
	record.ActualArrival = currentTask.Actual()

	record.CustomerName = currentTask.CustomerName
	if record.CustomerName == "" {
		record.CustomerName = currentTask.LocationName
	}

	record.OrderNumber = currentTask.OrderNumber

	record.CargoDescription = currentTask.CargoDescription
	if record.CargoDescription == "" {
		record.CargoDescription = currentTask.LogistComment
	}

	record.PalletCount = currentTask.PalletCount
	if record.PalletCount == nil {
		record.PalletCount = currentTask.ParcelWeight
	}

	record.CargoWeight = currentTask.CargoWeight
	if record.CargoWeight == nil {
		record.CargoWeight = currentTask.TotalParcelWeight
	}

	record.Priority = currentTask.Priority
	if record.Priority == nil {
		// A task without an assigned priority counts as medium
		mediumPriority := 2
		record.Priority = &mediumPriority
	}

	record.Notes = currentTask.Notes
	if record.Notes == "" {
		record.Notes = currentTask.DriverNotes
	}

	taskLat, taskLng := currentTask.Coordinates()
	if record.Latitude != nil && record.Longitude != nil && taskLat != nil && taskLng != nil {
		distance := DistanceBetween(*record.Latitude, *record.Longitude, *taskLat, *taskLng)
		record.DistanceToTask = &distance
	}

	// Next is purely positional - the second task in the sequence
	if len(tasks) > 1 {
		record.NextTaskAddress = tasks[1].LocationAddress
	}

	completed := 0
	for _, task := range tasks {
		if cfdf.TaskStatus(task.Status) == cfdf.TaskStatusCompleted {
			completed += 1
		}
	}
	record.CompletedTasks = &completed
}

func (f *Fuser) overlayReport(record *cfdf.VehicleRecord) {
	if f.Reports == nil {
		return
	}

	report, err := f.Reports.GetVehicleReport(record.DeviceNumber, time.Time{}, time.Time{})
	if err != nil {
		log.Debug().Err(err).Str("device", record.DeviceNumber).Msg("No report for device")
	} else if report != nil {
		record.DailyDistance = report.TotalDistance
		record.FuelTankCapacity = report.FuelTankCapacity

		if report.FuelData != nil {
			record.FuelLevel = report.FuelData.CurrentLevel
		}
	}

	// The direct fuel call is made after the report and wins when both
	// supply a level or capacity
	fuelData, err := f.Reports.GetFuelData(record.DeviceNumber)
	if err != nil {
		log.Debug().Err(err).Str("device", record.DeviceNumber).Msg("No fuel data for device")
		return
	}
	if fuelData == nil {
		return
	}

	if fuelData.CurrentLevel != nil {
		record.FuelLevel = fuelData.CurrentLevel
	}
	if fuelData.TankCapacity != nil {
		record.FuelTankCapacity = fuelData.TankCapacity
	}
}
