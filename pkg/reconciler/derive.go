package reconciler

import (
	"fmt"
	"math"
	"time"

	"github.com/fleetsync/fleetsync/pkg/cfdf"
)

const earthRadiusKm = 6371

// roadFactor inflates the great-circle distance to approximate the real
// road distance
const roadFactor = 1.15

// stationaryFallbackSpeed is the assumed average speed in km/h used for
// the ETA of a vehicle that is not currently moving
const stationaryFallbackSpeed = 60.0

// minimumMovingSpeed is the speed above which the vehicle's own speed is
// trusted for the ETA calculation
const minimumMovingSpeed = 10.0

// assumedWorkdayHours is used for the utilization estimate when the
// upstream does not report an explicit utilization percentage
const assumedWorkdayHours = 8.0

// DefaultTankCapacityLitres is the assumed tank size when neither the
// report nor the fuel endpoint supplies one. Overridable through
// FLEETSYNC_DEFAULT_TANK_CAPACITY as fleets carry heterogeneous tanks
const DefaultTankCapacityLitres = 400.0

// DistanceBetween returns the approximate road distance in km between two
// coordinates - haversine great-circle distance inflated by the road
// factor, rounded to two decimal places
func DistanceBetween(lat1 float64, lng1 float64, lat2 float64, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	distance := earthRadiusKm * c * roadFactor

	return math.Round(distance*100) / 100
}

// CalculateETA estimates the arrival time at the current task. A moving
// vehicle uses its own speed, a stationary one falls back to the assumed
// average speed. Always computed fresh against now in UTC, never cached
func CalculateETA(now time.Time, distanceToTask float64, speed *float64) *time.Time {
	var hours float64

	if speed != nil && *speed > minimumMovingSpeed {
		hours = distanceToTask / *speed
	} else if distanceToTask > 0 {
		hours = distanceToTask / stationaryFallbackSpeed
	} else {
		return nil
	}

	eta := now.UTC().Add(time.Duration(hours * float64(time.Hour)))

	return &eta
}

// FormatDrivingTime renders a remaining driving time in seconds as "H:MM".
// Absent or non-positive values render as "0:00"
func FormatDrivingTime(seconds *int) string {
	if seconds == nil || *seconds <= 0 {
		return "0:00"
	}

	hours := *seconds / 3600
	minutes := (*seconds % 3600) / 60

	return fmt.Sprintf("%d:%02d", hours, minutes)
}

// ViolationCount sums the tachograph violation counters, never negative
func ViolationCount(extendedDailyDrives int, shortenedDailyRests int) int {
	total := extendedDailyDrives + shortenedDailyRests
	if total < 0 {
		return 0
	}

	return total
}

// CalculateUtilization returns the vehicle utilization as a 0..1 fraction.
// An explicit upstream percentage wins, otherwise it is estimated from the
// elapsed work period against an assumed 8 hour workday, capped at 1.0.
// Nil when neither input is available
func CalculateUtilization(explicitPercentage *float64, workPeriodStartMillis *int64, now time.Time) *float64 {
	if explicitPercentage != nil {
		utilization := *explicitPercentage / 100

		return &utilization
	}

	if workPeriodStartMillis == nil {
		return nil
	}

	workedHours := now.Sub(time.UnixMilli(*workPeriodStartMillis)).Hours()
	if workedHours <= 0 {
		return nil
	}

	utilization := math.Min(workedHours/assumedWorkdayHours, 1.0)

	return &utilization
}

// CalculateDelayMinutes returns the arrival delay in minutes. An explicit
// upstream delay wins; otherwise it is the actual minus planned arrival,
// reported only when positive - early arrivals are not negative delays
func CalculateDelayMinutes(explicitMinutes *int, plannedMillis *int64, actualMillis *int64) *int {
	if explicitMinutes != nil {
		return explicitMinutes
	}

	if plannedMillis == nil || actualMillis == nil {
		return nil
	}

	delayMinutes := int((*actualMillis - *plannedMillis) / 1000 / 60)
	if delayMinutes <= 0 {
		return nil
	}

	return &delayMinutes
}

// FuelQuantity converts a fuel level percentage into litres using the
// tank capacity, falling back to the configured default capacity
func FuelQuantity(levelPercentage float64, tankCapacity *float64, defaultCapacity float64) float64 {
	capacity := defaultCapacity
	if tankCapacity != nil {
		capacity = *tankCapacity
	}

	return levelPercentage / 100 * capacity
}

// longHaulDistanceKm splits the fleet into the long haul and local groups
// when no explicit group is assigned
const longHaulDistanceKm = 200.0

func ClassifyGroup(explicitGroup string, distanceToTask *float64) string {
	if explicitGroup != "" {
		return explicitGroup
	}

	if distanceToTask != nil && *distanceToTask > longHaulDistanceKm {
		return "Fernverkehr"
	}

	return "Nahverkehr"
}

// PriorityLabel maps the numeric task priority onto the dispatcher select
// options, defaulting to the middle priority
func PriorityLabel(priority *int) string {
	if priority == nil {
		return "Mittel"
	}

	switch *priority {
	case 1:
		return "Hoch"
	case 2:
		return "Mittel"
	case 3:
		return "Niedrig"
	default:
		return "Mittel"
	}
}

// DeriveFields fills in every computed field of a fused record. Runs after
// fusion and before property mapping, once per device per pass
func DeriveFields(record *cfdf.VehicleRecord, now time.Time, defaultTankCapacity float64) {
	if record.DistanceToTask != nil {
		record.ETA = CalculateETA(now, *record.DistanceToTask, record.Speed)
	}

	record.WarningTier = CalculateWarningTier(WarningInput{
		DailyDrivingTimeLeft:      record.DailyDrivingTimeLeft,
		ContinuousDrivingTimeLeft: record.ContinuousDrivingTimeLeft,
		IgnitionState:             record.IgnitionState,
	})

	record.Violations = ViolationCount(record.ExtendedDailyDrives, record.ShortenedDailyRests)

	record.UtilizationFraction = CalculateUtilization(record.Utilization, record.WorkPeriodStart, now)

	record.DelayMinutes = CalculateDelayMinutes(record.DelayMinutes, record.PlannedArrival, record.ActualArrival)

	if record.FuelLevel != nil {
		fuelLitres := FuelQuantity(*record.FuelLevel, record.FuelTankCapacity, defaultTankCapacity)
		record.FuelLitres = &fuelLitres
	}

	record.Group = ClassifyGroup(record.ExplicitGroup, record.DistanceToTask)

	record.PriorityLabel = PriorityLabel(record.Priority)

	if record.DailyDrivingTimeLeft != nil {
		record.DailyDrivingText = FormatDrivingTime(record.DailyDrivingTimeLeft)
	}
	if record.ContinuousDrivingTimeLeft != nil {
		record.ContinuousDrivingText = FormatDrivingTime(record.ContinuousDrivingTimeLeft)
	}
	if record.WeeklyDrivingTimeLeft != nil {
		record.WeeklyDrivingText = FormatDrivingTime(record.WeeklyDrivingTimeLeft)
	}
}
