package notiondb

import (
	"fmt"
	"time"

	"github.com/jomei/notionapi"

	"github.com/fleetsync/fleetsync/pkg/cfdf"
)

// Property names of the dispatcher database. The schema is provisioned
// outside of this service, these have to match it exactly
const (
	PropertyVehicle       = "🚛 Fahrzeug"
	PropertyPositionURL   = "📍 Position"
	PropertyLat           = "📍 Lat"
	PropertyLng           = "📍 Lng"
	PropertyPlate         = "🏷️ LKW"
	PropertyDriver        = "👤 Fahrer"
	PropertyPhone         = "📞 Telefon"
	PropertySpeed         = "💨 Speed"
	PropertyAddress       = "📍 Adresse"
	PropertyCurrentTask   = "🎯 Aufgabe"
	PropertyNextTask      = "➡️ Nächste"
	PropertyTaskStatus    = "📊 Status"
	PropertyDistance      = "📏 KM"
	PropertyETA           = "⏱️ ETA"
	PropertyLastMessage   = "💬 Nachricht"
	PropertyEngine        = "🔑 Motor"
	PropertyDailyTime     = "⏱️ Fahrzeit"
	PropertyPauseIn       = "⏸️ Pause in"
	PropertyWeeklyTime    = "📅 Woche"
	PropertyActivity      = "🎯 Aktivität"
	PropertyWorkStart     = "🕐 Start"
	PropertyRest          = "😴 Ruhezeit"
	PropertyViolations    = "⚠️ Verstöße"
	PropertyWarning       = "⚠️ Warnung"
	PropertyUpdated       = "🔄 Update"
	PropertyFuel          = "⛽ Fuel"
	PropertyDailyDistance = "🛣️ Tages KM"
	PropertyCompleted     = "✅ Erledigt"
	PropertyUtilization   = "📊 Auslastung"
	PropertyGroup         = "🏢 Gruppe"
	PropertyPlanned       = "📅 Plan"
	PropertyActual        = "✅ Ist"
	PropertyDelay         = "⏰ Delay"
	PropertyCustomer      = "👥 Kunde"
	PropertyOrder         = "📋 Auftrag"
	PropertyCargo         = "📦 Fracht"
	PropertyPriority      = "⭐ Priorität"
	PropertyPallets       = "📦 Paletten"
	PropertyWeight        = "⚖️ Gewicht"
	PropertyNotes         = "📝 Notizen"
	PropertyDevice        = "📱 Device"
	PropertyVehicleID     = "🆔 ID"
)

const noTaskPlaceholder = "Keine Aufgabe"

func titleProperty(content string) notionapi.TitleProperty {
	return notionapi.TitleProperty{
		Title: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}

func richTextProperty(content string) notionapi.RichTextProperty {
	return notionapi.RichTextProperty{
		RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}

func numberProperty(value float64) notionapi.NumberProperty {
	return notionapi.NumberProperty{Number: value}
}

func selectProperty(name string) notionapi.SelectProperty {
	return notionapi.SelectProperty{Select: notionapi.Option{Name: name}}
}

func dateProperty(value time.Time) notionapi.DateProperty {
	date := notionapi.Date(value)

	return notionapi.DateProperty{Date: &notionapi.DateObject{Start: &date}}
}

func epochMillisDateProperty(millis int64) notionapi.DateProperty {
	return dateProperty(time.UnixMilli(millis).UTC())
}

// MapVehicleProperties turns a fully derived vehicle record into the
// dispatcher database property set. Absent record fields produce no
// property so an update never clears data another pass wrote
func MapVehicleProperties(record *cfdf.VehicleRecord, now time.Time) notionapi.Properties {
	properties := notionapi.Properties{}

	properties[PropertyVehicle] = titleProperty(record.Identity())

	if record.Latitude != nil && record.Longitude != nil {
		mapsLink := fmt.Sprintf("https://maps.google.com/?q=%v,%v", *record.Latitude, *record.Longitude)
		properties[PropertyPositionURL] = notionapi.URLProperty{URL: mapsLink}
		properties[PropertyLat] = numberProperty(*record.Latitude)
		properties[PropertyLng] = numberProperty(*record.Longitude)
	}

	if record.Registration != "" {
		properties[PropertyPlate] = richTextProperty(record.Registration)
	}

	if record.DriverName != "" {
		properties[PropertyDriver] = richTextProperty(record.DriverName)
	}

	if record.DriverPhone != "" {
		properties[PropertyPhone] = richTextProperty(record.DriverPhone)
	}

	if record.Speed != nil {
		properties[PropertySpeed] = numberProperty(*record.Speed)
	}

	if record.Address != "" {
		properties[PropertyAddress] = richTextProperty(record.Address)
	}

	if record.CurrentTaskAddress != "" {
		properties[PropertyCurrentTask] = richTextProperty(record.CurrentTaskAddress)
	} else {
		properties[PropertyCurrentTask] = richTextProperty(noTaskPlaceholder)
	}

	if record.NextTaskAddress != "" {
		properties[PropertyNextTask] = richTextProperty(record.NextTaskAddress)
	} else {
		properties[PropertyNextTask] = richTextProperty(noTaskPlaceholder)
	}

	taskStatus := record.TaskStatus
	if taskStatus == "" {
		taskStatus = cfdf.TaskStatusPending
	}
	properties[PropertyTaskStatus] = selectProperty(string(taskStatus))

	if record.DistanceToTask != nil {
		properties[PropertyDistance] = numberProperty(*record.DistanceToTask)
	}

	if record.ETA != nil {
		properties[PropertyETA] = dateProperty(*record.ETA)
	}

	if record.LastMessage != "" {
		properties[PropertyLastMessage] = richTextProperty(record.LastMessage)
	}

	if record.IgnitionState != "" {
		properties[PropertyEngine] = notionapi.CheckboxProperty{Checkbox: record.IgnitionState == "ON"}
	}

	if record.DailyDrivingText != "" {
		properties[PropertyDailyTime] = richTextProperty(record.DailyDrivingText)
	}

	if record.ContinuousDrivingText != "" {
		properties[PropertyPauseIn] = richTextProperty(record.ContinuousDrivingText)
	}

	if record.WeeklyDrivingText != "" {
		properties[PropertyWeeklyTime] = richTextProperty(record.WeeklyDrivingText)
	}

	if record.CurrentActivity != "" {
		properties[PropertyActivity] = selectProperty(string(record.CurrentActivity))
	}

	if record.WorkPeriodStart != nil {
		properties[PropertyWorkStart] = epochMillisDateProperty(*record.WorkPeriodStart)
	}

	if record.WorkPeriodExpectedEnd != nil {
		properties[PropertyRest] = epochMillisDateProperty(*record.WorkPeriodExpectedEnd)
	}

	properties[PropertyViolations] = numberProperty(float64(record.Violations))

	properties[PropertyWarning] = selectProperty(string(record.WarningTier))

	properties[PropertyUpdated] = dateProperty(now.UTC())

	if record.FuelLitres != nil {
		properties[PropertyFuel] = numberProperty(*record.FuelLitres)
	}

	if record.DailyDistance != nil {
		properties[PropertyDailyDistance] = numberProperty(*record.DailyDistance)
	}

	if record.CompletedTasks != nil {
		properties[PropertyCompleted] = numberProperty(float64(*record.CompletedTasks))
	} else {
		properties[PropertyCompleted] = numberProperty(0)
	}

	if record.UtilizationFraction != nil {
		properties[PropertyUtilization] = numberProperty(*record.UtilizationFraction)
	}

	properties[PropertyGroup] = selectProperty(record.Group)

	if record.PlannedArrival != nil {
		properties[PropertyPlanned] = epochMillisDateProperty(*record.PlannedArrival)
	}

	if record.ActualArrival != nil {
		properties[PropertyActual] = epochMillisDateProperty(*record.ActualArrival)
	}

	if record.DelayMinutes != nil {
		properties[PropertyDelay] = numberProperty(float64(*record.DelayMinutes))
	}

	if record.CustomerName != "" {
		properties[PropertyCustomer] = richTextProperty(record.CustomerName)
	}

	if record.OrderNumber != "" {
		properties[PropertyOrder] = richTextProperty(record.OrderNumber)
	}

	if record.CargoDescription != "" {
		properties[PropertyCargo] = richTextProperty(record.CargoDescription)
	}

	if record.Priority != nil {
		properties[PropertyPriority] = selectProperty(record.PriorityLabel)
	}

	if record.PalletCount != nil {
		properties[PropertyPallets] = numberProperty(float64(*record.PalletCount))
	}

	if record.CargoWeight != nil {
		properties[PropertyWeight] = numberProperty(*record.CargoWeight)
	}

	if record.Notes != "" {
		properties[PropertyNotes] = richTextProperty(record.Notes)
	}

	if record.DeviceNumber != "" {
		properties[PropertyDevice] = richTextProperty(record.DeviceNumber)
	}

	if record.VehicleID != nil {
		properties[PropertyVehicleID] = numberProperty(float64(*record.VehicleID))
	}

	return properties
}
