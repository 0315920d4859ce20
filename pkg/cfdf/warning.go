package cfdf

// WarningTier is the dispatcher facing compliance status of a vehicle.
// The values are the literal select options of the dispatcher database
type WarningTier string

const (
	WarningTierPaused    WarningTier = "⏸️ PAUSIERT"
	WarningTierCritical  WarningTier = "🔴 KRITISCH"
	WarningTierPauseSoon WarningTier = "🟠 PAUSE BALD"
	WarningTierWarning   WarningTier = "🟡 WARNUNG"
	WarningTierOK        WarningTier = "🟢 OK"
)
