package reconciler

import (
	"github.com/fleetsync/fleetsync/pkg/cfdf"
)

// WarningInput is everything the compliance waterfall looks at
type WarningInput struct {
	DailyDrivingTimeLeft      *int // seconds
	ContinuousDrivingTimeLeft *int // seconds
	IgnitionState             string
}

func (input WarningInput) dailyHours() (float64, bool) {
	if input.DailyDrivingTimeLeft == nil || *input.DailyDrivingTimeLeft <= 0 {
		return 0, false
	}

	return float64(*input.DailyDrivingTimeLeft) / 3600, true
}

func (input WarningInput) continuousHours() (float64, bool) {
	if input.ContinuousDrivingTimeLeft == nil || *input.ContinuousDrivingTimeLeft <= 0 {
		return 0, false
	}

	return float64(*input.ContinuousDrivingTimeLeft) / 3600, true
}

type warningRule struct {
	Name    string
	Tier    cfdf.WarningTier
	Matches func(input WarningInput) bool
}

// warningRules is the compliance waterfall, first match wins. The daily
// driving budget is consulted first, then the continuous one, then the
// ignition state. A comfortable daily budget matches no daily rule and
// evaluation falls through to the lower rules
var warningRules = []warningRule{
	{
		Name: "daily-critical",
		Tier: cfdf.WarningTierCritical,
		Matches: func(input WarningInput) bool {
			hours, known := input.dailyHours()
			return known && hours < 0.5
		},
	},
	{
		Name: "daily-pause-soon",
		Tier: cfdf.WarningTierPauseSoon,
		Matches: func(input WarningInput) bool {
			hours, known := input.dailyHours()
			return known && hours < 0.75
		},
	},
	{
		Name: "daily-warning",
		Tier: cfdf.WarningTierWarning,
		Matches: func(input WarningInput) bool {
			hours, known := input.dailyHours()
			return known && hours < 1
		},
	},
	{
		Name: "continuous-critical",
		Tier: cfdf.WarningTierCritical,
		Matches: func(input WarningInput) bool {
			hours, known := input.continuousHours()
			return known && hours < 0.5
		},
	},
	{
		Name: "continuous-pause-soon",
		Tier: cfdf.WarningTierPauseSoon,
		Matches: func(input WarningInput) bool {
			hours, known := input.continuousHours()
			return known && hours < 0.75
		},
	},
	{
		Name: "ignition-off",
		Tier: cfdf.WarningTierPaused,
		Matches: func(input WarningInput) bool {
			// An unknown ignition state counts as off
			return input.IgnitionState == "OFF" || input.IgnitionState == ""
		},
	},
}

// CalculateWarningTier runs the ordered rule waterfall, defaulting to OK.
// Speed never influences the tier
func CalculateWarningTier(input WarningInput) cfdf.WarningTier {
	for _, rule := range warningRules {
		if rule.Matches(input) {
			return rule.Tier
		}
	}

	return cfdf.WarningTierOK
}
