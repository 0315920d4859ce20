package reconciler

import (
	"github.com/fleetsync/fleetsync/pkg/loctracker"
)

// BuildPositionIndex keys positions by device number for O(1) joins
// during fusion. Duplicate device numbers are last write wins. A nil
// source yields an empty, usable map - a missing upstream source means
// no enrichment, never a failure
func BuildPositionIndex(positions []loctracker.Position) map[string]loctracker.Position {
	index := map[string]loctracker.Position{}

	for _, position := range positions {
		if position.DeviceNumber == "" {
			continue
		}

		index[position.DeviceNumber] = position
	}

	return index
}

func BuildTachographIndex(tachographs []loctracker.TachographState) map[string]loctracker.TachographState {
	index := map[string]loctracker.TachographState{}

	for _, tachograph := range tachographs {
		if tachograph.DeviceNumber == "" {
			continue
		}

		index[tachograph.DeviceNumber] = tachograph
	}

	return index
}

// BuildFleetTaskIndex extracts the bulk per-device task lists out of a
// fleet state snapshot. The bulk list is preferred over per-device task
// calls as it is fetched once for the whole fleet
func BuildFleetTaskIndex(fleetState *loctracker.FleetState) map[string][]loctracker.Task {
	index := map[string][]loctracker.Task{}

	if fleetState == nil {
		return index
	}

	for _, fleetDevice := range fleetState.Devices {
		if fleetDevice.Device == nil || fleetDevice.Device.Number == "" {
			continue
		}

		index[fleetDevice.Device.Number] = fleetDevice.Tasks
	}

	return index
}
