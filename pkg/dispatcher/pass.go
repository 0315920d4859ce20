package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/jomei/notionapi"
	"github.com/rs/zerolog/log"

	"github.com/fleetsync/fleetsync/pkg/loctracker"
	"github.com/fleetsync/fleetsync/pkg/notiondb"
	"github.com/fleetsync/fleetsync/pkg/reconciler"
)

// FleetSource is everything a pass needs from the telemetry provider
type FleetSource interface {
	GetDevices() ([]loctracker.Device, error)
	GetPositions() ([]loctracker.Position, error)
	GetTachographState() ([]loctracker.TachographState, error)
	GetFleetState() (*loctracker.FleetState, error)

	reconciler.TaskSource
	reconciler.ReportSource
}

// TargetStore is the dispatcher database boundary
type TargetStore interface {
	UpsertVehicle(ctx context.Context, vehicleName string, properties notionapi.Properties) error
}

const defaultInterDeviceDelay = 500 * time.Millisecond

// Syncer drives one full pass over the fleet - fetch, fuse, derive, map,
// upsert - strictly one device at a time
type Syncer struct {
	Source FleetSource
	Target TargetStore

	// InterDeviceDelay spaces out per-device upstream calls to respect
	// the provider's rate limits
	InterDeviceDelay time.Duration

	DefaultTankCapacity float64
}

type PassSummary struct {
	Processed int
	Skipped   int
	Errors    int
}

// RunPass executes one synchronisation pass. Only a missing device list
// or position list is fatal - everything else degrades to partial data
// for the affected device and the pass carries on
func (s *Syncer) RunPass(ctx context.Context) (PassSummary, error) {
	summary := PassSummary{}

	startTime := time.Now()
	log.Info().Msg("Starting dispatcher sync pass")

	devices, err := s.Source.GetDevices()
	if err != nil {
		return summary, fmt.Errorf("get devices: %w", err)
	}

	positions, err := s.Source.GetPositions()
	if err != nil {
		return summary, fmt.Errorf("get positions: %w", err)
	}

	tachographs, err := s.Source.GetTachographState()
	if err != nil {
		log.Debug().Err(err).Msg("No tachograph state this pass")
	}

	fleetState, err := s.Source.GetFleetState()
	if err != nil {
		log.Debug().Err(err).Msg("No fleet state this pass")
	}

	fuser := &reconciler.Fuser{
		Positions:   reconciler.BuildPositionIndex(positions),
		Tachographs: reconciler.BuildTachographIndex(tachographs),
		FleetTasks:  reconciler.BuildFleetTaskIndex(fleetState),

		Tasks:   s.Source,
		Reports: s.Source,
	}

	interDeviceDelay := s.InterDeviceDelay
	if interDeviceDelay == 0 {
		interDeviceDelay = defaultInterDeviceDelay
	}

	defaultTankCapacity := s.DefaultTankCapacity
	if defaultTankCapacity == 0 {
		defaultTankCapacity = reconciler.DefaultTankCapacityLitres
	}

	for _, device := range devices {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		record := fuser.Fuse(device)
		if record == nil {
			log.Debug().Str("device", device.Number).Msg("Skipping device without identity")
			summary.Skipped += 1

			continue
		}

		now := time.Now()
		reconciler.DeriveFields(record, now, defaultTankCapacity)

		properties := notiondb.MapVehicleProperties(record, now)

		if err := s.Target.UpsertVehicle(ctx, record.Identity(), properties); err != nil {
			log.Error().Err(err).Str("vehicle", record.Identity()).Msg("Failed to upsert vehicle")
			summary.Errors += 1
		} else {
			log.Info().Str("vehicle", record.Identity()).Msg("Synced vehicle")
			summary.Processed += 1
		}

		time.Sleep(interDeviceDelay)
	}

	log.Info().
		Int("processed", summary.Processed).
		Int("skipped", summary.Skipped).
		Int("errors", summary.Errors).
		Dur("duration", time.Since(startTime)).
		Msg("Dispatcher sync pass complete")

	return summary, nil
}
