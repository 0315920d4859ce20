package dispatcher

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const defaultSyncInterval = 60 * time.Second

// Monitor re-runs sync passes on a fixed wall clock interval. A failed
// pass is logged and retried with exponential backoff instead of killing
// the process
type Monitor struct {
	Syncer   *Syncer
	Interval time.Duration
}

func (m *Monitor) interval() time.Duration {
	if m.Interval == 0 {
		return defaultSyncInterval
	}

	return m.Interval
}

// Run loops until the context is cancelled
func (m *Monitor) Run(ctx context.Context) error {
	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxInterval = m.interval()
	retryBackoff.MaxElapsedTime = 0

	for {
		startTime := time.Now()

		_, err := m.Syncer.RunPass(ctx)

		if ctx.Err() != nil {
			return ctx.Err()
		}

		waitTime := m.interval() - time.Since(startTime)

		if err != nil {
			waitTime = retryBackoff.NextBackOff()
			log.Error().Err(err).Dur("retryin", waitTime).Msg("Sync pass failed")
		} else {
			retryBackoff.Reset()
			log.Info().Dur("nextin", waitTime).Msg("Waiting for next sync pass")
		}

		if waitTime > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitTime):
			}
		}
	}
}
