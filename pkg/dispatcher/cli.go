package dispatcher

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/fleetsync/fleetsync/pkg/loctracker"
	"github.com/fleetsync/fleetsync/pkg/notiondb"
	"github.com/fleetsync/fleetsync/pkg/reconciler"
	"github.com/fleetsync/fleetsync/pkg/redis_client"
	"github.com/fleetsync/fleetsync/pkg/util"
)

func setupSyncer() (*Syncer, error) {
	// Redis only backs the page id cache, running without it just means
	// a lookup query per vehicle
	if err := redis_client.Connect(); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, page cache disabled")
	}

	if err := notiondb.Connect(); err != nil {
		return nil, err
	}

	env := util.GetEnvironmentVariables()

	defaultTankCapacity := reconciler.DefaultTankCapacityLitres
	if env["FLEETSYNC_DEFAULT_TANK_CAPACITY"] != "" {
		if capacity, err := strconv.ParseFloat(env["FLEETSYNC_DEFAULT_TANK_CAPACITY"], 64); err == nil {
			defaultTankCapacity = capacity
		}
	}

	return &Syncer{
		Source: loctracker.NewClient(),
		Target: notiondb.GlobalInstance,

		DefaultTankCapacity: defaultTankCapacity,
	}, nil
}

func syncInterval() time.Duration {
	env := util.GetEnvironmentVariables()

	if env["FLEETSYNC_SYNC_INTERVAL"] != "" {
		if interval, err := time.ParseDuration(env["FLEETSYNC_SYNC_INTERVAL"]); err == nil {
			return interval
		}
	}

	return defaultSyncInterval
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Reconcile fleet telemetry into the dispatcher database",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run a single synchronisation pass",
				Action: func(c *cli.Context) error {
					syncer, err := setupSyncer()
					if err != nil {
						return err
					}

					_, err = syncer.RunPass(context.Background())

					return err
				},
			},
			{
				Name:  "monitor",
				Usage: "run synchronisation passes continuously",
				Action: func(c *cli.Context) error {
					syncer, err := setupSyncer()
					if err != nil {
						return err
					}

					ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
					defer stop()

					monitor := &Monitor{
						Syncer:   syncer,
						Interval: syncInterval(),
					}

					go func() {
						<-ctx.Done()

						signals := make(chan os.Signal, 1)
						signal.Notify(signals, syscall.SIGINT)

						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					err = monitor.Run(ctx)
					if err == context.Canceled {
						return nil
					}

					return err
				},
			},
		},
	}
}
