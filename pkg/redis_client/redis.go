package redis_client

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/fleetsync/fleetsync/pkg/util"
)

var Client *redis.Client

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

// Connect sets up the shared Redis client used by the page id cache.
// Redis is optional - callers treat a failed connect as cache disabled
func Connect() error {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["FLEETSYNC_REDIS_ADDRESS"] != "" {
		address = env["FLEETSYNC_REDIS_ADDRESS"]
	}

	if env["FLEETSYNC_REDIS_PASSWORD"] != "" {
		password = env["FLEETSYNC_REDIS_PASSWORD"]
	}

	if env["FLEETSYNC_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["FLEETSYNC_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	if password == "" {
		Client = redis.NewClient(&redis.Options{
			Addr: address,
			DB:   database,
		})
	} else {
		Client = redis.NewClient(&redis.Options{
			Addr:     address,
			Password: password,
			DB:       database,
		})
	}

	statusCmd := Client.Ping(context.Background())
	err := statusCmd.Err()
	if err != nil {
		Client = nil

		return err
	}

	return nil
}
