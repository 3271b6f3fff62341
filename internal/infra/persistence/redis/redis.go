// Package redis wires the optional Redis client used as a snapshot cache.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"ecoroute/config"
	"ecoroute/internal/domain/lifecycle"
	"ecoroute/internal/errors"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the Redis client. Redis is optional: with no redis block
// configured it returns a nil client and caching is skipped.
func New(params Params) (*redis.Client, error) {
	if params.Config.Redis == nil {
		params.Logger.Warn("redis is not configured, weather snapshots are not cached")

		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     params.Config.Redis.Addr,
		Password: params.Config.Redis.Password,
		DB:       params.Config.Redis.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client, nil
}
