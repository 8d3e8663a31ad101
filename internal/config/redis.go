package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectRedis builds the client used for advisory seat holds. Redis is
// optional: a missing addr or a failed ping returns nil and the hold layer
// is skipped (the booking transaction still guards correctness).
func ConnectRedis(cfg RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		logrus.Info("redis disabled, seat holds off")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.Warnf("redis unreachable, seat holds off: %v", err)
		_ = client.Close()
		return nil
	}

	logrus.Info("connected to Redis")
	return client
}
