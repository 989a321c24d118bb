package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"hospital-directory/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ClientName tags connections in CLIENT LIST so token traffic is traceable
// to this service.
const ClientName = "hospital-directory"

const (
	dialTimeout = 5 * time.Second
	ioTimeout   = 3 * time.Second
	pingTimeout = 5 * time.Second
)

// Options maps the config onto go-redis options. The client only holds the
// session allow-list, so reads and writes are small and short.
func Options(cfg config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		ClientName:   ClientName,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	}
}

// NewRedisClient connects to the session store and verifies it answers.
// The client is closed when the first ping fails.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log *logrus.Logger) (*redis.Client, error) {
	opts := Options(cfg)
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	log.WithFields(logrus.Fields{"addr": opts.Addr, "db": opts.DB}).Info("Successfully connected to Redis")

	return client, nil
}
