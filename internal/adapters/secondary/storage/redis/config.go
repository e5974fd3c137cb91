package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Enabled         bool          `envconfig:"ENABLED" default:"false"`
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            string        `envconfig:"PORT" default:"6379"`
	KeyPrefix       string        `envconfig:"KEY_PREFIX" default:"astro-core:"`
	Username        string        `envconfig:"USERNAME"`
	Password        string        `envconfig:"PASSWORD"`
	Database        int           `envconfig:"DATABASE" default:"0"`
	MaxRetries      int           `envconfig:"MAX_RETRIES" default:"3"`
	DialTimeout     time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
	PoolSize        int           `envconfig:"POOL_SIZE" default:"10"`
	MinIdleConns    int           `envconfig:"MIN_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"CONN_MAX_IDLE_TIME" default:"5m"`
}

func orDefault[T int | time.Duration](v, def T) T {
	if v <= 0 {
		return def
	}
	return v
}

// Options параметры клиента, нулевые значения заменяются значениями по умолчанию
func (c *Config) Options() *redis.Options {
	maxRetries := c.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}

	return &redis.Options{
		Addr:            net.JoinHostPort(c.Host, c.Port),
		Username:        c.Username,
		Password:        c.Password,
		DB:              c.Database,
		MaxRetries:      maxRetries,
		DialTimeout:     orDefault(c.DialTimeout, 5*time.Second),
		ReadTimeout:     orDefault(c.ReadTimeout, 3*time.Second),
		WriteTimeout:    orDefault(c.WriteTimeout, 3*time.Second),
		PoolSize:        orDefault(c.PoolSize, 10),
		MinIdleConns:    orDefault(c.MinIdleConns, 2),
		ConnMaxLifetime: orDefault(c.ConnMaxLifetime, 30*time.Minute),
		ConnMaxIdleTime: orDefault(c.ConnMaxIdleTime, 5*time.Minute),
	}
}

// NewConnection подключается к Redis и проверяет соединение PING
func (c *Config) NewConnection(ctx context.Context) (*redis.Client, error) {
	opts := c.Options()
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}
