package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss ключа нет в кэше
var ErrMiss = errors.New("cache miss")

// Cache интерфейс для работы с кэшем
type Cache interface {
	// Get возвращает ErrMiss (обёрнутую), если ключа нет
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}
