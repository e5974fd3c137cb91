package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/admin/astro-core/internal/ports/cache"
)

type entry struct {
	value     string
	expiresAt time.Time // нулевое значение = без TTL
}

// Cache in-memory реализация cache.Cache для запуска без Redis.
// Просроченные ключи удаляются лениво при чтении
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

func (c *Cache) lookup(key string) (entry, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return entry{}, false
	}

	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if current, still := c.items[key]; still && current.expiresAt.Equal(e.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return entry{}, false
	}
	return e, true
}

func (c *Cache) Get(_ context.Context, key string) (string, error) {
	e, ok := c.lookup(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", cache.ErrMiss, key)
	}
	return e.value, nil
}

func (c *Cache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = e
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

func (c *Cache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.lookup(key)
	return ok, nil
}

// Len число хранимых ключей, включая ещё не вычищенные просроченные
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry)
	return nil
}
