// Package cache decorates cache repositories with metrics
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/pantryplan/api/internal/ports/outbound"
)

// Observer records cache operations
type Observer interface {
	CacheOperation(operation, cacheType, status string)
}

// Instrumented reports every operation of the wrapped cache to an Observer
type Instrumented struct {
	next      outbound.CacheRepository
	cacheType string
	observer  Observer
}

var _ outbound.CacheRepository = (*Instrumented)(nil)

// NewInstrumented wraps next; cacheType labels the backend (memory, redis)
func NewInstrumented(next outbound.CacheRepository, cacheType string, observer Observer) *Instrumented {
	return &Instrumented{next: next, cacheType: cacheType, observer: observer}
}

func (c *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.next.Get(ctx, key)
	switch {
	case err == nil:
		c.observe("get", "hit")
	case errors.Is(err, outbound.ErrCacheMiss):
		c.observe("get", "miss")
	default:
		c.observe("get", "error")
	}
	return value, err
}

func (c *Instrumented) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.next.Set(ctx, key, value, ttl)
	c.observe("set", status(err))
	return err
}

func (c *Instrumented) Delete(ctx context.Context, key string) error {
	err := c.next.Delete(ctx, key)
	c.observe("delete", status(err))
	return err
}

func (c *Instrumented) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := c.next.Exists(ctx, key)
	c.observe("exists", status(err))
	return ok, err
}

func (c *Instrumented) observe(op, st string) {
	if c.observer != nil {
		c.observer.CacheOperation(op, c.cacheType, st)
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
