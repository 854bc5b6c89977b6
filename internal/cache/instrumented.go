// ABOUTME: Cache decorator that records hit, miss and error counts.
// ABOUTME: Counters are prometheus vectors labelled by backend.
package cache

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Counters are the prometheus counters an Instrumented cache updates.
type Counters struct {
	Hits   *prometheus.CounterVec
	Misses *prometheus.CounterVec
	Errors *prometheus.CounterVec
}

// Instrumented wraps a Cache and counts lookups.
type Instrumented struct {
	next    Cache
	backend string
	m       Counters
}

var _ Cache = (*Instrumented)(nil)

// NewInstrumented wraps next. backend labels every counter.
func NewInstrumented(next Cache, backend string, m Counters) *Instrumented {
	return &Instrumented{next: next, backend: backend, m: m}
}

func (c *Instrumented) Get(ctx context.Context, key string, out any) (bool, error) {
	found, err := c.next.Get(ctx, key, out)
	switch {
	case err != nil:
		c.m.Errors.WithLabelValues(c.backend, "get").Inc()
	case found:
		c.m.Hits.WithLabelValues(c.backend).Inc()
	default:
		c.m.Misses.WithLabelValues(c.backend).Inc()
	}
	return found, err
}

func (c *Instrumented) Set(ctx context.Context, key string, value any) error {
	err := c.next.Set(ctx, key, value)
	if err != nil {
		c.m.Errors.WithLabelValues(c.backend, "set").Inc()
	}
	return err
}

func (c *Instrumented) Delete(ctx context.Context, keys ...string) error {
	err := c.next.Delete(ctx, keys...)
	if err != nil {
		c.m.Errors.WithLabelValues(c.backend, "delete").Inc()
	}
	return err
}

func (c *Instrumented) Close() error {
	return c.next.Close()
}
