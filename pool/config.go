package pool

import "time"

// Config holds everything needed to build a Pool: the allocator, the
// expiration policy, the target size, the scheduler it shares background
// work with, and the ambient knobs (logging, worker count). Build it with
// NewConfigBuilder rather than constructing it directly.
type Config[T any] struct {
	size       int
	allocator  Allocator[T]
	expiration Expiration[T]
	scheduler  *Scheduler
	verbose    bool
	logf       func(format string, args ...any)
}

func (c *Config[T]) GetSize() int                 { return c.size }
func (c *Config[T]) GetAllocator() Allocator[T]    { return c.allocator }
func (c *Config[T]) GetExpiration() Expiration[T]  { return c.expiration }
func (c *Config[T]) GetScheduler() *Scheduler      { return c.scheduler }
func (c *Config[T]) IsVerbose() bool               { return c.verbose }

const (
	defaultSize = 10
	// defaultTTLMin/Max bracket the built-in TimeExpiration when the caller
	// doesn't supply one: 8 to 10 minutes with jitter, per spec.md §6.
	defaultTTLMin = 8 * time.Minute
	defaultTTLMax = 10 * time.Minute
)

// validate checks the configuration against spec.md §7's IllegalArgument
// rules: non-null allocator, size >= 1, non-null scheduler.
func (c *Config[T]) validate() error {
	if c.allocator == nil {
		return ErrIllegalArgument
	}
	if c.size < 1 {
		return ErrIllegalArgument
	}
	if c.scheduler == nil {
		return ErrIllegalArgument
	}
	return nil
}
