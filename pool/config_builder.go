package pool

import (
	"fmt"
	"math/rand"
	"time"
)

// ConfigBuilder provides a fluent interface for configuring a Pool,
// grounded on the teacher's PoolConfigBuilder (pool/config-builder.go):
// one setter per field, with errors from the setters and the final
// validation both reported by Build.
type ConfigBuilder[T any] struct {
	cfg *Config[T]
	err error
}

// NewConfigBuilder starts a builder with spec.md §6's defaults: size 10, a
// jittered 8-10 minute TimeExpiration, and the process-wide default
// Scheduler.
func NewConfigBuilder[T any](allocator Allocator[T]) *ConfigBuilder[T] {
	return &ConfigBuilder[T]{
		cfg: &Config[T]{
			size:       defaultSize,
			allocator:  allocator,
			expiration: defaultExpiration[T](),
			scheduler:  DefaultScheduler(),
		},
	}
}

// defaultExpiration builds the built-in 8-10 minute jittered TimeExpiration
// spec.md §6 specifies as the default when the caller supplies none.
func defaultExpiration[T any]() *TimeExpiration[T] {
	jitter := time.Duration(rand.Int63n(int64(defaultTTLMax - defaultTTLMin)))
	e, err := NewTimeExpiration[T](defaultTTLMin + jitter)
	if err != nil {
		// defaultTTLMin is always > 0; this cannot happen.
		panic(err)
	}
	return e
}

func (b *ConfigBuilder[T]) SetSize(size int) *ConfigBuilder[T] {
	if size < 1 {
		b.err = fmt.Errorf("SetSize(%d): %w", size, ErrIllegalArgument)
		return b
	}
	b.cfg.size = size
	return b
}

func (b *ConfigBuilder[T]) SetAllocator(allocator Allocator[T]) *ConfigBuilder[T] {
	b.cfg.allocator = allocator
	return b
}

func (b *ConfigBuilder[T]) SetExpiration(expiration Expiration[T]) *ConfigBuilder[T] {
	b.cfg.expiration = expiration
	return b
}

// SetTTL is shorthand for SetExpiration(NewTimeExpiration(ttl)).
func (b *ConfigBuilder[T]) SetTTL(ttl time.Duration) *ConfigBuilder[T] {
	e, err := NewTimeExpiration[T](ttl)
	if err != nil {
		b.err = fmt.Errorf("SetTTL(%s): %w", ttl, err)
		return b
	}
	b.cfg.expiration = e
	return b
}

func (b *ConfigBuilder[T]) SetScheduler(scheduler *Scheduler) *ConfigBuilder[T] {
	b.cfg.scheduler = scheduler
	return b
}

func (b *ConfigBuilder[T]) SetVerbose(verbose bool) *ConfigBuilder[T] {
	b.cfg.verbose = verbose
	return b
}

// SetLogf installs a sink for the pool's verbose-gated diagnostic log
// lines, in place of the default stdlib log.Printf.
func (b *ConfigBuilder[T]) SetLogf(logf func(format string, args ...any)) *ConfigBuilder[T] {
	b.cfg.logf = logf
	return b
}

// Build validates and returns the Config, or an error wrapping
// ErrIllegalArgument. A setter's error names the setter and its argument;
// a failure of the final validation is the bare ErrIllegalArgument.
func (b *ConfigBuilder[T]) Build() (*Config[T], error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}
	return b.cfg, nil
}
