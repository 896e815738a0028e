package pool

import (
	"go.uber.org/zap"

	"github.com/ajitpratap0/stockpile/pkg/errors"
	"github.com/ajitpratap0/stockpile/pkg/logger"
)

const defaultName = "pool"

// Config is everything a Pool needs at construction. Only Factory is
// required.
type Config[T any] struct {
	// Name labels logs, metrics and traces. Defaults to "pool".
	Name string
	// Factory creates one new instance. Required.
	Factory Factory[T]
	// InitialSize instances are created eagerly by New.
	InitialSize int
	// BaseSize is the step used by GrowthDouble. Zero means InitialSize.
	BaseSize int
	// Growth selects the growth policy. The zero value is GrowthDouble.
	Growth GrowthMode
	// Hooks receives OnCreate/OnRelease callbacks. Optional.
	Hooks Hooks[T]
	// Observer receives grow/checkout/return events. Optional.
	Observer Observer
	// Logger defaults to the global logger.
	Logger *zap.Logger
}

// Pool holds available instances of T and creates more on demand.
//
// Pool is not safe for concurrent use; wrap it in Locked when more than one
// goroutine checks instances out.
//
// Every instance returned by Checkout must be passed to Return exactly once.
// Return does not check where an instance came from: returning an instance
// twice, or one this pool never issued, breaks the accounting.
type Pool[T any] struct {
	name      string
	available []T // tail is handed out next
	factory   Factory[T]
	growth    GrowthMode
	baseSize  int
	hooks     Hooks[T]
	observer  Observer
	logger    *zap.Logger

	inUse     int
	created   int
	grows     int
	checkouts uint64
	returns   uint64

	warnedZeroBase bool
}

// New validates cfg and builds a pool, creating cfg.InitialSize instances
// up front. A nil factory, a negative size or an unknown growth mode is
// reported as an invalid argument error.
func New[T any](cfg Config[T]) (*Pool[T], error) {
	if cfg.Factory == nil {
		return nil, errors.InvalidArgument("factory", "pool factory can not be nil")
	}
	if cfg.InitialSize < 0 {
		return nil, errors.InvalidArgument("initial_size", "pool initial size can not be negative").
			WithDetail("value", cfg.InitialSize)
	}
	if cfg.BaseSize < 0 {
		return nil, errors.InvalidArgument("base_size", "pool base size can not be negative").
			WithDetail("value", cfg.BaseSize)
	}
	if !cfg.Growth.valid() {
		return nil, errors.InvalidArgument("growth", "unknown growth mode").
			WithDetail("value", uint8(cfg.Growth))
	}

	baseSize := cfg.BaseSize
	if baseSize == 0 {
		baseSize = cfg.InitialSize
	}

	name := cfg.Name
	if name == "" {
		name = defaultName
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}
	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	p := &Pool[T]{
		name:      name,
		available: make([]T, 0, cfg.InitialSize),
		factory:   cfg.Factory,
		growth:    cfg.Growth,
		baseSize:  baseSize,
		hooks:     cfg.Hooks,
		observer:  observer,
		logger:    log.With(zap.String("pool", name)),
	}

	if cfg.InitialSize > 0 {
		n := p.growTo(cfg.InitialSize)
		p.observer.OnGrow(GrowEvent{
			Pool:      p.name,
			Growth:    p.growth,
			Instances: n,
			Created:   p.created,
			Prefill:   true,
		})
	}

	return p, nil
}

// Checkout hands out an available instance, growing the pool first when
// none is available. It never fails and never blocks.
func (p *Pool[T]) Checkout() T {
	if len(p.available) == 0 {
		p.grow()
	}

	last := len(p.available) - 1
	v := p.available[last]
	var zero T
	p.available[last] = zero
	p.available = p.available[:last]

	p.inUse++
	p.checkouts++
	p.observer.OnCheckout(p.usage())
	return v
}

// Return makes v available for reuse.
func (p *Pool[T]) Return(v T) {
	if p.hooks != nil {
		p.hooks.OnRelease(v)
	}

	p.available = append(p.available, v)
	p.inUse--
	p.returns++
	p.observer.OnReturn(p.usage())
}

// grow runs one growth event according to the pool's mode. A Double pool
// built with size 0 has no step to grow by; it falls back to one instance
// so that Checkout keeps its guarantee.
func (p *Pool[T]) grow() {
	step := 1
	if p.growth == GrowthDouble {
		step = p.baseSize
		if step == 0 {
			step = 1
			if !p.warnedZeroBase {
				p.warnedZeroBase = true
				p.logger.Warn("double growth with zero base size, growing by one instance")
			}
		}
	}

	n := p.growTo(len(p.available) + step)
	p.grows++

	p.logger.Debug("pool grew",
		zap.Stringer("growth", p.growth),
		zap.Int("instances", n),
		zap.Int("created", p.created),
		zap.Int("in_use", p.inUse))

	p.observer.OnGrow(GrowEvent{
		Pool:      p.name,
		Growth:    p.growth,
		Instances: n,
		Created:   p.created,
	})
}

func (p *Pool[T]) usage() Usage {
	return Usage{Pool: p.name, InUse: p.inUse, Available: len(p.available)}
}

// Name returns the pool's label.
func (p *Pool[T]) Name() string { return p.name }

// Growth returns the growth mode fixed at construction.
func (p *Pool[T]) Growth() GrowthMode { return p.growth }

// BaseSize returns the GrowthDouble step, by default the initial size.
func (p *Pool[T]) BaseSize() int { return p.baseSize }

// Available returns the number of instances ready to be checked out.
func (p *Pool[T]) Available() int { return len(p.available) }

// InUse returns the number of instances checked out and not yet returned.
func (p *Pool[T]) InUse() int { return p.inUse }

// Created returns the number of instances the factory has produced.
func (p *Pool[T]) Created() int { return p.created }

// Stats is a point-in-time copy of a pool's counters.
type Stats struct {
	Name      string     `json:"name"`
	Growth    GrowthMode `json:"growth"`
	BaseSize  int        `json:"base_size"`
	Available int        `json:"available"`
	InUse     int        `json:"in_use"`
	Created   int        `json:"created"`
	Grows     int        `json:"grows"`
	Checkouts uint64     `json:"checkouts"`
	Returns   uint64     `json:"returns"`
}

// Stats returns the pool's current counters.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Name:      p.name,
		Growth:    p.growth,
		BaseSize:  p.baseSize,
		Available: len(p.available),
		InUse:     p.inUse,
		Created:   p.created,
		Grows:     p.grows,
		Checkouts: p.checkouts,
		Returns:   p.returns,
	}
}
