// Package workload drives pools through simulated demand so growth
// policies can be compared. A run checks out a burst of instances, hands
// every one back and repeats, optionally from several goroutines at once.
package workload

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/stockpile/pkg/errors"
	"github.com/ajitpratap0/stockpile/pkg/logger"
	"github.com/ajitpratap0/stockpile/pkg/metrics"
	"github.com/ajitpratap0/stockpile/pkg/performance"
	"github.com/ajitpratap0/stockpile/pkg/pool"
)

// Target is the pool surface a run needs. Both *pool.Pool and *pool.Locked
// satisfy it; only the latter may be shared by several workers.
type Target[T any] interface {
	Checkout() T
	Return(v T)
	Stats() pool.Stats
}

// Plan describes the demand put on a target.
type Plan struct {
	Rounds  int `json:"rounds"`
	Burst   int `json:"burst"`
	Workers int `json:"workers"`
}

// Validate rejects negative counts. Zero workers means one.
func (p Plan) Validate() error {
	if p.Rounds < 0 {
		return errors.InvalidArgument("rounds", "cannot be negative")
	}
	if p.Burst < 0 {
		return errors.InvalidArgument("burst", "cannot be negative")
	}
	if p.Workers < 0 {
		return errors.InvalidArgument("workers", "cannot be negative")
	}
	return nil
}

func (p Plan) workers() int {
	if p.Workers == 0 {
		return 1
	}
	return p.Workers
}

// Report summarizes a finished run.
type Report struct {
	Plan      Plan                      `json:"plan"`
	Stats     pool.Stats                `json:"stats"`
	PeakInUse int                       `json:"peak_in_use"`
	Duration  time.Duration             `json:"duration_ns"`
	Resources performance.ResourceUsage `json:"resources"`
}

// Run executes plan against target and reports the pool's final state.
// With more than one worker the target must be safe for concurrent use;
// a bare *pool.Pool is rejected. Cancellation is observed between rounds,
// after the round's instances have been returned.
func Run[T any](ctx context.Context, target Target[T], plan Plan) (*Report, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	workers := plan.workers()
	if _, bare := target.(*pool.Pool[T]); bare && workers > 1 {
		return nil, errors.InvalidArgument("workers", "a pool shared by several workers must be wrapped with pool.Locked")
	}

	name := target.Stats().Name
	log := logger.WithContext(logger.WithPool(ctx, name))
	log.Debug("workload starting",
		zap.Int("rounds", plan.Rounds),
		zap.Int("burst", plan.Burst),
		zap.Int("workers", workers))

	var peak atomic.Int64
	timer := metrics.NewTimer("workload." + name)

	var err error
	if workers == 1 {
		err = drive(ctx, target, plan, &peak)
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for i := 0; i < workers; i++ {
			g.Go(func() error {
				return drive(gctx, target, plan, &peak)
			})
		}
		err = g.Wait()
	}
	elapsed := timer.Stop()

	if err != nil {
		log.Warn("workload interrupted", zap.Error(err), zap.Duration("elapsed", elapsed))
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "workload interrupted").
			WithDetail("pool", name)
	}

	report := &Report{
		Plan:      Plan{Rounds: plan.Rounds, Burst: plan.Burst, Workers: workers},
		Stats:     target.Stats(),
		PeakInUse: int(peak.Load()),
		Duration:  elapsed,
	}

	usage, serr := performance.Sample(ctx)
	if serr != nil {
		log.Warn("resource sampling failed", zap.Error(serr))
	} else {
		report.Resources = usage
	}

	log.Info("workload finished",
		zap.Duration("duration", elapsed),
		zap.Int("created", report.Stats.Created),
		zap.Int("grows", report.Stats.Grows),
		zap.Int("peak_in_use", report.PeakInUse))
	return report, nil
}

// drive runs one worker's rounds.
func drive[T any](ctx context.Context, target Target[T], plan Plan, peak *atomic.Int64) error {
	held := make([]T, 0, plan.Burst)
	for round := 0; round < plan.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		for i := 0; i < plan.Burst; i++ {
			held = append(held, target.Checkout())
		}
		observePeak(peak, int64(target.Stats().InUse))

		for i := len(held) - 1; i >= 0; i-- {
			target.Return(held[i])
			var zero T
			held[i] = zero
		}
		held = held[:0]
	}
	return nil
}

func observePeak(peak *atomic.Int64, v int64) {
	for {
		cur := peak.Load()
		if v <= cur || peak.CompareAndSwap(cur, v) {
			return
		}
	}
}
