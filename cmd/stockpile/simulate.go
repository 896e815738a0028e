package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/stockpile/internal/workload"
	"github.com/ajitpratap0/stockpile/pkg/config"
	stockjson "github.com/ajitpratap0/stockpile/pkg/json"
	"github.com/ajitpratap0/stockpile/pkg/logger"
	"github.com/ajitpratap0/stockpile/pkg/metrics"
	"github.com/ajitpratap0/stockpile/pkg/observability"
	"github.com/ajitpratap0/stockpile/pkg/performance"
	"github.com/ajitpratap0/stockpile/pkg/pool"
)

// particle is the simulated pooled object: an id plus a scratch buffer
// standing in for whatever makes real instances expensive.
type particle struct {
	ID  int
	Buf []byte
}

func newSimulateCommand(a *app) *cobra.Command {
	var (
		only        string
		growth      string
		initialSize int
		baseSize    int
		payload     int
		profileDir  string
		profiles    []string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run simulated demand against the configured pools",
		Long: `Run simulated demand against every configured pool and print a JSON report
per pool. Pool settings come from the configuration file; --growth,
--initial-size and --base-size override them for every pool.

Example:
  stockpile simulate --growth lean --rounds 1000 --burst 16 --workers 4 --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pools := a.cfg.Pools
			if only != "" {
				pc, ok := a.cfg.Pool(only)
				if !ok {
					return fmt.Errorf("pool %q is not configured", only)
				}
				pools = []config.PoolConfig{pc}
			}

			flags := cmd.Flags()
			for i := range pools {
				if flags.Changed("growth") {
					pools[i].Growth = growth
				}
				if flags.Changed("initial-size") {
					pools[i].InitialSize = initialSize
				}
				if flags.Changed("base-size") {
					pools[i].BaseSize = baseSize
				}
				if err := pools[i].Validate(); err != nil {
					return err
				}
			}

			prof, err := newProfiler(profileDir, profiles)
			if err != nil {
				return err
			}
			return runSimulation(cmd.Context(), a.cfg, pools, payload, prof, cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&only, "pool", "", "Only simulate the named pool")
	flags.StringVar(&growth, "growth", "double", "Growth mode for every pool (lean, double)")
	flags.IntVar(&initialSize, "initial-size", 0, "Instances created up front")
	flags.IntVar(&baseSize, "base-size", 0, "Double growth step (0 = initial size)")
	flags.IntVar(&payload, "payload-bytes", 256, "Scratch bytes carried by each pooled instance")
	flags.Int("rounds", 100, "Number of checkout bursts per worker")
	flags.Int("burst", 8, "Instances checked out per round before all are returned")
	flags.Int("workers", 1, "Goroutines sharing each pool")
	flags.Duration("timeout", 0, "Bound on the whole run (0 = none)")
	flags.Bool("metrics", false, "Print Prometheus metrics after the report")
	flags.Bool("trace", false, "Export growth spans to stderr")
	flags.StringVar(&profileDir, "profile-dir", "", "Write pprof profiles covering the run to this directory")
	flags.StringSliceVar(&profiles, "profile", []string{"cpu", "memory"}, "Profiles to write with --profile-dir (cpu, memory, mutex)")

	_ = a.v.BindPFlag("workload.rounds", flags.Lookup("rounds"))
	_ = a.v.BindPFlag("workload.burst", flags.Lookup("burst"))
	_ = a.v.BindPFlag("workload.workers", flags.Lookup("workers"))
	_ = a.v.BindPFlag("workload.timeout", flags.Lookup("timeout"))
	_ = a.v.BindPFlag("metrics.enabled", flags.Lookup("metrics"))
	_ = a.v.BindPFlag("tracing.enabled", flags.Lookup("trace"))

	return cmd
}

// newProfiler returns nil when no profile directory is set.
func newProfiler(dir string, names []string) (*performance.Profiler, error) {
	if dir == "" {
		return nil, nil
	}
	pc := performance.ProfileConfig{OutputDir: dir, MutexProfileFraction: 1}
	for _, name := range names {
		t, err := performance.ParseProfileType(name)
		if err != nil {
			return nil, err
		}
		pc.Types = append(pc.Types, t)
	}
	return performance.NewProfiler(pc, logger.Get()), nil
}

func runSimulation(parent context.Context, cfg *config.Config, pools []config.PoolConfig, payload int, prof *performance.Profiler, cmd *cobra.Command) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()
	if cfg.Workload.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Workload.Timeout)
		defer cancel()
	}

	log := logger.Get().With(zap.String("component", "stockpile-cli"))

	var observers []pool.Observer

	reg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		observers = append(observers, metrics.NewPoolCollector(reg))
	}

	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracing(os.Stderr, cfg.Tracing)
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Warn("failed to flush traces", zap.Error(err))
			}
		}()

		tracer, err := observability.NewPoolObserver(tp, nil)
		if err != nil {
			return fmt.Errorf("failed to create pool observer: %w", err)
		}
		observers = append(observers, tracer)
	}

	plan := workload.Plan{
		Rounds:  cfg.Workload.Rounds,
		Burst:   cfg.Workload.Burst,
		Workers: cfg.Workload.Workers,
	}

	if prof != nil {
		if err := prof.Start(); err != nil {
			return err
		}
		defer func() {
			if _, err := prof.Stop(); err != nil {
				log.Warn("failed to write profiles", zap.Error(err))
			}
		}()
	}

	reports := make([]*workload.Report, 0, len(pools))
	for _, pc := range pools {
		p, err := newParticlePool(pc, payload, pool.Observers(observers...), log)
		if err != nil {
			return err
		}

		log.Info("simulating pool",
			zap.String("pool", pc.Name),
			zap.String("growth", pc.Growth),
			zap.Int("initial_size", pc.InitialSize),
			zap.Int("base_size", pc.BaseSize))

		report, err := workload.Run[*particle](logger.WithRunID(ctx, pc.Name), p, plan)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}

	out := cmd.OutOrStdout()
	if err := stockjson.Encode(out, reports); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if cfg.Metrics.Enabled {
		if err := metrics.WriteText(out, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// newParticlePool builds a shareable pool for one configured entry.
func newParticlePool(pc config.PoolConfig, payload int, obs pool.Observer, log *zap.Logger) (*pool.Locked[*particle], error) {
	mode, err := pc.GrowthMode()
	if err != nil {
		return nil, err
	}

	next := 0
	return pool.NewLocked(pool.Config[*particle]{
		Name: pc.Name,
		Factory: func() *particle {
			next++
			return &particle{ID: next, Buf: make([]byte, payload)}
		},
		InitialSize: pc.InitialSize,
		BaseSize:    pc.BaseSize,
		Growth:      mode,
		Hooks: pool.HookFuncs[*particle]{
			Release: func(p *particle) { clear(p.Buf) },
		},
		Observer: obs,
		Logger:   log,
	})
}
