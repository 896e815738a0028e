// Package metrics exposes pool activity as Prometheus metrics.
//
// # Basic Usage
//
//	reg := prometheus.NewRegistry()
//	collector := metrics.NewPoolCollector(reg)
//
//	bullets, _ := pool.New(pool.Config[*Bullet]{
//	    Name:     "bullets",
//	    Factory:  newBullet,
//	    Observer: collector,
//	})
//
//	// later
//	metrics.WriteText(os.Stdout, reg)
//
// # Metric Types
//
// Counters track checkouts, returns, instances created and growth events.
// Gauges track instances in use and available, labelled by pool name.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/ajitpratap0/stockpile/pkg/pool"
)

const namespace = "stockpile"

// PoolCollector records pool events into Prometheus metrics. It implements
// pool.Observer and is safe to share between pools.
type PoolCollector struct {
	checkouts  *prometheus.CounterVec // by pool
	returns    *prometheus.CounterVec // by pool
	created    *prometheus.CounterVec // by pool, growth
	growEvents *prometheus.CounterVec // by pool, growth
	inUse      *prometheus.GaugeVec   // by pool
	available  *prometheus.GaugeVec   // by pool
}

var _ pool.Observer = (*PoolCollector)(nil)

// NewPoolCollector registers the pool metrics with reg. Passing
// prometheus.DefaultRegisterer exposes them on the default registry.
//
// Example:
//
//	collector := metrics.NewPoolCollector(prometheus.DefaultRegisterer)
func NewPoolCollector(reg prometheus.Registerer) *PoolCollector {
	factory := promauto.With(reg)

	return &PoolCollector{
		checkouts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "checkouts_total",
				Help:      "Total number of instances checked out",
			},
			[]string{"pool"},
		),
		returns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "returns_total",
				Help:      "Total number of instances returned",
			},
			[]string{"pool"},
		),
		created: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "instances_created_total",
				Help:      "Total number of instances produced by the pool factory",
			},
			[]string{"pool", "growth"},
		),
		growEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "grow_events_total",
				Help:      "Number of times an empty pool had to grow, excluding the initial fill",
			},
			[]string{"pool", "growth"},
		),
		inUse: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "in_use",
				Help:      "Instances checked out and not yet returned",
			},
			[]string{"pool"},
		),
		available: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "pool",
				Name:      "available",
				Help:      "Instances ready to be checked out",
			},
			[]string{"pool"},
		),
	}
}

// OnGrow implements pool.Observer.
func (c *PoolCollector) OnGrow(e pool.GrowEvent) {
	growth := e.Growth.String()
	c.created.WithLabelValues(e.Pool, growth).Add(float64(e.Instances))
	if e.Prefill {
		c.available.WithLabelValues(e.Pool).Set(float64(e.Created))
		return
	}
	c.growEvents.WithLabelValues(e.Pool, growth).Inc()
}

// OnCheckout implements pool.Observer.
func (c *PoolCollector) OnCheckout(u pool.Usage) {
	c.checkouts.WithLabelValues(u.Pool).Inc()
	c.setUsage(u)
}

// OnReturn implements pool.Observer.
func (c *PoolCollector) OnReturn(u pool.Usage) {
	c.returns.WithLabelValues(u.Pool).Inc()
	c.setUsage(u)
}

func (c *PoolCollector) setUsage(u pool.Usage) {
	c.inUse.WithLabelValues(u.Pool).Set(float64(u.InUse))
	c.available.WithLabelValues(u.Pool).Set(float64(u.Available))
}

// WriteText gathers every metric from g and writes it in the Prometheus
// text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
// The name parameter is for identification in logs or metrics.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the label the timer was created with.
func (t *Timer) Name() string {
	return t.name
}

// Stop returns the elapsed duration since creation. It can be called
// repeatedly.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
