package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ajitpratap0/stockpile/pkg/pool"
)

const instrumentationName = "github.com/ajitpratap0/stockpile/pkg/observability"

// PoolObserver emits a "pool.grow" span for every growth event and counts
// created instances, checkouts and returns as OpenTelemetry metrics.
type PoolObserver struct {
	tracer    trace.Tracer
	created   metric.Int64Counter
	checkouts metric.Int64Counter
	returns   metric.Int64Counter
}

var _ pool.Observer = (*PoolObserver)(nil)

// NewPoolObserver builds an observer from the given providers. Nil
// providers fall back to the otel globals.
func NewPoolObserver(tp trace.TracerProvider, mp metric.MeterProvider) (*PoolObserver, error) {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	created, err := meter.Int64Counter("stockpile.pool.instances_created",
		metric.WithDescription("Instances produced by the pool factory"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	checkouts, err := meter.Int64Counter("stockpile.pool.checkouts",
		metric.WithDescription("Instances checked out"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}
	returns, err := meter.Int64Counter("stockpile.pool.returns",
		metric.WithDescription("Instances returned"))
	if err != nil {
		return nil, fmt.Errorf("failed to create counter: %w", err)
	}

	return &PoolObserver{
		tracer:    tp.Tracer(instrumentationName),
		created:   created,
		checkouts: checkouts,
		returns:   returns,
	}, nil
}

// OnGrow implements pool.Observer.
func (o *PoolObserver) OnGrow(e pool.GrowEvent) {
	attrs := []attribute.KeyValue{
		attribute.String("pool.name", e.Pool),
		attribute.String("pool.growth", e.Growth.String()),
	}

	ctx, span := o.tracer.Start(context.Background(), "pool.grow",
		trace.WithAttributes(attrs...),
		trace.WithAttributes(
			attribute.Int("pool.instances", e.Instances),
			attribute.Int("pool.created", e.Created),
			attribute.Bool("pool.prefill", e.Prefill),
		),
	)
	defer span.End()

	o.created.Add(ctx, int64(e.Instances), metric.WithAttributes(attrs...))
}

// OnCheckout implements pool.Observer.
func (o *PoolObserver) OnCheckout(u pool.Usage) {
	o.checkouts.Add(context.Background(), 1, metric.WithAttributes(attribute.String("pool.name", u.Pool)))
}

// OnReturn implements pool.Observer.
func (o *PoolObserver) OnReturn(u pool.Usage) {
	o.returns.Add(context.Background(), 1, metric.WithAttributes(attribute.String("pool.name", u.Pool)))
}
