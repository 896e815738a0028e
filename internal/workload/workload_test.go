package workload

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/stockpile/pkg/errors"
	"github.com/ajitpratap0/stockpile/pkg/pool"
	"github.com/ajitpratap0/stockpile/pkg/testutil"
)

func widgetPool(t *testing.T, growth pool.GrowthMode, base int) *pool.Pool[*testutil.Widget] {
	t.Helper()
	f := &testutil.WidgetFactory{}
	p, err := pool.New(pool.Config[*testutil.Widget]{
		Name:     "widgets",
		Factory:  f.New,
		BaseSize: base,
		Growth:   growth,
		Logger:   testutil.TestLogger(t),
	})
	require.NoError(t, err)
	return p
}

func TestRun_SingleWorker(t *testing.T) {
	tests := []struct {
		name        string
		growth      pool.GrowthMode
		base        int
		wantCreated int
		wantGrows   int
	}{
		{name: "lean grows one at a time", growth: pool.GrowthLean, wantCreated: 8, wantGrows: 8},
		{name: "double overshoots by the step", growth: pool.GrowthDouble, base: 3, wantCreated: 9, wantGrows: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := testutil.TestContext(t)
			defer cancel()

			p := widgetPool(t, tt.growth, tt.base)
			report, err := Run[*testutil.Widget](ctx, p, Plan{Rounds: 5, Burst: 8})
			require.NoError(t, err)

			assert.Equal(t, Plan{Rounds: 5, Burst: 8, Workers: 1}, report.Plan)
			assert.Equal(t, tt.wantCreated, report.Stats.Created)
			assert.Equal(t, tt.wantGrows, report.Stats.Grows)
			assert.Equal(t, 0, report.Stats.InUse)
			assert.Equal(t, report.Stats.Created, report.Stats.Available)
			assert.Equal(t, uint64(40), report.Stats.Checkouts)
			assert.Equal(t, uint64(40), report.Stats.Returns)
			assert.Equal(t, 8, report.PeakInUse)
		})
	}
}

func TestRun_ZeroRounds(t *testing.T) {
	p := widgetPool(t, pool.GrowthLean, 0)

	report, err := Run[*testutil.Widget](context.Background(), p, Plan{Burst: 4})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Stats.Created)
	assert.Equal(t, 0, report.PeakInUse)
}

func TestRun_ConcurrentWorkers(t *testing.T) {
	ctx, cancel := testutil.TestContext(t)
	defer cancel()

	f := &testutil.WidgetFactory{}
	locked, err := pool.NewLocked(pool.Config[*testutil.Widget]{
		Name:     "shared",
		Factory:  f.New,
		BaseSize: 4,
		Logger:   testutil.TestLogger(t),
	})
	require.NoError(t, err)

	plan := Plan{Rounds: 50, Burst: 6, Workers: 4}
	report, err := Run[*testutil.Widget](ctx, locked, plan)
	require.NoError(t, err)

	stats := report.Stats
	assert.Equal(t, 0, stats.InUse)
	assert.Equal(t, stats.Created, stats.Available)
	assert.Equal(t, uint64(50*6*4), stats.Checkouts)
	assert.Equal(t, stats.Checkouts, stats.Returns)
	assert.Equal(t, f.Calls, stats.Created)
	assert.GreaterOrEqual(t, stats.Created, 6)
	assert.LessOrEqual(t, stats.Created, 6*4+3, "growth stops once every worker's burst fits")
	assert.GreaterOrEqual(t, report.PeakInUse, 6)
	assert.LessOrEqual(t, report.PeakInUse, 24)
}

func TestRun_BarePoolRejectsWorkers(t *testing.T) {
	p := widgetPool(t, pool.GrowthLean, 0)

	_, err := Run[*testutil.Widget](context.Background(), p, Plan{Rounds: 1, Burst: 1, Workers: 2})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Equal(t, 0, p.Created())
}

func TestRun_InvalidPlan(t *testing.T) {
	p := widgetPool(t, pool.GrowthLean, 0)

	for _, plan := range []Plan{{Rounds: -1}, {Burst: -1}, {Workers: -1}} {
		_, err := Run[*testutil.Widget](context.Background(), p, plan)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err), "plan %+v", plan)
	}
}

// cancellingTarget cancels its context after a number of checkouts.
type cancellingTarget struct {
	*pool.Pool[*testutil.Widget]
	after  int
	cancel context.CancelFunc
}

func (c *cancellingTarget) Checkout() *testutil.Widget {
	c.after--
	if c.after == 0 {
		c.cancel()
	}
	return c.Pool.Checkout()
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := widgetPool(t, pool.GrowthLean, 0)
	target := &cancellingTarget{Pool: p, after: 7, cancel: cancel}

	report, err := Run[*testutil.Widget](ctx, target, Plan{Rounds: 100, Burst: 3})
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, context.Canceled)

	// The interrupted round still hands everything back.
	assert.Equal(t, 0, p.InUse())
	assert.Equal(t, uint64(9), p.Stats().Checkouts)
}

func TestObservePeak(t *testing.T) {
	var peak atomic.Int64
	for _, v := range []int64{3, 1, 7, 5} {
		observePeak(&peak, v)
	}
	assert.Equal(t, int64(7), peak.Load())
}
