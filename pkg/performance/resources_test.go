package performance

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	usage, err := Sample(context.Background())
	require.NoError(t, err)

	assert.Greater(t, usage.HeapAllocBytes, uint64(0))
	assert.Greater(t, usage.HeapObjects, uint64(0))
	assert.GreaterOrEqual(t, usage.Goroutines, 1)
	if runtime.GOOS == "linux" {
		assert.Greater(t, usage.RSSBytes, uint64(0))
		assert.Greater(t, usage.Threads, int32(0))
	}
}

func TestResourceMonitor_RepeatedSamples(t *testing.T) {
	ctx := context.Background()
	rm, err := NewResourceMonitor(ctx)
	require.NoError(t, err)

	first := rm.Sample(ctx)
	assert.Greater(t, first.HeapAllocBytes, uint64(0))

	hold := make([][]byte, 0, 64)
	for i := 0; i < 64; i++ {
		hold = append(hold, make([]byte, 64<<10))
	}
	second := rm.Sample(ctx)
	runtime.KeepAlive(hold)

	assert.GreaterOrEqual(t, second.HeapAllocBytes, uint64(64*64<<10), "held buffers are live")
}
