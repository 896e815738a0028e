// Package performance samples process resource usage so pool growth
// policies can be compared by their memory footprint, and captures pprof
// profiles around a workload.
package performance

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
)

// ResourceUsage contains resource usage information
type ResourceUsage struct {
	RSSBytes       uint64 `json:"rss_bytes"`
	VMSBytes       uint64 `json:"vms_bytes"`
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	HeapObjects    uint64 `json:"heap_objects"`
	Goroutines     int    `json:"goroutines"`
	Threads        int32  `json:"threads"`
}

// ResourceMonitor samples the current process.
type ResourceMonitor struct {
	process *process.Process
}

// NewResourceMonitor creates a resource monitor for this process
func NewResourceMonitor(ctx context.Context) (*ResourceMonitor, error) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())) //nolint:gosec // pid fits in int32
	if err != nil {
		return nil, fmt.Errorf("failed to open process: %w", err)
	}
	return &ResourceMonitor{process: proc}, nil
}

// Sample returns current resource usage. Heap figures come from the Go
// runtime; RSS, VMS and thread count come from the operating system and
// are left zero where the platform does not report them.
func (rm *ResourceMonitor) Sample(ctx context.Context) ResourceUsage {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	usage := ResourceUsage{
		HeapAllocBytes: memStats.HeapAlloc,
		HeapObjects:    memStats.HeapObjects,
		Goroutines:     runtime.NumGoroutine(),
	}

	if memInfo, err := rm.process.MemoryInfoWithContext(ctx); err == nil {
		usage.RSSBytes = memInfo.RSS
		usage.VMSBytes = memInfo.VMS
	}
	usage.Threads, _ = rm.process.NumThreadsWithContext(ctx)

	return usage
}

// Sample is a one-shot convenience around NewResourceMonitor.
func Sample(ctx context.Context) (ResourceUsage, error) {
	rm, err := NewResourceMonitor(ctx)
	if err != nil {
		return ResourceUsage{}, err
	}
	return rm.Sample(ctx), nil
}
