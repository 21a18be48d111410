// Package sysmon samples host CPU and memory usage for the CLI's verbose
// report.
package sysmon

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent  float64 // 0.0 .. 100.0, since the previous sample
	MemPercent  float64 // 0.0 .. 100.0
	MemTotal    uint64  // bytes
	LogicalCPUs int
}

// Sample collects a system-wide snapshot. CPU usage is measured as the delta
// since the previous call, so the first sample in a process reads since boot.
// Fields that cannot be read are left zero.
func Sample(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		s.LogicalCPUs = n
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemTotal = vmem.Total
	}
	return s
}
