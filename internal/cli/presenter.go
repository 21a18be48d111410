package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/logmap/internal/config"
	apperrors "github.com/agbru/logmap/internal/errors"
	"github.com/agbru/logmap/internal/format"
	"github.com/agbru/logmap/internal/metrics"
	"github.com/agbru/logmap/internal/sysmon"
	"github.com/agbru/logmap/internal/ui"
)

// PrintExecutionConfig displays the map parameters and pool sizing.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Mode %s%s%s: x <- %s%d%s * x * (x + 1) mod %s%d%s, %s%d%s iteration(s).\n",
		ui.ColorMagenta(), cfg.Mode, ui.ColorReset(),
		ui.ColorCyan(), cfg.Multiplier, ui.ColorReset(),
		ui.ColorCyan(), cfg.Modulus, ui.ColorReset(),
		ui.ColorCyan(), cfg.Iterations, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if cfg.Mode == config.ModeAsync {
		fmt.Fprintf(out, "Pools: dispatch=%s%d%s, data-parallel=%s%d%s (grain %d), reply timeout %s%s%s.\n",
			ui.ColorCyan(), cfg.PoolSize, ui.ColorReset(),
			ui.ColorCyan(), cfg.Workers, ui.ColorReset(), cfg.Grain,
			ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	}
	fmt.Fprintln(out)
}

// DisplayMemoryStats shows heap usage before and after an operation.
func DisplayMemoryStats(before, after metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:  %s\n", format.FormatBytes(after.HeapAlloc))
	fmt.Fprintf(out, "  Heap objects: %d\n", after.HeapObjects)
	fmt.Fprintf(out, "  GC cycles:    %d\n", after.GCsSince(before))
}

// DisplaySystemStats shows a host usage sample.
func DisplaySystemStats(s sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "\nSystem:\n")
	fmt.Fprintf(out, "  CPU:    %.1f%% of %d logical CPUs\n", s.CPUPercent, s.LogicalCPUs)
	fmt.Fprintf(out, "  Memory: %.1f%% of %s\n", s.MemPercent, format.FormatBytes(s.MemTotal))
}

// HandleError prints err and returns the matching exit code.
func HandleError(err error, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	code := apperrors.ExitCode(err)
	label := "Error"
	switch code {
	case apperrors.ExitErrorTimeout:
		label = "Timeout"
	case apperrors.ExitErrorCanceled:
		label = "Canceled"
	case apperrors.ExitErrorInput:
		label = "Invalid input"
	case apperrors.ExitErrorConfig:
		label = "Configuration error"
	}
	fmt.Fprintf(out, "%s%s: %v%s\n", ui.ColorRed(), label, err, ui.ColorReset())
	return code
}
