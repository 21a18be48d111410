package calibration

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/agbru/logmap/internal/config"
	"github.com/agbru/logmap/internal/format"
	"github.com/agbru/logmap/internal/ui"
)

func grainLabel(grain int) string {
	if grain == config.SequentialGrain {
		return "Sequential"
	}
	return strconv.Itoa(grain) + " seeds"
}

// printCalibrationResults formats and prints the calibration results table.
func printCalibrationResults(out io.Writer, results []Measurement, bestGrain int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sGrain%s        │ %sExecution Time%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
		}
		highlight := ""
		if res.Grain == bestGrain && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12s%s │ %s%s%s%s\n", ui.ColorCyan(), grainLabel(res.Grain), ui.ColorReset(), ui.ColorYellow(), durationStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

func printCalibrationOutput(out io.Writer, p *CalibrationProfile, path string) {
	fmt.Fprintf(out, "\n%sCalibration%s: grain=%s%s%s, saved to %s\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), grainLabel(p.OptimalGrain), ui.ColorReset(), path)
}
