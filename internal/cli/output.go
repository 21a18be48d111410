// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatValues], [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/logmap/internal/format"
	"github.com/agbru/logmap/internal/ui"
)

const (
	// TruncationLimit is the number of values from which a result is
	// abbreviated on the terminal.
	TruncationLimit = 32
	// DisplayEdges is the number of values shown at each end of an
	// abbreviated result.
	DisplayEdges = 8
)

// Result is one finished operation ready for display.
type Result struct {
	// Operation names what produced the values (e.g. "batch").
	Operation string
	// JobID is set for asynchronous results.
	JobID    string
	Values   []int64
	Duration time.Duration
}

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints bare values only.
	Quiet bool
	// Verbose disables truncation.
	Verbose bool
}

// FormatValues joins values with single spaces.
func FormatValues(values []int64) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	return b.String()
}

// FormatTruncatedValues is FormatValues for at most TruncationLimit values;
// longer slices keep DisplayEdges values at each end around an ellipsis.
func FormatTruncatedValues(values []int64) (string, bool) {
	if len(values) <= TruncationLimit {
		return FormatValues(values), false
	}
	head := FormatValues(values[:DisplayEdges])
	tail := FormatValues(values[len(values)-DisplayEdges:])
	return fmt.Sprintf("%s ... %s", head, tail), true
}

// FormatQuietResult formats a result for quiet mode: the values on one line.
func FormatQuietResult(r Result) string {
	return FormatValues(r.Values)
}

// DisplayQuietResult outputs a result in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, r Result) {
	fmt.Fprintln(out, FormatQuietResult(r))
}

// DisplayResult prints a styled summary of r.
func DisplayResult(out io.Writer, r Result, verbose bool) {
	s := ui.CurrentStyles()
	fmt.Fprintln(out, s.Header.Render(fmt.Sprintf("Result of %s", r.Operation)))
	if r.JobID != "" {
		fmt.Fprintf(out, "%s %s\n", s.Label.Render("Job:     "), s.Value.Render(r.JobID))
	}
	fmt.Fprintf(out, "%s %s\n", s.Label.Render("Count:   "), s.Value.Render(strconv.Itoa(len(r.Values))))
	fmt.Fprintf(out, "%s %s\n", s.Label.Render("Time:    "), s.Value.Render(format.FormatExecutionDuration(r.Duration)))

	text, truncated := FormatValues(r.Values), false
	if !verbose {
		text, truncated = FormatTruncatedValues(r.Values)
	}
	fmt.Fprintf(out, "%s %s\n", s.Label.Render("Values:  "), s.Value.Render("["+text+"]"))
	if truncated {
		fmt.Fprintf(out, "%s(truncated) Tip: use -verbose or -o FILE for every value.%s\n", ui.ColorYellow(), ui.ColorReset())
	}
}

// WriteResultToFile writes r to the configured file, one value per line
// after a commented header.
func WriteResultToFile(r Result, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# logmap %s\n", r.Operation)
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	if r.JobID != "" {
		fmt.Fprintf(file, "# Job: %s\n", r.JobID)
	}
	fmt.Fprintf(file, "# Duration: %s\n", r.Duration)
	fmt.Fprintf(file, "# Count: %d\n", len(r.Values))
	for _, v := range r.Values {
		fmt.Fprintln(file, v)
	}
	return file.Close()
}

// DisplayResultWithConfig displays r according to config and saves it when
// an output file is configured.
func DisplayResultWithConfig(out io.Writer, r Result, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, r)
	} else {
		DisplayResult(out, r, config.Verbose)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(r, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
