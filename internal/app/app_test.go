package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/agbru/logmap/internal/errors"
	"github.com/agbru/logmap/internal/logging"
	"github.com/agbru/logmap/internal/metrics"
	"github.com/agbru/logmap/internal/ui"
)

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	a, err := New(append([]string{"logmap"}, args...), &errOut, WithLogger(logging.Nop{}))
	if err != nil {
		t.Fatalf("New(%v): %v", args, err)
	}
	code = a.Run(context.Background(), &out)
	return code, out.String(), errOut.String()
}

func TestApplication_QuietModes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"calc wraparound", []string{"calc", "-seed", "4294967296", "-n", "1", "-p", "1000000007", "-mu", "1"}, "294967268"},
		{"batch range", []string{"batch", "-i", "1..3"}, "24 72 0"},
		{"batch list", []string{"batch", "-i", "[1,2,3]", "-n", "3", "-p", "97", "-mu", "4"}, "24 72 0"},
		{"batch empty", []string{"batch", "-i", "[]"}, ""},
		{"project", []string{"project", "-i", "[256,1,-1]"}, "0 1 255"},
		{"bytes", []string{"bytes", "-i", `"AQID"`}, "24 72 0"},
		{"identity", []string{"identity", "-i", "4..6"}, "4 5 6"},
		{"async", []string{"async", "-i", "1..3"}, "24 72 0"},
		{"mode flag", []string{"-mode", "batch", "-i", "1..3"}, "24 72 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := run(t, append(tt.args, "-q", "-no-color")...)
			if code != apperrors.ExitSuccess {
				t.Fatalf("exit %d, stderr %q", code, errOut)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplication_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"scalar input", []string{"batch", "-i", "42"}, apperrors.ExitErrorInput},
		{"mixed list", []string{"async", "-i", `[1,"two"]`}, apperrors.ExitErrorInput},
		{"bytes needs raw bytes", []string{"bytes", "-i", "1..3"}, apperrors.ExitErrorInput},
		{"missing file", []string{"batch", "-i", "@/nonexistent/seeds.bin"}, apperrors.ExitErrorInput},
		{"dashboard with bad input", []string{"dashboard", "-i", "42"}, apperrors.ExitErrorInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := run(t, append(tt.args, "-q", "-no-color")...)
			if code != tt.code {
				t.Errorf("exit %d, want %d (stderr %q)", code, tt.code, errOut)
			}
			if errOut == "" {
				t.Error("expected an error message on stderr")
			}
		})
	}
}

func TestApplication_VerboseOutput(t *testing.T) {
	code, out, _ := run(t, "batch", "-i", "1..3", "-v", "-no-color")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"Execution Configuration", "Result of batch", "[24 72 0]", "Memory Stats", "System:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestApplication_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "values.txt")
	code, _, _ := run(t, "batch", "-i", "1..3", "-q", "-o", path)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit %d", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "24\n72\n0\n") {
		t.Errorf("file content = %q", data)
	}
}

func TestApplication_RecordsAsyncMetrics(t *testing.T) {
	m := metrics.New()
	var out, errOut bytes.Buffer
	a, err := New([]string{"logmap", "async", "-i", "1..3", "-q"}, &errOut, WithMetrics(m), WithLogger(logging.Nop{}))
	if err != nil {
		t.Fatal(err)
	}
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}

	var buf bytes.Buffer
	if err := dumpMetrics(m, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "logmap_jobs_submitted_total 1") {
		t.Errorf("metrics missing submitted job:\n%s", buf.String())
	}
}

func TestApplication_Calibrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	code, out, errOut := run(t, "calibrate", "-calibration-profile", path, "-workers", "2", "-no-color")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "Calibration Summary") {
		t.Errorf("output = %q", out)
	}

	a, err := New([]string{"logmap", "batch", "-i", "1..3", "-workers", "2", "-calibration-profile", path}, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if a.Config.Grain <= 0 {
		t.Errorf("grain = %d, want the calibrated grain", a.Config.Grain)
	}
}

func TestApplication_ThemeSelection(t *testing.T) {
	defer ui.SetCurrent(ui.Current())
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"calc", "-q", "-theme", "orange"}, ui.ThemeOrange},
		{[]string{"calc", "-q", "-theme", "light"}, ui.ThemeLight},
		{[]string{"calc", "-q", "-theme", "light", "-no-color"}, ui.ThemeNone},
	}
	for _, tt := range tests {
		if code, _, errOut := run(t, tt.args...); code != apperrors.ExitSuccess {
			t.Fatalf("%v: exit %d (%s)", tt.args, code, errOut)
		}
		if got := ui.Current().Name; got != tt.want {
			t.Errorf("%v: theme %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestApplication_Version(t *testing.T) {
	code, out, _ := run(t, "-version")
	if code != apperrors.ExitSuccess || !strings.Contains(out, "logmap dev") {
		t.Errorf("exit %d, output %q", code, out)
	}
}

func TestNew_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		help bool
	}{
		{"help", []string{"-help"}, true},
		{"unknown mode", []string{"frobnicate"}, false},
		{"zero modulus", []string{"batch", "-i", "1..3", "-p", "0"}, false},
		{"missing input", []string{"batch"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errOut bytes.Buffer
			_, err := New(append([]string{"logmap"}, tt.args...), &errOut)
			if err == nil {
				t.Fatal("expected an error")
			}
			if IsHelpError(err) != tt.help {
				t.Errorf("IsHelpError = %v, want %v", IsHelpError(err), tt.help)
			}
		})
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"batch", "-V"}, true},
		{[]string{"batch", "-i", "1..3"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
