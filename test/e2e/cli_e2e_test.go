package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the logmap binary and runs it end to end.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}

	binName := "logmap"
	if runtime.GOOS == "windows" {
		binName = "logmap.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	// go test runs in the package directory; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/logmap")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build logmap: %v", err)
	}

	seeds := filepath.Join(t.TempDir(), "seeds.bin")
	if err := os.WriteFile(seeds, []byte{1, 2, 3}, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		env      []string
		wantOut  string
		wantCode int
	}{
		{"batch range", []string{"batch", "-i", "1..3", "-q"}, nil, "24 72 0", 0},
		{"batch styled", []string{"batch", "-i", "[1,2,3]"}, nil, "Result of batch", 0},
		{"calc", []string{"calc", "-seed", "4294967296", "-n", "1", "-p", "1000000007", "-mu", "1", "-q"}, nil, "294967268", 0},
		{"bytes from file", []string{"bytes", "-i", "@" + seeds, "-q"}, nil, "24 72 0", 0},
		{"project", []string{"project", "-i", "[256,1,-1]", "-q"}, nil, "0 1 255", 0},
		{"async", []string{"async", "-i", "1..3", "-q"}, nil, "24 72 0", 0},
		{"environment", []string{"-q"}, []string{"LOGMAP_MODE=identity", "LOGMAP_INPUT=7..9"}, "7 8 9", 0},
		{"help", []string{"--help"}, nil, "usage", 0},
		{"version", []string{"--version"}, nil, "logmap", 0},
		{"invalid input", []string{"batch", "-i", "42", "-q"}, nil, "invalid input", 3},
		{"zero modulus", []string{"batch", "-i", "1..3", "-p", "0"}, nil, "modulus", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(append(os.Environ(), "NO_COLOR=1"), tt.env...)
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("run: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("output missing %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
