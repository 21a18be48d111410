package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// CurrentProfileVersion is bumped whenever the profile layout changes.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the profile's file name in the home directory.
const DefaultProfileFileName = ".logmap_calibration.json"

// DefaultMaxAge is how long a profile is trusted.
const DefaultMaxAge = 30 * 24 * time.Hour

// CalibrationProfile records a calibration run and the host it ran on.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	NumCPU    int    `json:"num_cpu"`
	GOARCH    string `json:"goarch"`
	GOOS      string `json:"goos"`
	GoVersion string `json:"go_version"`
	WordSize  int    `json:"word_size"`

	Workers          int    `json:"workers"`
	OptimalGrain     int    `json:"optimal_grain"`
	CalibrationSeeds int    `json:"calibration_seeds"`
	CalibrationTime  string `json:"calibration_time"`
}

// NewProfile returns a profile describing the current host.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
	}
}

// IsValid reports whether the profile was produced by this profile version
// on matching hardware.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63) &&
		p.OptimalGrain > 0
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	return fmt.Sprintf("calibration profile v%d (%s/%s, %d CPUs, %d workers): grain=%d over %d seeds, calibrated %s in %s",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, p.Workers, p.OptimalGrain,
		p.CalibrationSeeds, p.CalibratedAt.Format(time.RFC3339), p.CalibrationTime)
}

// SaveProfile writes the profile as indented JSON, replacing path atomically.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create profile directory: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path. When it is missing or
// unreadable a fresh profile is returned and loaded is false.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the profile path in the user's home
// directory, or in the working directory when there is none.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}
