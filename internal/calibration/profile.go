package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/agbru/bigint/internal/config"
	apperrors "github.com/agbru/bigint/internal/errors"
	"github.com/agbru/bigint/internal/sysmon"
)

// CurrentProfileVersion is bumped whenever the meaning of a stored threshold
// changes, which invalidates older profiles.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the file name used in the home directory.
const DefaultProfileFileName = config.DefaultProfileFileName

// CalibrationProfile is a saved calibration result together with the
// hardware it was measured on.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	NumCPU      int      `json:"num_cpu"`
	GOARCH      string   `json:"goarch"`
	GOOS        string   `json:"goos"`
	GoVersion   string   `json:"go_version"`
	WordSize    int      `json:"word_size"`
	CPUModel    string   `json:"cpu_model,omitempty"`
	CPUFeatures []string `json:"cpu_features,omitempty"`

	// OptimalKaratsubaThreshold is the fastest measured cutover, in limbs.
	OptimalKaratsubaThreshold int `json:"optimal_karatsuba_threshold"`
	// CalibrationLimbs is the operand size used for the measurement.
	CalibrationLimbs int `json:"calibration_limbs"`
	// CalibrationTime is the wall time the calibration took.
	CalibrationTime string `json:"calibration_time,omitempty"`
}

// NewProfile returns an empty profile describing the current machine.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CPUModel:       sysmon.CPUModel(),
		CPUFeatures:    sysmon.CPUFeatures(),
	}
}

// IsValid reports whether the profile was produced by this profile version
// on matching hardware. A nil profile is invalid.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63) &&
		p.OptimalKaratsubaThreshold >= 0
}

// IsStale reports whether the profile is older than maxAge. A nil profile is
// always stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String renders the profile for humans.
func (p *CalibrationProfile) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Calibration profile v%d (%s)\n", p.ProfileVersion, p.CalibratedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "  Hardware:   %d CPUs, %s/%s, %d-bit words\n", p.NumCPU, p.GOOS, p.GOARCH, p.WordSize)
	if p.CPUModel != "" {
		fmt.Fprintf(&sb, "  CPU:        %s\n", p.CPUModel)
	}
	if len(p.CPUFeatures) > 0 {
		fmt.Fprintf(&sb, "  Features:   %s\n", strings.Join(p.CPUFeatures, ", "))
	}
	fmt.Fprintf(&sb, "  Go:         %s\n", p.GoVersion)
	fmt.Fprintf(&sb, "  Karatsuba:  %d limbs (measured at %d limbs)\n", p.OptimalKaratsubaThreshold, p.CalibrationLimbs)
	if p.CalibrationTime != "" {
		fmt.Fprintf(&sb, "  Duration:   %s\n", p.CalibrationTime)
	}
	return sb.String()
}

// SaveProfile writes the profile as indented JSON, creating the parent
// directory if needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return apperrors.WrapError(err, "encoding calibration profile")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "creating profile directory %s", dir)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return apperrors.WrapError(err, "writing calibration profile")
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
		return nil, apperrors.WrapError(err, "decoding calibration profile %s", path)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path. When the file is missing or
// unreadable it returns a fresh profile and false.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the profile location in the user's home
// directory, falling back to the working directory.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}
