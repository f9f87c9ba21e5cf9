package calibration

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewProfile_DescribesThisMachine(t *testing.T) {
	t.Parallel()
	p := NewProfile()
	got := [4]any{p.NumCPU, p.GOARCH, p.GOOS, p.GoVersion}
	want := [4]any{runtime.NumCPU(), runtime.GOARCH, runtime.GOOS, runtime.Version()}
	if got != want {
		t.Errorf("hardware = %v, want %v", got, want)
	}
	if p.ProfileVersion != CurrentProfileVersion || p.CalibratedAt.IsZero() {
		t.Errorf("profile header = v%d at %v", p.ProfileVersion, p.CalibratedAt)
	}
	if !p.IsValid() {
		t.Error("fresh profile is not valid on the machine that made it")
	}
}

func TestProfile_SaveThenLoad(t *testing.T) {
	t.Parallel()
	// The parent directory does not exist yet.
	path := filepath.Join(t.TempDir(), "nested", "profile.json")

	saved := NewProfile()
	saved.OptimalKaratsubaThreshold = 24
	saved.CalibrationLimbs = 384
	saved.CalibrationTime = "1.5s"
	if err := saved.SaveProfile(path); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}

	loaded, err := loadProfile(path)
	if err != nil {
		t.Fatalf("loadProfile() error = %v", err)
	}
	if diff := cmp.Diff(saved, loaded, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestProfile_IsValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*CalibrationProfile)
		want   bool
	}{
		{"unchanged", func(*CalibrationProfile) {}, true},
		{"other cpu count", func(p *CalibrationProfile) { p.NumCPU += 7 }, false},
		{"other arch", func(p *CalibrationProfile) { p.GOARCH = "sparc" }, false},
		{"other word size", func(p *CalibrationProfile) { p.WordSize = 16 }, false},
		{"older format", func(p *CalibrationProfile) { p.ProfileVersion = CurrentProfileVersion - 1 }, false},
		{"negative threshold", func(p *CalibrationProfile) { p.OptimalKaratsubaThreshold = -1 }, false},
		{"other go version", func(p *CalibrationProfile) { p.GoVersion = "go1.0" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewProfile()
			tt.mutate(p)
			if got := p.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}

	var nilProfile *CalibrationProfile
	if nilProfile.IsValid() {
		t.Error("nil profile is valid")
	}
}

func TestProfile_IsStale(t *testing.T) {
	t.Parallel()
	p := NewProfile()
	if p.IsStale(time.Hour) {
		t.Error("fresh profile is stale")
	}
	p.CalibratedAt = time.Now().Add(-2 * time.Hour)
	if !p.IsStale(time.Hour) {
		t.Error("two-hour-old profile is not stale after one hour")
	}
	var nilProfile *CalibrationProfile
	if !nilProfile.IsStale(time.Hour) {
		t.Error("nil profile is not stale")
	}
}

func TestProfile_String(t *testing.T) {
	t.Parallel()
	p := NewProfile()
	p.OptimalKaratsubaThreshold = 32
	p.CalibrationLimbs = 384
	p.CalibrationTime = "820ms"
	s := p.String()
	for _, want := range []string{"32 limbs (measured at 384 limbs)", "Duration:   820ms", runtime.GOARCH} {
		if !strings.Contains(s, want) {
			t.Errorf("String() lacks %q:\n%s", want, s)
		}
	}
}

func TestLoadProfile_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.json")
	if err := os.WriteFile(garbage, []byte("{threshold: 3"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadProfile(filepath.Join(dir, "missing.json")); !os.IsNotExist(err) {
		t.Errorf("missing file: error = %v, want not-exist", err)
	}
	_, err := loadProfile(garbage)
	if err == nil || !strings.Contains(err.Error(), "decoding calibration profile") {
		t.Errorf("bad JSON: error = %v", err)
	}
}

func TestLoadOrCreateProfile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")

	p, loaded := LoadOrCreateProfile(path)
	if loaded || p == nil {
		t.Fatalf("missing file: loaded = %v, profile = %v", loaded, p)
	}
	p.OptimalKaratsubaThreshold = 48
	if err := p.SaveProfile(path); err != nil {
		t.Fatal(err)
	}
	again, loaded := LoadOrCreateProfile(path)
	if !loaded || again.OptimalKaratsubaThreshold != 48 {
		t.Errorf("existing file: loaded = %v, threshold = %d", loaded, again.OptimalKaratsubaThreshold)
	}
}

func TestGetDefaultProfilePath(t *testing.T) {
	t.Parallel()
	if got := filepath.Base(GetDefaultProfilePath()); got != DefaultProfileFileName {
		t.Errorf("base name = %q, want %q", got, DefaultProfileFileName)
	}
}
