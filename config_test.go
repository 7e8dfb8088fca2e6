package orrery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestConfigDefaults(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	conf, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if conf != DefaultConfig() {
		t.Fatalf("got %+v expected %+v", conf, DefaultConfig())
	}
	eph, orient, err := conf.Ephemeris()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := eph.(*KeplerEphemeris); !ok {
		t.Fatalf("unexpected ephemeris %T", eph)
	}
	if _, ok := orient.(*KeplerEphemeris); !ok {
		t.Fatalf("unexpected orientation %T", orient)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `[ephemeris]
source = "Frozen"

[window]
days = 3650

[limits]
conjunction_deg = 10.0

[solver]
angular = false
`
	if err := os.WriteFile(filepath.Join(dir, "conf.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigEnv, dir)
	for _, path := range []string{"", filepath.Join(dir, "conf.toml")} {
		conf, err := LoadConfig(path)
		if err != nil {
			t.Fatal(err)
		}
		if conf.Source != "frozen" || conf.Window != 3650 || conf.Angular {
			t.Fatalf("file not read: %+v", conf)
		}
		if !scalar.EqualWithinAbs(conf.ConjunctionLimit, 10*deg2rad, 1e-12) {
			t.Fatalf("conjunction limit %f", conf.ConjunctionLimit)
		}
		if conf.OppositionRatio != DefaultConfig().OppositionRatio || conf.MarsYearMax != DefaultConfig().MarsYearMax {
			t.Fatalf("defaults lost: %+v", conf)
		}
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatal("a missing file should fail")
	}
}

func TestConfigValidate(t *testing.T) {
	for name, mod := range map[string]func(*Config){
		"window":     func(c *Config) { c.Window = 0 },
		"step":       func(c *Config) { c.OppositionStep = -1 },
		"limit":      func(c *Config) { c.ConjunctionLimit = -0.1 },
		"earth band": func(c *Config) { c.EarthYearMin = c.EarthYearMax },
		"source":     func(c *Config) { c.Source = "spice" },
		"vsop87":     func(c *Config) { c.Source = "vsop87" },
	} {
		conf := DefaultConfig()
		mod(&conf)
		if err := conf.Validate(); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("%s: expected invalid parameter, got %v", name, err)
		}
	}
	conf := DefaultConfig()
	conf.Source = "vsop87"
	conf.VSOP87Dir = t.TempDir()
	if err := conf.Validate(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := conf.Ephemeris(); err == nil {
		t.Fatal("VSOP87 files are not in an empty directory")
	}
}
