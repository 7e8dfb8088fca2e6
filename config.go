package orrery

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigEnv names the environment variable holding the directory of conf.toml.
	ConfigEnv = "ORRERY_CONFIG"
	// DefaultWindow is the half width of the observation window, in days (about twenty years).
	DefaultWindow = 7310.0

	defaultConjunctionDeg = 15.0
)

// Config holds the settings of the reconstruction.
type Config struct {
	Source    string // kepler, frozen or vsop87
	VSOP87Dir string
	OutputDir string

	Window float64 // days

	OppositionStart float64 // days since J2000
	OppositionSpan  float64 // days
	OppositionStep  float64 // days

	ConjunctionLimit float64 // radians
	OppositionRatio  float64
	Angular          bool

	EarthYearMin, EarthYearMax float64 // days
	MarsYearMin, MarsYearMax   float64 // days
}

func degrees(a float64) float64 {
	return a * deg2rad
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Source:           "kepler",
		OutputDir:        ".",
		Window:           DefaultWindow,
		OppositionStart:  0,
		OppositionSpan:   DefaultWindow,
		OppositionStep:   1,
		ConjunctionLimit: degrees(defaultConjunctionDeg),
		OppositionRatio:  0.1,
		Angular:          true,
		EarthYearMin:     330,
		EarthYearMax:     400,
		MarsYearMin:      640,
		MarsYearMax:      740,
	}
}

// LoadConfig reads the configuration from the provided TOML file, or from conf.toml in the
// directory named by ORRERY_CONFIG if path is empty. Missing keys keep their default value, and no
// file at all yields the default configuration.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	def := DefaultConfig()
	v.SetDefault("ephemeris.source", def.Source)
	v.SetDefault("VSOP87.directory", def.VSOP87Dir)
	v.SetDefault("general.output_path", def.OutputDir)
	v.SetDefault("window.days", def.Window)
	v.SetDefault("oppositions.start", def.OppositionStart)
	v.SetDefault("oppositions.span", def.OppositionSpan)
	v.SetDefault("oppositions.step", def.OppositionStep)
	v.SetDefault("limits.conjunction_deg", defaultConjunctionDeg)
	v.SetDefault("limits.opposition_ratio", def.OppositionRatio)
	v.SetDefault("solver.angular", def.Angular)
	v.SetDefault("periods.earth_min", def.EarthYearMin)
	v.SetDefault("periods.earth_max", def.EarthYearMax)
	v.SetDefault("periods.mars_min", def.MarsYearMin)
	v.SetDefault("periods.mars_max", def.MarsYearMax)

	if path != "" {
		v.SetConfigFile(path)
	} else if confPath := os.Getenv(ConfigEnv); confPath != "" {
		v.SetConfigName("conf")
		v.SetConfigType("toml")
		v.AddConfigPath(confPath)
	}
	if path != "" || os.Getenv(ConfigEnv) != "" {
		if err := v.ReadInConfig(); err != nil {
			return def, fmt.Errorf("could not read configuration: %w", err)
		}
	}

	conf := Config{
		Source:           strings.ToLower(v.GetString("ephemeris.source")),
		VSOP87Dir:        v.GetString("VSOP87.directory"),
		OutputDir:        v.GetString("general.output_path"),
		Window:           v.GetFloat64("window.days"),
		OppositionStart:  v.GetFloat64("oppositions.start"),
		OppositionSpan:   v.GetFloat64("oppositions.span"),
		OppositionStep:   v.GetFloat64("oppositions.step"),
		ConjunctionLimit: degrees(v.GetFloat64("limits.conjunction_deg")),
		OppositionRatio:  v.GetFloat64("limits.opposition_ratio"),
		Angular:          v.GetBool("solver.angular"),
		EarthYearMin:     v.GetFloat64("periods.earth_min"),
		EarthYearMax:     v.GetFloat64("periods.earth_max"),
		MarsYearMin:      v.GetFloat64("periods.mars_min"),
		MarsYearMax:      v.GetFloat64("periods.mars_max"),
	}
	return conf, conf.Validate()
}

// Validate returns an error if the configuration is not usable.
func (c Config) Validate() error {
	switch {
	case c.Window <= 0:
		return fmt.Errorf("window.days must be positive: %w", ErrInvalidParameter)
	case c.OppositionSpan <= 0 || c.OppositionStep <= 0:
		return fmt.Errorf("oppositions span and step must be positive: %w", ErrInvalidParameter)
	case c.ConjunctionLimit < 0 || c.OppositionRatio < 0:
		return fmt.Errorf("limits must not be negative: %w", ErrInvalidParameter)
	case c.EarthYearMin >= c.EarthYearMax || c.MarsYearMin >= c.MarsYearMax:
		return fmt.Errorf("period bands are empty: %w", ErrInvalidParameter)
	}
	switch c.Source {
	case "kepler", "frozen":
	case "vsop87":
		if c.VSOP87Dir == "" {
			return fmt.Errorf("VSOP87 is enabled but VSOP87.directory is empty: %w", ErrInvalidParameter)
		}
	default:
		return fmt.Errorf("unknown ephemeris source '%s': %w", c.Source, ErrInvalidParameter)
	}
	return nil
}

// Ephemeris returns the ephemeris and the matching ecliptic orientation selected by this configuration.
func (c Config) Ephemeris() (Ephemeris, EclipticOrientation, error) {
	switch c.Source {
	case "kepler":
		eph := MeanKeplerEphemeris()
		return eph, eph, nil
	case "frozen":
		eph := FrozenKeplerEphemeris()
		return eph, eph, nil
	case "vsop87":
		eph, err := NewVSOP87Ephemeris(c.VSOP87Dir)
		if err != nil {
			return nil, nil, err
		}
		return eph, PrecessionOrientation{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown ephemeris source '%s': %w", c.Source, ErrInvalidParameter)
	}
}
