package main

import (
	"fmt"
	"os"

	"github.com/ChristopherRabotin/orrery"
	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "orrery",
	Short: "Reconstruct the orbits of Earth and Mars from sightings",
	Long: `orrery reproduces how an observer standing on Earth can recover the shapes of the orbits
of Earth and Mars, and the inclination of the latter, from the directions of the Sun and Mars alone.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration TOML file (default $"+orrery.ConfigEnv+"/conf.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug everything (really verbose)")
}

func newLogger() kitlog.Logger {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	if debug {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	return kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)
}

// newEngine loads the configuration and builds the engine on the configured ephemeris.
func newEngine() (*orrery.Engine, error) {
	conf, err := orrery.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	eph, orient, err := conf.Ephemeris()
	if err != nil {
		return nil, err
	}
	return orrery.NewEngine(eph, orient, conf, newLogger()), nil
}
