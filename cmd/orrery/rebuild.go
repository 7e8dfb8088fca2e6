package main

import (
	"fmt"

	"github.com/ChristopherRabotin/orrery"
	"github.com/spf13/cobra"
)

var (
	refIndex  int
	earthYear float64
	marsYear  float64
	csvName   string
	stamped   bool
	validate  bool
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the Earth and Mars sample tables from a reference opposition",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, tables, err := rebuild()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, tables)
		for _, s := range tables.EarthSamples() {
			fmt.Fprintln(out, s)
		}
		for _, s := range tables.MarsSamples() {
			fmt.Fprintln(out, s)
		}
		if validate {
			if err := printValidation(cmd, engine, tables); err != nil {
				return err
			}
		}
		if csvName != "" {
			filename, err := orrery.ExportTables(engine.Config(), csvName, stamped, tables)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved samples to %s\n", filename)
		}
		return nil
	},
}

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Rebuild the tables and fit the orbital plane of Mars",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, tables, err := rebuild()
		if err != nil {
			return err
		}
		fit, err := engine.PlaneFit()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tables)
		fmt.Fprintf(cmd.OutOrStdout(), "Mars orbital plane: %s\n", fit)
		if validate {
			return printValidation(cmd, engine, tables)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{rebuildCmd, fitCmd, plotCmd} {
		cmd.Flags().IntVar(&refIndex, "ref", 0, "index of the reference opposition")
		cmd.Flags().Float64Var(&earthYear, "earth-year", 365.25, "estimate of the Earth sidereal period (days)")
		cmd.Flags().Float64Var(&marsYear, "mars-year", 687, "estimate of the Mars sidereal period (days)")
		cmd.Flags().BoolVar(&validate, "validate", false, "compare the samples with the true ephemeris")
		rootCmd.AddCommand(cmd)
	}
	rebuildCmd.Flags().StringVar(&csvName, "csv", "", "export the samples to samples-<name>.csv in the output directory")
	rebuildCmd.Flags().BoolVar(&stamped, "stamped", false, "append a timestamp to the exported file name")
}

func rebuild() (*orrery.Engine, *orrery.Tables, error) {
	engine, err := newEngine()
	if err != nil {
		return nil, nil, err
	}
	tables, err := engine.Rebuild(refIndex, earthYear, marsYear)
	if err != nil {
		return nil, nil, err
	}
	return engine, tables, nil
}

func printValidation(cmd *cobra.Command, engine *orrery.Engine, tables *orrery.Tables) error {
	report, err := orrery.Validate(tables, engine.Ephemeris())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Earth errors: %s\nMars errors: %s\n", report.Earth, report.Mars)
	return nil
}
