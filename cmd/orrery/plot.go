package main

import (
	"fmt"
	"image/color"

	"github.com/ChristopherRabotin/orrery"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var plotFile string

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot the reconstructed samples over the true orbits",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, tables, err := rebuild()
		if err != nil {
			return err
		}
		p, err := orbitPlot(engine, tables)
		if err != nil {
			return err
		}
		if err := p.Save(8*vg.Inch, 8*vg.Inch, plotFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved plot to %s\n", plotFile)
		return nil
	},
}

func init() {
	plotCmd.Flags().StringVar(&plotFile, "out", "orrery.png", "output image (the extension selects the format)")
}

// trueOrbit samples the true orbit of a body over one period starting at the reference epoch.
func trueOrbit(eph orrery.Ephemeris, b orrery.Body, start, period float64) (plotter.XYs, error) {
	const points = 360
	xys := make(plotter.XYs, points+1)
	for k := range xys {
		r, err := eph.HeliocentricPosition(b, start+period*float64(k)/points)
		if err != nil {
			return nil, err
		}
		xys[k].X, xys[k].Y = r[0], r[1]
	}
	return xys, nil
}

func orbitPlot(engine *orrery.Engine, tables *orrery.Tables) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Reconstructed orbits (Earth year %.2f d, Mars year %.2f d)", tables.EarthYear, tables.MarsYear)
	p.X.Label.Text = "x (AU)"
	p.Y.Label.Text = "y (AU)"

	t0 := tables.Reference.Epoch
	earthTruth, err := trueOrbit(engine.Ephemeris(), orrery.Earth, t0, orrery.EarthElements.Period())
	if err != nil {
		return nil, err
	}
	marsTruth, err := trueOrbit(engine.Ephemeris(), orrery.Mars, t0, orrery.MarsElements.Period())
	if err != nil {
		return nil, err
	}
	earthXYs := make(plotter.XYs, 0)
	for _, s := range tables.EarthSamples() {
		earthXYs = append(earthXYs, plotter.XY{X: s.Point[0], Y: s.Point[1]})
	}
	marsXYs := make(plotter.XYs, 0)
	for _, s := range tables.MarsSamples() {
		marsXYs = append(marsXYs, plotter.XY{X: s.Point[0], Y: s.Point[1]})
	}

	blue := color.RGBA{B: 200, A: 255}
	red := color.RGBA{R: 200, A: 255}
	for _, curve := range []struct {
		name  string
		xys   plotter.XYs
		color color.Color
	}{{"Earth (true)", earthTruth, blue}, {"Mars (true)", marsTruth, red}} {
		l, err := plotter.NewLine(curve.xys)
		if err != nil {
			return nil, err
		}
		l.Color = curve.color
		p.Add(l)
		p.Legend.Add(curve.name, l)
	}
	for _, samples := range []struct {
		name  string
		xys   plotter.XYs
		color color.Color
	}{{"Earth samples", earthXYs, blue}, {"Mars samples", marsXYs, red}} {
		if len(samples.xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(samples.xys)
		if err != nil {
			return nil, err
		}
		s.Color = samples.color
		p.Add(s)
		p.Legend.Add(samples.name, s)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}
