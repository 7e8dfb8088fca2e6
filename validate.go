package orrery

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrorSummary summarizes position errors, in AU.
type ErrorSummary struct {
	Mean, Std, Max float64
	N              int
}

// String implements the Stringer interface.
func (s ErrorSummary) String() string {
	return fmt.Sprintf("mean=%.3e std=%.3e max=%.3e AU (n=%d)", s.Mean, s.Std, s.Max, s.N)
}

func summarize(errs []float64) ErrorSummary {
	if len(errs) == 0 {
		return ErrorSummary{}
	}
	s := ErrorSummary{Max: floats.Max(errs), N: len(errs)}
	if len(errs) == 1 {
		s.Mean = errs[0]
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(errs, nil)
	return s
}

// ValidationReport compares reconstructed samples with the true positions.
type ValidationReport struct {
	EarthErrors map[int]float64 // by Earth offset
	MarsErrors  map[int]float64 // by Mars offset
	Earth, Mars ErrorSummary
}

// Validate compares each Earth sample with the true Earth position at its sighting epoch, and
// each Mars sample with the true Mars position at the reference epoch plus j Earth years.
// With wrong period estimates, these differ: the report shows by how much.
func Validate(t *Tables, eph Ephemeris) (ValidationReport, error) {
	r := ValidationReport{EarthErrors: make(map[int]float64), MarsErrors: make(map[int]float64)}
	var earthErrs, marsErrs []float64
	for _, s := range t.EarthSamples() {
		truth, err := eph.HeliocentricPosition(Earth, s.Epoch)
		if err != nil {
			return r, err
		}
		r.EarthErrors[s.I] = norm(sub(s.Point, truth))
		earthErrs = append(earthErrs, r.EarthErrors[s.I])
	}
	for _, s := range t.MarsSamples() {
		truth, err := eph.HeliocentricPosition(Mars, s.Epoch)
		if err != nil {
			return r, err
		}
		r.MarsErrors[s.J] = norm(sub(s.Point, truth))
		marsErrs = append(marsErrs, r.MarsErrors[s.J])
	}
	r.Earth = summarize(earthErrs)
	r.Mars = summarize(marsErrs)
	return r, nil
}
