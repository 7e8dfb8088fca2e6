package orrery

import (
	"fmt"
	"math"
)

// PlaneFit is the least squares plane z = Nx·x + Ny·y through the Sun.
type PlaneFit struct {
	Nx, Ny      float64
	Inclination float64   // radians
	Node        []float64 // unit vector towards the ascending node, nil if the plane is the ecliptic
	RMS         float64   // AU
	N           int
}

// NodeLongitude returns the ecliptic longitude of the ascending node in [0, 2π).
func (p PlaneFit) NodeLongitude() float64 {
	if p.Node == nil {
		return 0
	}
	Ω := math.Atan2(p.Node[1], p.Node[0])
	if Ω < 0 {
		Ω += 2 * math.Pi
	}
	return Ω
}

// String implements the Stringer interface.
func (p PlaneFit) String() string {
	return fmt.Sprintf("i=%.4f° Ω=%.3f° rms=%.3e AU (n=%d)", p.Inclination/deg2rad, p.NodeLongitude()/deg2rad, p.RMS, p.N)
}

// FitPlane fits a plane through the Sun to the Mars samples.
func FitPlane(samples []MarsSample) (PlaneFit, error) {
	points := make([][]float64, len(samples))
	for k, s := range samples {
		points[k] = s.Point
	}
	return FitPlanePoints(points)
}

// FitPlanePoints fits a plane z = nx·x + ny·y to the provided 3D points from the closed form
// solution of the 2x2 normal equations.
func FitPlanePoints(points [][]float64) (PlaneFit, error) {
	if len(points) < 3 {
		return PlaneFit{}, fmt.Errorf("plane fit needs 3 points, got %d: %w", len(points), ErrInsufficientData)
	}
	var sxx, sxy, syy, sxz, syz float64
	for _, p := range points {
		sxx += p[0] * p[0]
		sxy += p[0] * p[1]
		syy += p[1] * p[1]
		sxz += p[0] * p[2]
		syz += p[1] * p[2]
	}
	det := sxx*syy - sxy*sxy
	if sxx*syy == 0 || det < zeroε*sxx*syy {
		return PlaneFit{}, fmt.Errorf("points are collinear with the Sun: %w", ErrInsufficientData)
	}
	fit := PlaneFit{
		Nx: (sxz*syy - syz*sxy) / det,
		Ny: (syz*sxx - sxz*sxy) / det,
		N:  len(points),
	}
	g := math.Hypot(fit.Nx, fit.Ny)
	fit.Inclination = math.Atan(g)
	if g > 0 {
		// The node line is common to the ecliptic and to the plane of normal (-nx, -ny, 1).
		fit.Node = Unit(cross([]float64{0, 0, 1}, []float64{-fit.Nx, -fit.Ny, 1}))
	}
	var ss float64
	for _, p := range points {
		r := fit.Nx*p[0] + fit.Ny*p[1] - p[2]
		ss += r * r
	}
	fit.RMS = math.Sqrt(ss / float64(len(points)))
	return fit, nil
}
