package orrery

import "errors"

var (
	// ErrDegenerateGeometry is returned when sight lines are (nearly) parallel.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrInsufficientData is returned when there are too few lines or samples to solve.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrIllConditioned is returned when the pivot-free symmetric solver precondition does not hold.
	ErrIllConditioned = errors.New("ill-conditioned solve")
	// ErrInvalidParameter is returned for out of range parameters and unknown bodies.
	ErrInvalidParameter = errors.New("invalid parameter")
)
