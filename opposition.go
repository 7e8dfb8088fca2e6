package orrery

import (
	"fmt"
	"math"
)

const (
	// oppositionTolerance is the bisection tolerance on the opposition epoch, in days.
	oppositionTolerance = 1e-6
)

// OppositionRecord is an alignment of the Sun, Earth and Mars with Earth in between.
type OppositionRecord struct {
	Revolution int       // Mars revolutions completed since the start of the search
	Epoch      float64   // days since J2000
	Mars       []float64 // heliocentric position of Mars, in AU
}

// String implements the Stringer interface.
func (o OppositionRecord) String() string {
	return fmt.Sprintf("opposition #rev=%d %s (t=%.4f) mars=%+v", o.Revolution, EpochToTime(o.Epoch).Format(dateFormat), o.Epoch, o.Mars)
}

// FindOppositions steps through the ephemeris from start over span days and returns, in
// chronological order, every opposition of Mars.
func FindOppositions(eph Ephemeris, start, span, step float64) ([]OppositionRecord, error) {
	if span <= 0 || step <= 0 {
		return nil, fmt.Errorf("span=%f step=%f: %w", span, step, ErrInvalidParameter)
	}
	separation := func(t float64) (Δλ, λMars float64, err error) {
		e, err := eph.HeliocentricPosition(Earth, t)
		if err != nil {
			return
		}
		m, err := eph.HeliocentricPosition(Mars, t)
		if err != nil {
			return
		}
		λMars = math.Atan2(m[1], m[0])
		Δλ = wrapπ(λMars - math.Atan2(e[1], e[0]))
		return
	}
	prevΔ, prevλ, err := separation(start)
	if err != nil {
		return nil, err
	}
	var swept float64 // unwrapped Mars longitude since start
	var found []OppositionRecord
	for t := start + step; t <= start+span; t += step {
		curΔ, curλ, err := separation(t)
		if err != nil {
			return nil, err
		}
		swept += wrapπ(curλ - prevλ)
		// Earth catches up with Mars: the separation goes through zero while decreasing.
		// The jump from -π to π at conjunction is not an opposition.
		if prevΔ > 0 && curΔ <= 0 && prevΔ-curΔ < math.Pi {
			lo, hi := t-step, t
			for hi-lo > oppositionTolerance {
				mid := 0.5 * (lo + hi)
				midΔ, _, err := separation(mid)
				if err != nil {
					return nil, err
				}
				if midΔ > 0 {
					lo = mid
				} else {
					hi = mid
				}
			}
			epoch := 0.5 * (lo + hi)
			m, err := eph.HeliocentricPosition(Mars, epoch)
			if err != nil {
				return nil, err
			}
			found = append(found, OppositionRecord{Revolution: int(math.Floor(swept / (2 * math.Pi))), Epoch: epoch, Mars: m})
		}
		prevΔ, prevλ = curΔ, curλ
	}
	return found, nil
}
