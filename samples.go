package orrery

import (
	"fmt"
	"math"
	"sort"
)

// SightingFlag classifies a sighting by the angle between the Sun and Mars.
type SightingFlag uint8

const (
	// Ordinary sightings are used freely.
	Ordinary SightingFlag = iota
	// NearOpposition sightings are usable but should be distinguished when displayed.
	NearOpposition
	// Conjunction sightings never define an Earth sample: both lines are nearly parallel.
	Conjunction
)

// String implements the Stringer interface.
func (f SightingFlag) String() string {
	switch f {
	case Ordinary:
		return "ordinary"
	case NearOpposition:
		return "near-opposition"
	case Conjunction:
		return "conjunction"
	default:
		return fmt.Sprintf("flag(%d)", uint8(f))
	}
}

// EarthSample is a reconstructed heliocentric position of the Earth.
type EarthSample struct {
	I     int          // Earth sample offset: the Earth is where it was I Mars years after the reference
	J     int          // Mars sample used to solve it
	Epoch float64      // sighting epoch
	Point []float64    // AU
	Flag  SightingFlag // classification of the sighting used
}

// String implements the Stringer interface.
func (s EarthSample) String() string {
	return fmt.Sprintf("earth[%d] (from mars[%d], %s) r=%+v", s.I, s.J, s.Flag, s.Point)
}

// MarsSample is a reconstructed heliocentric position of Mars.
type MarsSample struct {
	J        int       // Mars sample offset: Mars is where it was J Earth years after the reference
	Epoch    float64   // reference epoch plus J Earth years
	Point    []float64 // AU
	Chi2     float64   // sum of squared distances to the sight lines
	N        int       // number of sight lines
	Latitude float64   // heliocentric ecliptic latitude, radians
	Seed     bool      // taken from the reference opposition
}

// String implements the Stringer interface.
func (s MarsSample) String() string {
	return fmt.Sprintf("mars[%d] r=%+v χ²=%.3e n=%d β=%.4f°", s.J, s.Point, s.Chi2, s.N, s.Latitude/deg2rad)
}

// Tables hold the Earth and Mars samples of one reconstruction.
// Each offset is written at most once: an absent offset is unresolved.
type Tables struct {
	Reference           OppositionRecord
	RefIndex            int
	EarthYear, MarsYear float64 // period estimates, in days
	Window              float64 // half width of the observation window, in days
	IMin, IMax          int     // Earth sample offsets allowed by the window
	JMin, JMax          int     // Mars sample offsets allowed by the window
	earth               map[int]EarthSample
	mars                map[int]MarsSample
}

func newTables(ref OppositionRecord, refIndex int, earthYear, marsYear, window float64) *Tables {
	imax := int(math.Floor(window / marsYear))
	jmax := int(math.Floor(window / earthYear))
	return &Tables{
		Reference: ref, RefIndex: refIndex,
		EarthYear: earthYear, MarsYear: marsYear, Window: window,
		IMin: -imax, IMax: imax, JMin: -jmax, JMax: jmax,
		earth: make(map[int]EarthSample),
		mars:  make(map[int]MarsSample),
	}
}

// Earth returns the Earth sample at offset i, and whether it is resolved.
func (t *Tables) Earth(i int) (EarthSample, bool) {
	s, ok := t.earth[i]
	if ok {
		s.Point = append([]float64(nil), s.Point...)
	}
	return s, ok
}

// Mars returns the Mars sample at offset j, and whether it is resolved.
func (t *Tables) Mars(j int) (MarsSample, bool) {
	s, ok := t.mars[j]
	if ok {
		s.Point = append([]float64(nil), s.Point...)
	}
	return s, ok
}

// EarthSamples returns the resolved Earth samples by increasing offset.
func (t *Tables) EarthSamples() []EarthSample {
	samples := make([]EarthSample, 0, len(t.earth))
	for i := range t.earth {
		s, _ := t.Earth(i)
		samples = append(samples, s)
	}
	sort.Slice(samples, func(a, b int) bool { return samples[a].I < samples[b].I })
	return samples
}

// MarsSamples returns the resolved Mars samples by increasing offset.
func (t *Tables) MarsSamples() []MarsSample {
	samples := make([]MarsSample, 0, len(t.mars))
	for j := range t.mars {
		s, _ := t.Mars(j)
		samples = append(samples, s)
	}
	sort.Slice(samples, func(a, b int) bool { return samples[a].J < samples[b].J })
	return samples
}

// Epoch returns the sighting epoch of Earth sample i paired with Mars sample j.
func (t *Tables) Epoch(i, j int) float64 {
	return t.Reference.Epoch + float64(i)*t.MarsYear + float64(j)*t.EarthYear
}

// InWindow returns whether the sighting (i, j) and both samples it relates lie in the window.
func (t *Tables) InWindow(i, j int) bool {
	return i >= t.IMin && i <= t.IMax && j >= t.JMin && j <= t.JMax &&
		math.Abs(float64(i)*t.MarsYear+float64(j)*t.EarthYear) <= t.Window
}

// String implements the Stringer interface.
func (t *Tables) String() string {
	return fmt.Sprintf("tables(ref=%d, earthYear=%.3f, marsYear=%.3f): %d/%d earth, %d/%d mars",
		t.RefIndex, t.EarthYear, t.MarsYear, len(t.earth), t.IMax-t.IMin+1, len(t.mars), t.JMax-t.JMin+1)
}

// setEarth stores the sample unless the offset is already resolved.
func (t *Tables) setEarth(s EarthSample) bool {
	if _, ok := t.earth[s.I]; ok {
		return false
	}
	t.earth[s.I] = s
	return true
}

// setMars stores the sample unless the offset is already resolved.
func (t *Tables) setMars(s MarsSample) bool {
	if _, ok := t.mars[s.J]; ok {
		return false
	}
	t.mars[s.J] = s
	return true
}
