package orrery

import (
	"errors"
	"fmt"
	"math"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Sighting is one observation epoch of the lattice t(i, j) = t0 + i·marsYear + j·earthYear.
// At that epoch, the Earth is at Earth sample i and Mars at Mars sample j (if the period
// estimates are right).
type Sighting struct {
	I, J   int
	Epoch  float64
	Sun2D  []float64
	Mars2D []float64
	Mars3D []float64
	Cross  float64 // Sun2D × Mars2D
	Flag   SightingFlag
}

// Triangulator reconstructs the Earth and Mars orbits from sightings, starting from the position
// of Mars at a reference opposition.
type Triangulator struct {
	orient  EclipticOrientation
	angular bool
	tables  *Tables
	byEarth map[int][]Sighting // by Earth offset, increasing Mars offset
	byMars  map[int][]Sighting // by Mars offset, increasing Earth offset
	logger  kitlog.Logger
}

// NewTriangulator samples every sighting of the observation window and seeds the Mars table with
// the reference opposition.
func NewTriangulator(eph Ephemeris, orient EclipticOrientation, ref OppositionRecord, refIndex int, earthYear, marsYear float64, conf Config, logger kitlog.Logger) (*Triangulator, error) {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	tr := &Triangulator{
		orient:  orient,
		angular: conf.Angular,
		tables:  newTables(ref, refIndex, earthYear, marsYear, conf.Window),
		byEarth: make(map[int][]Sighting),
		byMars:  make(map[int][]Sighting),
		logger:  kitlog.With(logger, "subsys", "triangulate"),
	}
	t := tr.tables
	for i := t.IMin; i <= t.IMax; i++ {
		for j := t.JMin; j <= t.JMax; j++ {
			if !t.InWindow(i, j) {
				continue
			}
			d, err := Direction(eph, t.Epoch(i, j))
			if err != nil {
				return nil, fmt.Errorf("sighting (%d, %d): %w", i, j, err)
			}
			tr.add(i, j, d, conf)
		}
	}
	tr.tables.setMars(MarsSample{
		J: 0, Epoch: ref.Epoch, Point: append([]float64(nil), ref.Mars...),
		Latitude: math.Asin(ref.Mars[2] / norm(ref.Mars)), Seed: true,
	})
	return tr, nil
}

// add classifies and stores a sighting. Sightings must be added by increasing i then j.
func (tr *Triangulator) add(i, j int, d DirectionSample, conf Config) {
	s := Sighting{I: i, J: j, Epoch: d.Epoch, Sun2D: d.Sun2D, Mars2D: d.Mars2D, Mars3D: d.Mars3D}
	s.Cross, s.Flag = Classify(d, conf.ConjunctionLimit, conf.OppositionRatio)
	tr.byEarth[i] = append(tr.byEarth[i], s)
	tr.byMars[j] = append(tr.byMars[j], s)
}

// Classify returns the cross product of the planar Sun and Mars directions, and the flag of the
// sighting: Conjunction when the elongation is below conjunctionLimit (radians), NearOpposition
// when Mars is opposite the Sun with a tangential over radial ratio below oppositionRatio.
func Classify(d DirectionSample, conjunctionLimit, oppositionRatio float64) (float64, SightingFlag) {
	cr := cross2D(d.Sun2D, d.Mars2D)
	if d.Elongation() < conjunctionLimit {
		return cr, Conjunction
	}
	if c := dot(d.Sun2D, d.Mars2D); c < 0 && math.Abs(cr) < -c*oppositionRatio {
		return cr, NearOpposition
	}
	return cr, Ordinary
}

// Sightings returns the sightings involving Earth sample i.
func (tr *Triangulator) Sightings(i int) []Sighting {
	return tr.byEarth[i]
}

// Tables returns the tables being filled.
func (tr *Triangulator) Tables() *Tables {
	return tr.tables
}

// ResolveEarth returns the Earth sample at offset i, solving it if needed.
// The first sighting (by increasing Mars offset) which is not a conjunction and whose Mars sample
// is known defines the Earth sample as the intersection of the line towards the Sun and the line
// towards Mars; the height above the ecliptic comes from the orientation of the Earth's orbit.
// Once resolved, the sample never changes.
func (tr *Triangulator) ResolveEarth(i int) (EarthSample, error) {
	if s, ok := tr.tables.Earth(i); ok {
		return s, nil
	}
	if i < tr.tables.IMin || i > tr.tables.IMax {
		return EarthSample{}, fmt.Errorf("earth[%d] is outside of the window: %w", i, ErrInvalidParameter)
	}
	err := fmt.Errorf("earth[%d]: no usable sighting: %w", i, ErrInsufficientData)
	for _, s := range tr.byEarth[i] {
		if s.Flag == Conjunction {
			continue
		}
		mars, ok := tr.tables.mars[s.J]
		if !ok {
			continue
		}
		mars2D := mars.Point[:2]
		xy, ierr := Intersect2D(Line2D{Direction: s.Sun2D}, Line2D{Point: mars2D, Direction: s.Mars2D})
		if ierr == nil && (dot(xy, s.Sun2D) >= 0 || dot(sub(mars2D, xy), s.Mars2D) <= 0) {
			// Behind the observer: the lines cross, but not the rays.
			ierr = fmt.Errorf("rays do not meet: %w", ErrDegenerateGeometry)
		}
		if ierr != nil {
			level.Debug(tr.logger).Log("earth", i, "mars", s.J, "err", ierr)
			err = fmt.Errorf("earth[%d] from mars[%d]: %w", i, s.J, ierr)
			continue
		}
		z := tr.orient.Orientation(s.Epoch).Z(xy[0], xy[1])
		sample := EarthSample{I: i, J: s.J, Epoch: s.Epoch, Point: []float64{xy[0], xy[1], z}, Flag: s.Flag}
		tr.tables.setEarth(sample)
		return sample, nil
	}
	return EarthSample{}, err
}

// ResolveMars returns the Mars sample at offset j, solving it if needed.
// Every sighting of Mars sample j made from a known Earth sample gives a sight line; the sample is
// the point closest to all of them. The reference sample (j = 0) is never solved.
func (tr *Triangulator) ResolveMars(j int) (MarsSample, error) {
	if s, ok := tr.tables.Mars(j); ok {
		return s, nil
	}
	if j < tr.tables.JMin || j > tr.tables.JMax {
		return MarsSample{}, fmt.Errorf("mars[%d] is outside of the window: %w", j, ErrInvalidParameter)
	}
	var lines []SightLine
	for _, s := range tr.byMars[j] {
		earth, ok := tr.tables.earth[s.I]
		if !ok {
			continue
		}
		lines = append(lines, NewSightLine(earth.Point, s.Mars3D))
	}
	p, rss, err := ClosestPointToLines(lines, tr.angular)
	if err != nil {
		return MarsSample{}, fmt.Errorf("mars[%d]: %w", j, err)
	}
	sample := MarsSample{
		J: j, Epoch: tr.tables.Reference.Epoch + float64(j)*tr.tables.EarthYear,
		Point: p, Chi2: rss, N: len(lines), Latitude: math.Asin(p[2] / norm(p)),
	}
	tr.tables.setMars(sample)
	return sample, nil
}

// Run performs the bootstrap: Earth samples from the reference Mars sample alone, then, marching
// away from the reference up to one edge of the window and then to the other, each new Mars sample
// followed by another attempt at the unresolved Earth samples. No sample is ever revisited.
func (tr *Triangulator) Run() *Tables {
	t := tr.tables
	tr.earthPass()
	for j := 1; j <= t.JMax; j++ {
		tr.marsStep(j)
	}
	for j := -1; j >= t.JMin; j-- {
		tr.marsStep(j)
	}
	level.Info(tr.logger).Log("status", "finished", "earth", len(t.earth), "mars", len(t.mars), "tables", t)
	return t
}

func (tr *Triangulator) marsStep(j int) {
	if _, err := tr.ResolveMars(j); err != nil {
		lvl := level.Debug
		if !errors.Is(err, ErrInsufficientData) {
			lvl = level.Warn
		}
		lvl(tr.logger).Log("mars", j, "err", err)
		return
	}
	tr.earthPass()
}

// earthPass attempts every unresolved Earth sample, nearest to the reference first.
func (tr *Triangulator) earthPass() (resolved int) {
	t := tr.tables
	for _, i := range marchingOrder(t.IMin, t.IMax) {
		if _, ok := t.earth[i]; ok {
			continue
		}
		if _, err := tr.ResolveEarth(i); err == nil {
			resolved++
		}
	}
	return
}

// marchingOrder returns 0, 1, -1, 2, -2, ... restricted to [lo, hi].
func marchingOrder(lo, hi int) []int {
	order := make([]int, 0, hi-lo+1)
	for k := 0; k <= hi || -k >= lo; k++ {
		if k >= lo && k <= hi {
			order = append(order, k)
		}
		if k != 0 && -k >= lo && -k <= hi {
			order = append(order, -k)
		}
	}
	return order
}
