package orrery

import (
	"fmt"
	"sync"
	"sync/atomic"

	kitlog "github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
)

// Engine owns the current reconstruction. Each rebuild produces new tables which replace the
// previous ones at once: readers never observe a partially built table.
type Engine struct {
	eph         Ephemeris
	orient      EclipticOrientation
	conf        Config
	logger      kitlog.Logger
	oppOnce     sync.Once
	oppositions []OppositionRecord
	oppErr      error
	current     atomic.Pointer[Tables]
}

// NewEngine returns a new engine. A nil logger discards everything.
func NewEngine(eph Ephemeris, orient EclipticOrientation, conf Config, logger kitlog.Logger) *Engine {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Engine{eph: eph, orient: orient, conf: conf, logger: logger}
}

// Config returns the configuration of this engine.
func (e *Engine) Config() Config {
	return e.conf
}

// Ephemeris returns the ephemeris the sightings are sampled from.
func (e *Engine) Ephemeris() Ephemeris {
	return e.eph
}

// Oppositions returns the oppositions found in the configured search span. The search runs once,
// even when called from several goroutines.
func (e *Engine) Oppositions() ([]OppositionRecord, error) {
	e.oppOnce.Do(func() {
		e.oppositions, e.oppErr = FindOppositions(e.eph, e.conf.OppositionStart, e.conf.OppositionSpan, e.conf.OppositionStep)
		if e.oppErr == nil {
			level.Info(e.logger).Log("subsys", "oppositions", "found", len(e.oppositions), "start", e.conf.OppositionStart, "span", e.conf.OppositionSpan)
		}
	})
	return e.oppositions, e.oppErr
}

// Rebuild recomputes all samples from the opposition at refIndex and the provided period
// estimates (in days), and makes them the current tables.
func (e *Engine) Rebuild(refIndex int, earthYear, marsYear float64) (*Tables, error) {
	if earthYear < e.conf.EarthYearMin || earthYear > e.conf.EarthYearMax {
		return nil, fmt.Errorf("earth year %.3f not in [%.1f, %.1f]: %w", earthYear, e.conf.EarthYearMin, e.conf.EarthYearMax, ErrInvalidParameter)
	}
	if marsYear < e.conf.MarsYearMin || marsYear > e.conf.MarsYearMax {
		return nil, fmt.Errorf("mars year %.3f not in [%.1f, %.1f]: %w", marsYear, e.conf.MarsYearMin, e.conf.MarsYearMax, ErrInvalidParameter)
	}
	opps, err := e.Oppositions()
	if err != nil {
		return nil, err
	}
	if refIndex < 0 || refIndex >= len(opps) {
		return nil, fmt.Errorf("reference opposition %d not in [0, %d): %w", refIndex, len(opps), ErrInvalidParameter)
	}
	logger := kitlog.With(e.logger, "ref", refIndex, "earthYear", earthYear, "marsYear", marsYear)
	tr, err := NewTriangulator(e.eph, e.orient, opps[refIndex], refIndex, earthYear, marsYear, e.conf, logger)
	if err != nil {
		return nil, err
	}
	tables := tr.Run()
	e.current.Store(tables)
	return tables, nil
}

// Tables returns the current tables, or nil before the first rebuild.
func (e *Engine) Tables() *Tables {
	return e.current.Load()
}

// PlaneFit fits the orbital plane of Mars on the current tables.
func (e *Engine) PlaneFit() (PlaneFit, error) {
	t := e.Tables()
	if t == nil {
		return PlaneFit{}, fmt.Errorf("no tables: %w", ErrInsufficientData)
	}
	return FitPlane(t.MarsSamples())
}
