// Package simulate runs the rainwater tank simulation over a daily weather log.
//
// An Engine folds readings one day at a time. Each day it updates the tank
// (rain capture or evaporation, top-up, irrigation draw) and six running
// aggregates: day-count buckets, the first refill, refilled liters per month,
// the largest overflow, the longest rainless warming streak and the largest
// rain sum over consecutive rainy days.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/eunmann/raintank/pkg/logging"
	"github.com/eunmann/raintank/pkg/tank"
	"github.com/eunmann/raintank/pkg/weather"
	"github.com/rs/zerolog"
)

// DayResult describes one simulated day.
type DayResult struct {
	Date    time.Time
	Reading weather.Reading
	// Level is the tank level at the end of the day.
	Level float64
	// Demand is the irrigation volume drawn.
	Demand float64
	// Refilled reports whether the tank was topped up; Refill is the volume.
	Refilled bool
	Refill   float64
	// Overflow is the rain input that did not fit, 0 on dry days.
	Overflow float64
	// Bucket is valid only when Classified is true.
	Bucket     Bucket
	Classified bool
}

// Observer receives every simulated day.
type Observer interface {
	OnDay(DayResult)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(DayResult)

// OnDay calls f(d).
func (f ObserverFunc) OnDay(d DayResult) { f(d) }

// Engine holds all state of a run. It is not safe for concurrent use.
type Engine struct {
	params Params
	tank   *tank.Tank
	log    zerolog.Logger

	date time.Time
	days int

	counts      DayCounts
	firstRefill RefillEvent
	refilled    bool
	refills     int
	monthly     MonthlyUsage
	maxOverflow float64
	warming     warmingTracker
	rainSum     rainSumTracker

	err error
}

// New returns an engine positioned at p.Start with a full tank.
// Parameters are not validated; Run validates them.
func New(p Params) *Engine {
	start := truncateToDay(p.Start)
	return &Engine{
		params:  p,
		tank:    tank.New(p.Tank),
		log:     zerolog.Nop(),
		date:    start,
		warming: newWarmingTracker(start),
	}
}

// Date returns the date of the last simulated day, or the start date before
// the first Step.
func (e *Engine) Date() time.Time {
	return e.date
}

// Step simulates the next day. After an error the engine is spent and every
// later call returns the same error.
func (e *Engine) Step(r weather.Reading) (DayResult, error) {
	if e.err != nil {
		return DayResult{}, e.err
	}

	e.date = e.date.AddDate(0, 0, 1)
	e.days++
	res := DayResult{Date: e.date, Reading: r}

	if r.Rainfall > 0 {
		res.Overflow = e.tank.Capture(r.Rainfall)
		if res.Overflow > e.maxOverflow {
			e.maxOverflow = res.Overflow
		}
		e.logStreakClosed(e.warming.rain(e.date, r.Temperature))
		e.rainSum.add(r.Rainfall)
	} else {
		e.tank.Evaporate(r.Temperature)
		if closed, ok := e.warming.dry(e.date, r.Temperature); ok {
			e.logStreakClosed(closed)
		}
		e.rainSum.close()
	}

	res.Demand = e.params.Irrigation.Demand(r.Temperature)
	if refill, ok := e.tank.TopUp(res.Demand); ok {
		e.recordRefill(refill)
		res.Refilled = true
		res.Refill = refill
	}

	if err := e.tank.Draw(res.Demand); err != nil {
		e.err = fmt.Errorf("%w: %s: %w", ErrPhysicalInconsistency, e.date.Format(DateLayout), err)
		return DayResult{}, e.err
	}

	if b, ok := Classify(r.Temperature, r.Rainfall); ok {
		e.counts[b]++
		res.Bucket = b
		res.Classified = true
	}

	res.Level = e.tank.Level()
	return res, nil
}

func (e *Engine) recordRefill(volume float64) {
	if !e.refilled {
		e.firstRefill = RefillEvent{Date: e.date, Volume: volume}
		e.refilled = true
	}
	e.refills++
	e.monthly.add(e.date.Month(), volume)

	e.log.Debug().
		Str("date", e.date.Format(DateLayout)).
		Float64("refill_liters", volume).
		Int("refills", e.refills).
		Msg("tank topped up")
}

func (e *Engine) logStreakClosed(s Streak) {
	if s.Days == 0 {
		return
	}
	e.log.Debug().
		Str("start", s.Start.Format(DateLayout)).
		Str("end", s.End().Format(DateLayout)).
		Int("days", s.Days).
		Msg("warming streak closed")
}

// Finish closes the open rain sum and returns the report. The warming streak
// still open at this point is not considered.
func (e *Engine) Finish() (Report, error) {
	if e.err != nil {
		return Report{}, e.err
	}

	e.rainSum.close()

	if !e.refilled {
		return Report{}, fmt.Errorf("%w after %d days", ErrNoRefillObserved, e.days)
	}

	return Report{
		Start:          truncateToDay(e.params.Start),
		Days:           e.days,
		DayCounts:      e.counts,
		FirstRefill:    e.firstRefill,
		Refills:        e.refills,
		MonthlyUsage:   e.monthly,
		MaxOverflow:    e.maxOverflow,
		LongestWarming: e.warming.best,
		BestRainSum:    e.rainSum.best,
		FinalLevel:     e.tank.Level(),
		Capacity:       e.tank.Capacity(),
	}, nil
}

// Run validates p and folds every reading from r through a new Engine.
// obs may be nil. The reader is not closed.
func Run(ctx context.Context, r weather.Reader, p Params, obs Observer) (Report, error) {
	if err := p.Validate(); err != nil {
		return Report{}, fmt.Errorf("invalid parameters: %w", err)
	}

	e := New(p)
	e.log = logging.FromContext(ctx)

	for {
		reading, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Report{}, fmt.Errorf("read day %d: %w", e.days+1, err)
		}

		day, err := e.Step(reading)
		if err != nil {
			return Report{}, err
		}
		if obs != nil {
			obs.OnDay(day)
		}
	}

	rep, err := e.Finish()
	if err != nil {
		return Report{}, err
	}

	e.log.Info().
		Int("days", rep.Days).
		Int("refills", rep.Refills).
		Str("first_day", rep.Start.AddDate(0, 0, 1).Format(DateLayout)).
		Str("last_day", e.Date().Format(DateLayout)).
		Msg("simulation finished")

	return rep, nil
}
