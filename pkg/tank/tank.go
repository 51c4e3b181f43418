// Package tank models a rainwater collection tank used for irrigation.
//
// Each day the tank either captures rain or loses water to evaporation, is
// topped up from the mains when it cannot cover the day's irrigation demand,
// and then supplies that demand. Levels are kept in whole liters: every
// capture and evaporation result is rounded up.
package tank

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientWater indicates an irrigation draw larger than the water in
// the tank, which after a top-up means the demand exceeds the capacity.
var ErrInsufficientWater = errors.New("irrigation demand exceeds tank contents")

// Physics holds the tank's physical constants.
type Physics struct {
	// Capacity is the tank volume in liters.
	Capacity float64
	// RainCapture is the liters collected per mm of rainfall.
	RainCapture float64
	// EvaporationCoeff scales the daily evaporation loss,
	// coeff * temperature^1.5 * level.
	EvaporationCoeff float64
}

// DefaultPhysics returns the reference tank: 25 m³, 700 L per mm of rain.
func DefaultPhysics() Physics {
	return Physics{
		Capacity:         25000,
		RainCapture:      700,
		EvaporationCoeff: 0.0003,
	}
}

// Validate reports whether the constants describe a usable tank.
func (p Physics) Validate() error {
	if !(p.Capacity > 0) {
		return fmt.Errorf("tank capacity must be positive, got %v", p.Capacity)
	}
	if !(p.RainCapture > 0) {
		return fmt.Errorf("rain capture must be positive, got %v", p.RainCapture)
	}
	if p.EvaporationCoeff < 0 {
		return fmt.Errorf("evaporation coefficient must not be negative, got %v", p.EvaporationCoeff)
	}
	return nil
}

// Irrigation holds the daily watering demand, which doubles on hot days.
type Irrigation struct {
	// HotThreshold is the temperature (°C) above which a day is hot.
	HotThreshold float64
	// NormalDemand is the liters needed on a day at or below HotThreshold.
	NormalDemand float64
	// HotDemand is the liters needed on a day above HotThreshold.
	HotDemand float64
}

// DefaultIrrigation returns the reference demand: 12 m³, or 24 m³ above 30 °C.
func DefaultIrrigation() Irrigation {
	return Irrigation{
		HotThreshold: 30,
		NormalDemand: 12000,
		HotDemand:    24000,
	}
}

// Validate reports whether the demands are positive.
func (i Irrigation) Validate() error {
	if !(i.NormalDemand > 0) || !(i.HotDemand > 0) {
		return fmt.Errorf("irrigation demands must be positive, got %v/%v", i.NormalDemand, i.HotDemand)
	}
	return nil
}

// Demand returns the liters needed to water the plants at the given temperature.
func (i Irrigation) Demand(temperature float64) float64 {
	if temperature <= i.HotThreshold {
		return i.NormalDemand
	}
	return i.HotDemand
}

// Tank is the mutable water level. The zero value is not usable; use New.
type Tank struct {
	physics Physics
	level   float64
}

// New returns a full tank.
func New(p Physics) *Tank {
	return &Tank{physics: p, level: p.Capacity}
}

// Level returns the current contents in liters.
func (t *Tank) Level() float64 {
	return t.level
}

// Capacity returns the tank volume in liters.
func (t *Tank) Capacity() float64 {
	return t.physics.Capacity
}

// Capture adds the rain collected from rainfall mm and returns the liters
// that did not fit (0 if none). The level is clamped to capacity and rounded up.
func (t *Tank) Capture(rainfall float64) (overflow float64) {
	withRain := t.level + t.physics.RainCapture*rainfall
	overflow = math.Max(withRain-t.physics.Capacity, 0)
	t.level = math.Ceil(math.Min(withRain, t.physics.Capacity))
	return overflow
}

// Evaporate removes one day of evaporation at the given temperature. The level
// is clamped to zero and rounded up. Below 0 °C the loss is not a real number
// and the tank is treated as emptied.
func (t *Tank) Evaporate(temperature float64) {
	next := t.level - t.physics.EvaporationCoeff*math.Pow(temperature, 1.5)*t.level
	if math.IsNaN(next) || next < 0 {
		next = 0
	}
	t.level = math.Ceil(next)
}

// TopUp fills the tank to capacity when it holds less than demand. It
// returns the liters added and whether a top-up happened; a top-up of a full
// tank adds nothing but is still reported.
func (t *Tank) TopUp(demand float64) (refill float64, ok bool) {
	if t.level >= demand {
		return 0, false
	}
	refill = t.physics.Capacity - t.level
	t.level = t.physics.Capacity
	return refill, true
}

// Draw removes demand liters. It fails without changing the level when the
// tank holds less than demand.
func (t *Tank) Draw(demand float64) error {
	if t.level-demand < 0 {
		return fmt.Errorf("%w: need %.0f L, have %.0f L of %.0f L", ErrInsufficientWater, demand, t.level, t.physics.Capacity)
	}
	t.level -= demand
	return nil
}
