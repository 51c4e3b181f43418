package simulate

import (
	"math"
	"time"
)

// RefillEvent is a top-up of the tank from the mains.
type RefillEvent struct {
	Date   time.Time
	Volume float64
}

// MonthlyUsage holds refilled liters per calendar month, indexed by
// time.Month-1. Years are not distinguished.
type MonthlyUsage [12]float64

// Month returns the liters refilled in month m.
func (u MonthlyUsage) Month(m time.Month) float64 {
	if m < time.January || m > time.December {
		return 0
	}
	return u[m-1]
}

// Total returns the liters refilled across all months.
func (u MonthlyUsage) Total() float64 {
	var sum float64
	for _, v := range u {
		sum += v
	}
	return sum
}

func (u *MonthlyUsage) add(m time.Month, liters float64) {
	u[m-1] += liters
}

// Report is the result of a completed run.
type Report struct {
	// Start is the configured start date; the first reading is Start+1.
	Start time.Time
	// Days is the number of readings processed.
	Days int
	// DayCounts holds the day-count buckets.
	DayCounts DayCounts
	// FirstRefill is the first top-up of the run.
	FirstRefill RefillEvent
	// Refills is the number of top-ups.
	Refills int
	// MonthlyUsage holds the refilled liters per month.
	MonthlyUsage MonthlyUsage
	// MaxOverflow is the largest single-day rain input that did not fit.
	MaxOverflow float64
	// LongestWarming is the longest closed run of rainless warming days.
	LongestWarming Streak
	// BestRainSum is the largest rainfall total over consecutive rainy days.
	BestRainSum float64
	// FinalLevel is the tank level after the last day.
	FinalLevel float64
	// Capacity is the simulated tank's capacity.
	Capacity float64
}

// MaxOverflowCeil returns MaxOverflow rounded up to whole liters.
func (r Report) MaxOverflowCeil() float64 {
	return math.Ceil(r.MaxOverflow)
}

// CapacityNeeded returns the capacity, rounded up, that would have absorbed
// the largest overflow.
func (r Report) CapacityNeeded() float64 {
	return math.Ceil(r.Capacity + r.MaxOverflow)
}

// End returns the date of the last simulated day.
func (r Report) End() time.Time {
	return r.Start.AddDate(0, 0, r.Days)
}
