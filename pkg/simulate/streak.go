package simulate

import "time"

// Streak is a run of consecutive days. Start is the day the run opened and
// Days the number of days it was extended by, so a streak covers
// Start..End inclusive.
type Streak struct {
	Start time.Time
	Days  int
}

// End returns Start plus Days days.
func (s Streak) End() time.Time {
	return s.Start.AddDate(0, 0, s.Days)
}

// warmingTracker follows runs of rainless days with rising temperature.
//
// A dry day warmer than the previous day extends the open streak; any other
// day closes it and opens a new one on that day. The best streak only changes
// when a streak closes, so a streak still open at the end of the log is never
// counted.
type warmingTracker struct {
	current Streak
	best    Streak
	// prev is the previous day's temperature. It starts at 0 °C, so a first
	// day above freezing already counts as warming.
	prev float64
}

func newWarmingTracker(start time.Time) warmingTracker {
	return warmingTracker{
		current: Streak{Start: start},
		best:    Streak{Start: start},
	}
}

// dry records a rainless day. It returns the streak it closed, if any.
func (w *warmingTracker) dry(date time.Time, temperature float64) (Streak, bool) {
	defer func() { w.prev = temperature }()
	if temperature > w.prev {
		w.current.Days++
		return Streak{}, false
	}
	return w.restart(date), true
}

// rain records a rainy day, which always closes the open streak.
func (w *warmingTracker) rain(date time.Time, temperature float64) Streak {
	closed := w.restart(date)
	w.prev = temperature
	return closed
}

// restart closes the open streak, keeping it if strictly longer than the
// best, and opens an empty one on date.
func (w *warmingTracker) restart(date time.Time) Streak {
	closed := w.current
	if closed.Days > w.best.Days {
		w.best = closed
	}
	w.current = Streak{Start: date}
	return closed
}

// rainSumTracker sums rainfall over runs of consecutive rainy days.
type rainSumTracker struct {
	current float64
	best    float64
}

func (r *rainSumTracker) add(rainfall float64) {
	r.current += rainfall
}

// close ends the open run, keeping its total if it is the largest so far.
func (r *rainSumTracker) close() {
	if r.current > r.best {
		r.best = r.current
	}
	r.current = 0
}
