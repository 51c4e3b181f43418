package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreakEnd(t *testing.T) {
	s := Streak{Start: date("2015-04-28"), Days: 5}
	assert.Equal(t, date("2015-05-03"), s.End())
	assert.Equal(t, s.Start, Streak{Start: s.Start}.End())
}

func TestWarmingTracker(t *testing.T) {
	w := newWarmingTracker(date("2015-03-31"))

	_, closed := w.dry(date("2015-04-01"), 3)
	assert.False(t, closed, "3 °C is warmer than the 0 °C baseline")
	_, closed = w.dry(date("2015-04-02"), 4)
	assert.False(t, closed)

	got, closed := w.dry(date("2015-04-03"), 4)
	assert.True(t, closed, "equal temperature is not warming")
	assert.Equal(t, Streak{Start: date("2015-03-31"), Days: 2}, got)
	assert.Equal(t, got, w.best)
	assert.Equal(t, Streak{Start: date("2015-04-03")}, w.current)

	got = w.rain(date("2015-04-04"), 2)
	assert.Equal(t, Streak{Start: date("2015-04-03")}, got)
	assert.Equal(t, 2.0, w.prev)
	assert.Equal(t, Streak{Start: date("2015-03-31"), Days: 2}, w.best)
}

func TestRainSumTracker(t *testing.T) {
	var r rainSumTracker
	r.add(1.5)
	r.add(2)
	r.close()
	r.add(3)
	assert.Equal(t, 3.5, r.best)
	r.close()
	assert.Equal(t, 3.5, r.best)
	assert.Zero(t, r.current)

	r.add(4)
	r.close()
	assert.Equal(t, 4.0, r.best)
}
