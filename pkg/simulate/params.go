package simulate

import (
	"errors"
	"fmt"
	"time"

	"github.com/eunmann/raintank/pkg/tank"
)

// DateLayout is the date format used for start dates and reports.
const DateLayout = "2006-01-02"

// Params configures a simulation run.
type Params struct {
	// Start is the day before the first reading. Only the date part is used.
	Start time.Time
	// Tank holds the tank's physical constants.
	Tank tank.Physics
	// Irrigation holds the daily watering demand.
	Irrigation tank.Irrigation
}

// DefaultStart is the reference start date: the log begins on 2015-04-01.
var DefaultStart = time.Date(2015, time.March, 31, 0, 0, 0, 0, time.UTC)

// DefaultParams returns the reference configuration.
func DefaultParams() Params {
	return Params{
		Start:      DefaultStart,
		Tank:       tank.DefaultPhysics(),
		Irrigation: tank.DefaultIrrigation(),
	}
}

// Validate checks that the parameters describe a runnable simulation.
func (p Params) Validate() error {
	if p.Start.IsZero() {
		return errors.New("start date is required")
	}
	if err := p.Tank.Validate(); err != nil {
		return fmt.Errorf("tank: %w", err)
	}
	if err := p.Irrigation.Validate(); err != nil {
		return fmt.Errorf("irrigation: %w", err)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
