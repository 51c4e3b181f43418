// Package humanfmt provides human-readable formatting for water volumes, durations, and counts.
package humanfmt

import (
	"fmt"
	"strconv"
	"time"
)

// LitersPerCubicMeter converts between the two volume units used in reports.
const LitersPerCubicMeter = 1000

// Liters formats a volume given in liters, switching to cubic meters from 1 m³ upwards.
// Examples: "350 L", "12.50 m³", "-3.20 m³".
func Liters(l float64) string {
	abs := l
	if abs < 0 {
		abs = -abs
	}
	if abs >= LitersPerCubicMeter {
		return fmt.Sprintf("%.2f m³", l/LitersPerCubicMeter)
	}
	return fmt.Sprintf("%.0f L", l)
}

// Millimeters formats a rainfall depth.
func Millimeters(mm float64) string {
	return fmt.Sprintf("%.1f mm", mm)
}

// Duration formats a run duration.
// Examples: "1.23s", "45.6ms", "789.0µs", "1m30s".
func Duration(d time.Duration) string {
	if d < 0 {
		return d.String()
	}

	switch {
	case d >= time.Minute:
		m := d / time.Minute
		s := (d % time.Minute) / time.Second
		if s == 0 {
			return fmt.Sprintf("%dm", m)
		}
		return fmt.Sprintf("%dm%ds", m, s)
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fµs", float64(d)/float64(time.Microsecond))
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

// Days formats a day count with the right plural.
func Days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}
