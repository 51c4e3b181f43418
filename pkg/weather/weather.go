// Package weather provides readers for daily weather logs.
//
// A weather log lists one (temperature, rainfall) pair per calendar day in
// chronological order. Dates are not part of the log: the caller assigns them
// by counting days from a configured start date.
package weather

import (
	"errors"
	"fmt"
)

// Reading is the weather observed on one day.
type Reading struct {
	// Temperature is the daily temperature in °C.
	Temperature float64
	// Rainfall is the daily rainfall in mm.
	Rainfall float64
}

// Reader is the interface for reading a weather log one day at a time.
type Reader interface {
	// Next returns the next day's reading.
	// Returns io.EOF when the log is exhausted.
	Next() (Reading, error)

	// Close releases resources associated with the reader.
	Close() error
}

var (
	// ErrInputNotFound indicates the weather log does not exist.
	ErrInputNotFound = errors.New("weather log not found")
	// ErrMalformedRecord indicates a line or row that cannot be turned into a Reading.
	ErrMalformedRecord = errors.New("malformed weather record")
)

// RecordError describes a malformed record. It matches ErrMalformedRecord
// with errors.Is.
type RecordError struct {
	// Line is the 1-based line (text logs, header included) or row (parquet logs).
	Line int
	// Field is "temperature" or "rainfall".
	Field string
	// Value is the raw text of the field, empty when the field is missing.
	Value string
	// Err is the underlying parse error, if any.
	Err error
}

func (e *RecordError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: line %d: missing %s", ErrMalformedRecord, e.Line, e.Field)
	}
	return fmt.Sprintf("%s: line %d: %s %q: %v", ErrMalformedRecord, e.Line, e.Field, e.Value, e.Err)
}

func (e *RecordError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedRecord}
	}
	return []error{ErrMalformedRecord, e.Err}
}
