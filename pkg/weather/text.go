package weather

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// textReader reads whitespace-separated weather tables.
//
// The first line is a header and is discarded. Every other line, blank ones
// included, must hold at least two fields, temperature then rainfall, written with either
// ',' or '.' as the decimal separator. Further fields are ignored.
type textReader struct {
	scanner *bufio.Scanner
	line    int
	closers []io.Closer
}

// NewTextReader creates a text weather reader from an io.Reader.
// The reader should provide the raw table (already decompressed if needed).
// Use OpenStream for automatic gzip handling.
func NewTextReader(r io.Reader) Reader {
	return &textReader{scanner: bufio.NewScanner(r)}
}

// Next returns the next day's reading.
func (r *textReader) Next() (Reading, error) {
	for r.scanner.Scan() {
		r.line++
		if r.line == 1 {
			continue
		}

		fields := strings.Fields(r.scanner.Text())
		temp, err := parseDecimal(fields, 0, r.line, "temperature")
		if err != nil {
			return Reading{}, err
		}
		rain, err := parseDecimal(fields, 1, r.line, "rainfall")
		if err != nil {
			return Reading{}, err
		}
		return Reading{Temperature: temp, Rainfall: rain}, nil
	}

	if err := r.scanner.Err(); err != nil {
		return Reading{}, fmt.Errorf("read weather line %d: %w", r.line+1, err)
	}
	return Reading{}, io.EOF
}

// Close releases resources.
func (r *textReader) Close() error {
	var firstErr error
	// Close in reverse order (gzip reader before underlying stream)
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// parseDecimal parses fields[idx] as a decimal number, accepting ',' as the
// decimal separator.
func parseDecimal(fields []string, idx, line int, name string) (float64, error) {
	if idx >= len(fields) {
		return 0, &RecordError{Line: line, Field: name}
	}
	raw := fields[idx]
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &RecordError{Line: line, Field: name, Value: raw, Err: err}
	}
	return v, nil
}
