package weather

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// parquetReader reads weather logs stored as Parquet files with a
// "temperature" and a "rainfall" column. It streams row groups in order.
type parquetReader struct {
	file     *parquet.File
	tempFile *os.File // Temp file for buffering (only if created by us)
	closers  []io.Closer
	tempCol  int
	rainCol  int

	rowGroups    []parquet.RowGroup
	currentRGIdx int
	currentRows  parquet.Rows
	rowBuf       []parquet.Row
	bufIdx       int
	bufLen       int
	row          int
}

// NewParquetReader creates a Parquet weather reader from an io.ReaderAt,
// e.g. a local file.
func NewParquetReader(r io.ReaderAt, size int64) (Reader, error) {
	file, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	return newParquetReader(file)
}

// newParquetReaderFromStream buffers a stream to a temp file, since Parquet
// needs random access, and opens a reader over it. The stream is always closed.
func newParquetReaderFromStream(rc io.ReadCloser) (Reader, error) {
	tempFile, err := os.CreateTemp("", "raintank-weather-*.parquet")
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	written, err := io.Copy(tempFile, rc)
	rc.Close()
	if err != nil {
		removeTemp(tempFile)
		return nil, fmt.Errorf("buffer parquet data: %w", err)
	}

	file, err := parquet.OpenFile(tempFile, written)
	if err != nil {
		removeTemp(tempFile)
		return nil, fmt.Errorf("open parquet file: %w", err)
	}

	r, err := newParquetReader(file)
	if err != nil {
		removeTemp(tempFile)
		return nil, err
	}
	r.tempFile = tempFile
	return r, nil
}

func newParquetReader(file *parquet.File) (*parquetReader, error) {
	tempCol, rainCol := -1, -1
	for i, field := range file.Schema().Fields() {
		switch field.Name() {
		case "temperature":
			tempCol = i
		case "rainfall":
			rainCol = i
		}
	}
	if tempCol < 0 {
		return nil, errors.New("parquet schema missing 'temperature' column")
	}
	if rainCol < 0 {
		return nil, errors.New("parquet schema missing 'rainfall' column")
	}

	return &parquetReader{
		file:         file,
		tempCol:      tempCol,
		rainCol:      rainCol,
		rowGroups:    file.RowGroups(),
		currentRGIdx: -1,
		rowBuf:       make([]parquet.Row, 256),
	}, nil
}

// Next returns the next day's reading.
func (r *parquetReader) Next() (Reading, error) {
	for {
		if r.bufIdx < r.bufLen {
			row := r.rowBuf[r.bufIdx]
			r.bufIdx++
			r.row++
			return r.toReading(row)
		}

		if r.currentRows != nil {
			n, err := r.currentRows.ReadRows(r.rowBuf)
			if n > 0 {
				r.bufIdx = 0
				r.bufLen = n
				continue
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return Reading{}, fmt.Errorf("read parquet rows: %w", err)
			}
			r.currentRows.Close()
			r.currentRows = nil
		}

		r.currentRGIdx++
		if r.currentRGIdx >= len(r.rowGroups) {
			return Reading{}, io.EOF
		}
		r.currentRows = r.rowGroups[r.currentRGIdx].Rows()
	}
}

// toReading converts a parquet.Row to a Reading. Both columns must be present
// and numeric.
func (r *parquetReader) toReading(row parquet.Row) (Reading, error) {
	var rd Reading
	var haveTemp, haveRain bool

	for _, val := range row {
		switch val.Column() {
		case r.tempCol:
			v, ok := numeric(val)
			if !ok {
				return Reading{}, &RecordError{Line: r.row, Field: "temperature"}
			}
			rd.Temperature, haveTemp = v, true
		case r.rainCol:
			v, ok := numeric(val)
			if !ok {
				return Reading{}, &RecordError{Line: r.row, Field: "rainfall"}
			}
			rd.Rainfall, haveRain = v, true
		}
	}

	if !haveTemp {
		return Reading{}, &RecordError{Line: r.row, Field: "temperature"}
	}
	if !haveRain {
		return Reading{}, &RecordError{Line: r.row, Field: "rainfall"}
	}
	return rd, nil
}

func numeric(v parquet.Value) (float64, bool) {
	if v.IsNull() {
		return 0, false
	}
	switch v.Kind() {
	case parquet.Double:
		return v.Double(), true
	case parquet.Float:
		return float64(v.Float()), true
	case parquet.Int32:
		return float64(v.Int32()), true
	case parquet.Int64:
		return float64(v.Int64()), true
	default:
		return 0, false
	}
}

// Close releases resources.
func (r *parquetReader) Close() error {
	if r.currentRows != nil {
		r.currentRows.Close()
		r.currentRows = nil
	}

	var firstErr error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if r.tempFile != nil {
		removeTemp(r.tempFile)
		r.tempFile = nil
	}
	return firstErr
}

func removeTemp(f *os.File) {
	name := f.Name()
	f.Close()
	os.Remove(name)
}
