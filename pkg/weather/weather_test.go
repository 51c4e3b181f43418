package weather

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = "temperatura opad\n14,0 0,0\n16,0 0\n10 5,0\n35,5 0,0\n"

var sampleReadings = []Reading{
	{Temperature: 14, Rainfall: 0},
	{Temperature: 16, Rainfall: 0},
	{Temperature: 10, Rainfall: 5},
	{Temperature: 35.5, Rainfall: 0},
}

func readAll(r Reader) ([]Reading, error) {
	var out []Reading
	for {
		rd, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rd)
	}
}

func TestTextReader(t *testing.T) {
	got, err := readAll(NewTextReader(strings.NewReader(sampleLog)))
	require.NoError(t, err)
	assert.Equal(t, sampleReadings, got)
}

func TestTextReader_HeaderOnly(t *testing.T) {
	r := NewTextReader(strings.NewReader("temperature rainfall\n"))
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTextReader_Empty(t *testing.T) {
	r := NewTextReader(strings.NewReader(""))
	_, err := r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTextReader_IgnoresExtraFields(t *testing.T) {
	log := "t r\n1,5 0,2 ignored\n-2 0\n"
	got, err := readAll(NewTextReader(strings.NewReader(log)))
	require.NoError(t, err)
	assert.Equal(t, []Reading{{1.5, 0.2}, {-2, 0}}, got)
}

func TestTextReader_BlankLineIsMalformed(t *testing.T) {
	r := NewTextReader(strings.NewReader("temp rain\n10,0 0,0\n\n12,0 0,0\n"))

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, Reading{Temperature: 10}, first)

	_, err = r.Next()
	require.ErrorIs(t, err, ErrMalformedRecord)

	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 3, recErr.Line)
	assert.Equal(t, "temperature", recErr.Field)
}

func TestTextReader_DotDecimals(t *testing.T) {
	got, err := readAll(NewTextReader(strings.NewReader("h\n12.25 0.6\n")))
	require.NoError(t, err)
	assert.Equal(t, []Reading{{12.25, 0.6}}, got)
}

func TestTextReader_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		log       string
		wantLine  int
		wantField string
		wantValue string
	}{
		{"bad temperature", "h\n1,0 0\nabc 0,0\n", 3, "temperature", "abc"},
		{"bad rainfall", "h\n1,0 x\n", 2, "rainfall", "x"},
		{"missing rainfall", "h\n1,0 0\n2,0\n", 3, "rainfall", ""},
		{"double separator", "h\n1,0,0 0\n", 2, "temperature", "1,0,0"},
		{"whitespace-only line", "h\n1,0 0\n   \n", 3, "temperature", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readAll(NewTextReader(strings.NewReader(tt.log)))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedRecord)

			var recErr *RecordError
			require.ErrorAs(t, err, &recErr)
			assert.Equal(t, tt.wantLine, recErr.Line)
			assert.Equal(t, tt.wantField, recErr.Field)
			assert.Equal(t, tt.wantValue, recErr.Value)
			assert.Contains(t, err.Error(), "line "+strconv.Itoa(tt.wantLine))
		})
	}
}

func TestRecordError_WrapsParseError(t *testing.T) {
	_, err := NewTextReader(strings.NewReader("h\n1e999 0\n")).Next()
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.ErrorIs(t, err, strconv.ErrRange)
}

func TestOpenFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pogoda.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))

	r, err := OpenFile(path)
	require.NoError(t, err)
	defer r.Close()

	got, err := readAll(r)
	require.NoError(t, err)
	assert.Equal(t, sampleReadings, got)
}

func TestOpenFile_Gzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(sampleLog))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	path := filepath.Join(t.TempDir(), "pogoda.txt.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	r, err := OpenFile(path)
	require.NoError(t, err)

	got, err := readAll(r)
	require.NoError(t, err)
	assert.Equal(t, sampleReadings, got)
	assert.NoError(t, r.Close())
}

func TestOpenFile_NotFound(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputNotFound)
	assert.Contains(t, err.Error(), "missing.txt")
}

func TestOpenStream_BadGzip(t *testing.T) {
	_, err := OpenStream(io.NopCloser(strings.NewReader("not gzip")), "log.gz")
	assert.Error(t, err)
}

// dailyWeather is a row of a Parquet weather log.
type dailyWeather struct {
	Date        string  `parquet:"date"`
	Temperature float64 `parquet:"temperature"`
	Rainfall    float64 `parquet:"rainfall"`
}

func writeParquetLog(t *testing.T) string {
	t.Helper()
	rows := []dailyWeather{
		{"2015-04-01", 14, 0},
		{"2015-04-02", 16, 0},
		{"2015-04-03", 10, 5},
		{"2015-04-04", 35.5, 0},
	}
	path := filepath.Join(t.TempDir(), "weather.parquet")
	require.NoError(t, parquet.WriteFile(path, rows))
	return path
}

func TestOpenFile_Parquet(t *testing.T) {
	r, err := OpenFile(writeParquetLog(t))
	require.NoError(t, err)
	defer r.Close()

	got, err := readAll(r)
	require.NoError(t, err)
	assert.Equal(t, sampleReadings, got)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestOpenStream_Parquet(t *testing.T) {
	content, err := os.ReadFile(writeParquetLog(t))
	require.NoError(t, err)

	r, err := OpenStream(io.NopCloser(bytes.NewReader(content)), "logs/weather.PARQUET")
	require.NoError(t, err)

	got, err := readAll(r)
	require.NoError(t, err)
	assert.Equal(t, sampleReadings, got)
	assert.NoError(t, r.Close())
}

func TestParquetReader_Float32Columns(t *testing.T) {
	type compact struct {
		Temperature float32 `parquet:"temperature"`
		Rainfall    float32 `parquet:"rainfall"`
	}
	path := filepath.Join(t.TempDir(), "compact.parquet")
	require.NoError(t, parquet.WriteFile(path, []compact{{12.5, 0.25}}))

	r, err := OpenFile(path)
	require.NoError(t, err)
	defer r.Close()

	got, err := readAll(r)
	require.NoError(t, err)
	assert.Equal(t, []Reading{{12.5, 0.25}}, got)
}

func TestParquetReader_MissingColumn(t *testing.T) {
	type tempOnly struct {
		Temperature float64 `parquet:"temperature"`
	}
	path := filepath.Join(t.TempDir(), "temp-only.parquet")
	require.NoError(t, parquet.WriteFile(path, []tempOnly{{12}}))

	_, err := OpenFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rainfall")
}

func TestParquetReader_NullValue(t *testing.T) {
	type sparse struct {
		Temperature float64  `parquet:"temperature"`
		Rainfall    *float64 `parquet:"rainfall,optional"`
	}
	rain := 1.5
	path := filepath.Join(t.TempDir(), "sparse.parquet")
	require.NoError(t, parquet.WriteFile(path, []sparse{{10, &rain}, {11, nil}}))

	r, err := OpenFile(path)
	require.NoError(t, err)
	defer r.Close()

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, Reading{10, 1.5}, first)

	_, err = r.Next()
	assert.ErrorIs(t, err, ErrMalformedRecord)
	var recErr *RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 2, recErr.Line)
	assert.Equal(t, "rainfall", recErr.Field)
}
