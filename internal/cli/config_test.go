package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eunmann/raintank/pkg/pricing"
	"github.com/eunmann/raintank/pkg/simulate"
)

func TestDetermineStartDate(t *testing.T) {
	t.Setenv(envStartDate, "")
	d, src, err := determineStartDate("")
	require.NoError(t, err)
	assert.Equal(t, sourceDefault, src)
	assert.Equal(t, simulate.DefaultStart, d)

	t.Setenv(envStartDate, "2016-03-31")
	d, src, err = determineStartDate("")
	require.NoError(t, err)
	assert.Equal(t, sourceEnv, src)
	assert.Equal(t, time.Date(2016, time.March, 31, 0, 0, 0, 0, time.UTC), d)

	d, src, err = determineStartDate("2017-03-31")
	require.NoError(t, err)
	assert.Equal(t, sourceFlag, src, "flag overrides env")
	assert.Equal(t, 2017, d.Year())
}

func TestDetermineStartDateInvalidEnv(t *testing.T) {
	t.Setenv(envStartDate, "yesterday")
	_, _, err := determineStartDate("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), envStartDate)
}

func TestDetermineCapacity(t *testing.T) {
	t.Setenv(envCapacity, "")
	c, src, err := determineCapacity("")
	require.NoError(t, err)
	assert.Equal(t, sourceDefault, src)
	assert.Equal(t, 25000.0, c)

	t.Setenv(envCapacity, "30000")
	c, src, err = determineCapacity("")
	require.NoError(t, err)
	assert.Equal(t, sourceEnv, src)
	assert.Equal(t, 30000.0, c)

	c, src, err = determineCapacity("40000")
	require.NoError(t, err)
	assert.Equal(t, sourceFlag, src)
	assert.Equal(t, 40000.0, c)
}

func TestDetermineCapacityInvalid(t *testing.T) {
	_, _, err := determineCapacity("0")
	assert.ErrorContains(t, err, "--capacity")

	t.Setenv(envCapacity, "NaN")
	_, _, err = determineCapacity("")
	assert.ErrorContains(t, err, envCapacity)
}

func TestDeterminePriceTable(t *testing.T) {
	t.Setenv(envPriceTable, "")
	pt, src, err := determinePriceTable("")
	require.NoError(t, err)
	assert.Equal(t, sourceDefault, src)
	assert.Equal(t, pricing.DefaultPrices(), pt)

	path := filepath.Join(t.TempDir(), "p.json")
	require.NoError(t, pricing.SavePriceTable(path, pricing.PriceTable{PerCubicMeter: 3, Currency: "EUR"}))
	pt, src, err = determinePriceTable(path)
	require.NoError(t, err)
	assert.Equal(t, sourceFlag, src)
	assert.Equal(t, "EUR", pt.Currency)

	t.Setenv(envPriceTable, filepath.Join(t.TempDir(), "missing.json"))
	_, _, err = determinePriceTable("")
	assert.ErrorContains(t, err, envPriceTable)
}

func TestParseMonths(t *testing.T) {
	tests := []struct {
		in          string
		first, last time.Month
		wantErr     bool
	}{
		{"4-8", time.April, time.August, false},
		{"1-12", time.January, time.December, false},
		{"6", time.June, time.June, false},
		{" 5 - 7 ", time.May, time.July, false},
		{"8-4", 0, 0, true},
		{"0-3", 0, 0, true},
		{"4-13", 0, 0, true},
		{"april", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			first, last, err := parseMonths(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := parseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, formatJSON, f)

	_, err = parseFormat("yaml")
	assert.Error(t, err)
}
