package simulate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.Validate())
	assert.Equal(t, date("2015-03-31"), p.Start)
	assert.Equal(t, 25000.0, p.Tank.Capacity)
	assert.Equal(t, 700.0, p.Tank.RainCapture)
	assert.Equal(t, 0.0003, p.Tank.EvaporationCoeff)
	assert.Equal(t, 30.0, p.Irrigation.HotThreshold)
}

func TestParamsValidate(t *testing.T) {
	p := DefaultParams()
	p.Start = time.Time{}
	assert.ErrorContains(t, p.Validate(), "start date")

	p = DefaultParams()
	p.Tank.Capacity = -1
	assert.ErrorContains(t, p.Validate(), "tank:")

	p = DefaultParams()
	p.Irrigation.HotDemand = 0
	assert.ErrorContains(t, p.Validate(), "irrigation:")
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2015-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2015, time.March, 31, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("31.03.2015")
	assert.Error(t, err)
}
