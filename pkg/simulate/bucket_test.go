package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		temp   float64
		rain   float64
		want   Bucket
		wantOK bool
	}{
		{"cold dry", 14, 0, Cold, true},
		{"cold wet", -5, 10, Cold, true},
		{"warm dry", 16, 0, WarmDry, true},
		{"warm drizzle", 20, 0.5, WarmDry, true},
		{"warm wet", 20, 3, WarmWet, true},
		{"exactly 15 dry", 15, 0, 0, false},
		{"exactly 15 wet", 15, 3, 0, false},
		{"warm with exactly 0.6 mm", 20, 0.6, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.temp, tt.rain)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBucketString(t *testing.T) {
	assert.Equal(t, "cold", Cold.String())
	assert.Equal(t, "warm_dry", WarmDry.String())
	assert.Equal(t, "warm_wet", WarmWet.String())
	assert.Equal(t, "unknown", NumBuckets.String())
}

func TestDayCountsTotal(t *testing.T) {
	assert.Equal(t, 6, DayCounts{1, 2, 3}.Total())
	assert.Zero(t, DayCounts{}.Total())
}
