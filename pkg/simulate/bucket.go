package simulate

// Bucket is a day-count category.
type Bucket uint8

// Day-count buckets. A day lands in at most one of them; days at exactly
// 15 °C, or warm days with exactly 0.6 mm of rain, land in none.
const (
	Cold    Bucket = iota // temperature < 15
	WarmDry               // temperature > 15 and rainfall < 0.6
	WarmWet               // temperature > 15 and rainfall > 0.6
	NumBuckets            // Sentinel value for array sizing
)

const (
	coldBelow   = 15.0
	wetRainfall = 0.6
)

var bucketNames = [NumBuckets]string{
	Cold:    "cold",
	WarmDry: "warm_dry",
	WarmWet: "warm_wet",
}

func (b Bucket) String() string {
	if b < NumBuckets {
		return bucketNames[b]
	}
	return "unknown"
}

// Classify returns the bucket for a day, or false when the day belongs to none.
func Classify(temperature, rainfall float64) (Bucket, bool) {
	switch {
	case temperature < coldBelow:
		return Cold, true
	case temperature > coldBelow && rainfall < wetRainfall:
		return WarmDry, true
	case temperature > coldBelow && rainfall > wetRainfall:
		return WarmWet, true
	default:
		return 0, false
	}
}

// DayCounts holds the number of days per bucket.
type DayCounts [NumBuckets]int

// Total returns the number of classified days.
func (c DayCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}
