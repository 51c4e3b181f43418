// Package metrics records simulation run metrics in Prometheus format.
//
// A run is a short-lived batch job, so metrics are not scraped. They are
// written once per run to a file for the node exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/eunmann/raintank/pkg/simulate"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "raintank"

// unclassified labels days outside every day-count bucket.
const unclassified = "none"

// Metrics holds the Prometheus counters, histograms, and gauges for one run.
type Metrics struct {
	registry *prometheus.Registry

	Days          *prometheus.CounterVec // labels: bucket={cold,warm_dry,warm_wet,none}
	Refills       prometheus.Counter
	RefillLiters  prometheus.Counter
	RefillVolume  prometheus.Histogram
	RainfallMM    prometheus.Counter
	MaxOverflow   prometheus.Gauge
	TankLevel     prometheus.Gauge
	RunDuration   prometheus.Gauge
	LastRunOK     prometheus.Gauge
	LastRunFinish prometheus.Gauge
}

// New creates run metrics registered with a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Days: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "days_total",
			Help:      "Simulated days by day-count bucket.",
		}, []string{"bucket"}),
		Refills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refills_total",
			Help:      "Days on which the tank was topped up from the mains.",
		}),
		RefillLiters: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refill_liters_total",
			Help:      "Liters of mains water used to top up the tank.",
		}),
		RefillVolume: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refill_volume_liters",
			Help:      "Volume of a single top-up.",
			Buckets:   []float64{1000, 5000, 10000, 15000, 20000, 25000},
		}),
		RainfallMM: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rainfall_mm_total",
			Help:      "Rainfall over the simulated period.",
		}),
		MaxOverflow: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_overflow_liters",
			Help:      "Largest single-day rain input that did not fit in the tank.",
		}),
		TankLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tank_level_liters",
			Help:      "Tank level after the last simulated day.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		LastRunOK: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 when the last run produced a report, 0 when it failed.",
		}),
		LastRunFinish: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}

	m.registry.MustRegister(
		m.Days,
		m.Refills,
		m.RefillLiters,
		m.RefillVolume,
		m.RainfallMM,
		m.MaxOverflow,
		m.TankLevel,
		m.RunDuration,
		m.LastRunOK,
		m.LastRunFinish,
	)

	return m
}

// Registry returns the registry holding the run metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// OnDay records one simulated day. It implements simulate.Observer.
func (m *Metrics) OnDay(d simulate.DayResult) {
	bucket := unclassified
	if d.Classified {
		bucket = d.Bucket.String()
	}
	m.Days.WithLabelValues(bucket).Inc()

	if d.Refilled {
		m.Refills.Inc()
		m.RefillLiters.Add(d.Refill)
		m.RefillVolume.Observe(d.Refill)
	}
	if d.Reading.Rainfall > 0 {
		m.RainfallMM.Add(d.Reading.Rainfall)
	}
	m.TankLevel.Set(d.Level)
}

// Finish records a successful run.
func (m *Metrics) Finish(rep simulate.Report, elapsed time.Duration, now time.Time) {
	m.MaxOverflow.Set(rep.MaxOverflow)
	m.TankLevel.Set(rep.FinalLevel)
	m.RunDuration.Set(elapsed.Seconds())
	m.LastRunOK.Set(1)
	m.LastRunFinish.Set(float64(now.Unix()))
}

// Fail records a failed run. Day-count buckets are dropped since no report
// was produced; the other counters keep what was observed before the failure.
func (m *Metrics) Fail(elapsed time.Duration, now time.Time) {
	m.Days.Reset()
	m.RunDuration.Set(elapsed.Seconds())
	m.LastRunOK.Set(0)
	m.LastRunFinish.Set(float64(now.Unix()))
}

// WriteTextfile atomically writes all metrics to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
