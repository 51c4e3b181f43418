// Package cli implements the command-line interface for raintank.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/eunmann/raintank/pkg/logging"
	"github.com/eunmann/raintank/pkg/metrics"
	"github.com/eunmann/raintank/pkg/pricing"
	"github.com/eunmann/raintank/pkg/report"
	"github.com/eunmann/raintank/pkg/s3fetch"
	"github.com/eunmann/raintank/pkg/simulate"
	"github.com/eunmann/raintank/pkg/weather"
)

const usage = "usage: raintank <command> [options]\ncommands: simulate, prices"

// Run executes the CLI with the given arguments.
func Run(args []string) error {
	a := &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		clock:  clockwork.NewRealClock(),
		newS3:  s3fetch.NewClient,
	}
	return a.run(context.Background(), args)
}

type app struct {
	stdout io.Writer
	stderr io.Writer
	clock  clockwork.Clock
	newS3  func(context.Context) (*s3fetch.Client, error)
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "simulate":
		return a.runSimulate(ctx, args[1:])
	case "prices":
		return a.runPrices(args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func (a *app) runSimulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	input := fs.String("input", "pogoda.txt", "weather log: local path (.txt, .gz, .parquet) or s3://bucket/key")
	start := fs.String("start", "", "day before the first reading, YYYY-MM-DD (env "+envStartDate+", default 2015-03-31)")
	capacity := fs.String("capacity", "", "tank capacity in liters (env "+envCapacity+", default 25000)")
	prices := fs.String("prices", "", "JSON price table (env "+envPriceTable+", default 11.74 PLN per m³)")
	months := fs.String("months", "4-8", "billed months, first-last, 1-12")
	format := fs.String("format", "text", "report format: text or json")
	metricsFile := fs.String("metrics-file", "", "write Prometheus metrics to this textfile")
	debug := fs.Bool("debug", false, "enable debug logging")
	human := fs.Bool("human", false, "human-readable console logs")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	logging.SetLogger(logging.New(a.stderr, *debug, *human))

	cfg, err := resolveSimulateConfig(*start, *capacity, *prices, *months, *format)
	if err != nil {
		return err
	}

	log := logging.WithPhase("load")
	log.Debug().
		Str("start", cfg.params.Start.Format(simulate.DateLayout)).
		Str("start_source", string(cfg.startSource)).
		Float64("capacity", cfg.params.Tank.Capacity).
		Str("capacity_source", string(cfg.capacitySource)).
		Str("prices_source", string(cfg.pricesSource)).
		Str("input", *input).
		Msg("configuration resolved")

	began := a.clock.Now()

	r, err := a.openInput(ctx, *input)
	if err != nil {
		return err
	}
	defer r.Close()

	logging.NewCompletionEvent(*logging.L(), "input_opened", "load", a.clock.Since(began), *human).
		Str("input", *input).
		LogDebug("weather log opened")

	var m *metrics.Metrics
	var obs simulate.Observer
	if *metricsFile != "" {
		m = metrics.New()
		obs = m
	}

	simCtx := logging.WithStr(logging.WithLogger(ctx, logging.WithPhase("simulate")), "input", *input)
	rep, err := simulate.Run(simCtx, r, cfg.params, obs)
	if err != nil {
		err = fmt.Errorf("simulate %s: %w", *input, err)
		if m != nil {
			m.Fail(a.clock.Since(began), a.clock.Now())
			if werr := a.writeMetrics(m, *metricsFile); werr != nil {
				return errors.Join(err, werr)
			}
		}
		return err
	}

	if err := a.writeReport(rep, cfg); err != nil {
		return err
	}

	elapsed := a.clock.Since(began)
	if m != nil {
		m.Finish(rep, elapsed, a.clock.Now())
		if err := a.writeMetrics(m, *metricsFile); err != nil {
			return err
		}
	}

	logging.PhaseComplete(*logging.L(), "simulate", elapsed, *human).
		Str("input", *input).
		Days("days", rep.Days).
		Int("refills", rep.Refills).
		Liters("refilled", rep.MonthlyUsage.Total()).
		Rainfall("best_rain_sum", rep.BestRainSum).
		Float64("bill", billTotal(rep, cfg.report)).
		Log("simulation complete")

	return nil
}

// billTotal sums the bill over the billed months.
func billTotal(rep simulate.Report, opts report.Options) float64 {
	var total float64
	for _, mc := range opts.Prices.MonthlyCosts(rep.MonthlyUsage, opts.FirstMonth, opts.LastMonth) {
		total += mc.Cost
	}
	return total
}

func (a *app) openInput(ctx context.Context, input string) (weather.Reader, error) {
	if !s3fetch.IsS3URI(input) {
		r, err := weather.OpenFile(input)
		if err != nil {
			return nil, fmt.Errorf("open weather log: %w", err)
		}
		return r, nil
	}

	client, err := a.newS3(ctx)
	if err != nil {
		return nil, fmt.Errorf("create S3 client: %w", err)
	}
	r, err := client.OpenWeatherLog(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("open weather log: %w", err)
	}
	return r, nil
}

func (a *app) writeReport(rep simulate.Report, cfg simulateConfig) error {
	var err error
	switch cfg.format {
	case formatJSON:
		err = report.WriteJSON(a.stdout, rep, cfg.report)
	default:
		err = report.WriteText(a.stdout, rep, cfg.report)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (a *app) writeMetrics(m *metrics.Metrics, path string) error {
	if err := m.WriteTextfile(path); err != nil {
		logging.L().Warn().Err(err).Str("path", path).Msg("metrics not written")
		return err
	}
	return nil
}

func (a *app) runPrices(args []string) error {
	fs := flag.NewFlagSet("prices", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	out := fs.String("out", "", "path of the price table to write")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return errors.New("--out is required")
	}

	if err := pricing.SavePriceTable(*out, pricing.DefaultPrices()); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "wrote default price table to %s\n", *out)
	return nil
}
