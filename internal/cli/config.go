package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eunmann/raintank/pkg/pricing"
	"github.com/eunmann/raintank/pkg/report"
	"github.com/eunmann/raintank/pkg/simulate"
)

// Environment variables consulted when the matching flag is not set.
const (
	envStartDate  = "RAINTANK_START_DATE"
	envCapacity   = "RAINTANK_CAPACITY"
	envPriceTable = "RAINTANK_PRICE_TABLE"
)

// settingSource records where a setting came from.
type settingSource string

const (
	sourceFlag    settingSource = "flag"
	sourceEnv     settingSource = "env"
	sourceDefault settingSource = "default"
)

type reportFormat string

const (
	formatText reportFormat = "text"
	formatJSON reportFormat = "json"
)

type simulateConfig struct {
	params simulate.Params
	report report.Options
	format reportFormat

	startSource    settingSource
	capacitySource settingSource
	pricesSource   settingSource
}

func resolveSimulateConfig(start, capacity, prices, months, format string) (simulateConfig, error) {
	cfg := simulateConfig{
		params: simulate.DefaultParams(),
		report: report.DefaultOptions(),
	}

	var err error
	if cfg.params.Start, cfg.startSource, err = determineStartDate(start); err != nil {
		return simulateConfig{}, err
	}
	if cfg.params.Tank.Capacity, cfg.capacitySource, err = determineCapacity(capacity); err != nil {
		return simulateConfig{}, err
	}
	if cfg.report.Prices, cfg.pricesSource, err = determinePriceTable(prices); err != nil {
		return simulateConfig{}, err
	}
	if cfg.report.FirstMonth, cfg.report.LastMonth, err = parseMonths(months); err != nil {
		return simulateConfig{}, err
	}
	if cfg.format, err = parseFormat(format); err != nil {
		return simulateConfig{}, err
	}
	return cfg, nil
}

// lookup returns the flag value if set, else the environment value if set.
func lookup(flagVal, env string) (string, settingSource) {
	if flagVal != "" {
		return flagVal, sourceFlag
	}
	if v := os.Getenv(env); v != "" {
		return v, sourceEnv
	}
	return "", sourceDefault
}

func sourceName(src settingSource, flagName, env string) string {
	if src == sourceEnv {
		return env
	}
	return "--" + flagName
}

func determineStartDate(flagVal string) (time.Time, settingSource, error) {
	v, src := lookup(flagVal, envStartDate)
	if src == sourceDefault {
		return simulate.DefaultStart, src, nil
	}
	d, err := simulate.ParseDate(v)
	if err != nil {
		return time.Time{}, src, fmt.Errorf("invalid %s %q: want YYYY-MM-DD", sourceName(src, "start", envStartDate), v)
	}
	return d, src, nil
}

func determineCapacity(flagVal string) (float64, settingSource, error) {
	v, src := lookup(flagVal, envCapacity)
	if src == sourceDefault {
		return simulate.DefaultParams().Tank.Capacity, src, nil
	}
	c, err := strconv.ParseFloat(v, 64)
	if err != nil || !(c > 0) {
		return 0, src, fmt.Errorf("invalid %s %q: want a positive number of liters", sourceName(src, "capacity", envCapacity), v)
	}
	return c, src, nil
}

func determinePriceTable(flagVal string) (pricing.PriceTable, settingSource, error) {
	v, src := lookup(flagVal, envPriceTable)
	if src == sourceDefault {
		return pricing.DefaultPrices(), src, nil
	}
	pt, err := pricing.LoadPriceTable(v)
	if err != nil {
		return pricing.PriceTable{}, src, fmt.Errorf("%s: %w", sourceName(src, "prices", envPriceTable), err)
	}
	return pt, src, nil
}

func parseMonths(s string) (first, last time.Month, err error) {
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		hi = lo
	}
	a, errA := strconv.Atoi(strings.TrimSpace(lo))
	b, errB := strconv.Atoi(strings.TrimSpace(hi))
	if errA != nil || errB != nil || a < 1 || b > 12 || a > b {
		return 0, 0, fmt.Errorf("invalid --months %q: want first-last within 1-12", s)
	}
	return time.Month(a), time.Month(b), nil
}

func parseFormat(s string) (reportFormat, error) {
	switch f := reportFormat(strings.ToLower(s)); f {
	case formatText, formatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid --format %q: want text or json", s)
	}
}
