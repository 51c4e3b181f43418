// Package report renders a simulation report for people (text) or tools (JSON).
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/eunmann/raintank/pkg/pricing"
	"github.com/eunmann/raintank/pkg/simulate"
)

// Options controls what is rendered.
type Options struct {
	// Prices is the tariff used for the water bill.
	Prices pricing.PriceTable
	// FirstMonth and LastMonth bound the billed months, inclusive.
	FirstMonth time.Month
	LastMonth  time.Month
}

// DefaultOptions bills April through August at the default tariff.
func DefaultOptions() Options {
	return Options{
		Prices:     pricing.DefaultPrices(),
		FirstMonth: time.April,
		LastMonth:  time.August,
	}
}

// WriteText writes the six report sections.
func WriteText(w io.Writer, rep simulate.Report, opts Options) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "1. Day counts")
	fmt.Fprintf(bw, "\tTemperature below 15 °C: %d\n", rep.DayCounts[simulate.Cold])
	fmt.Fprintf(bw, "\tTemperature above 15 °C, rainfall below 0.6 mm: %d\n", rep.DayCounts[simulate.WarmDry])
	fmt.Fprintf(bw, "\tTemperature above 15 °C, rainfall above 0.6 mm: %d\n", rep.DayCounts[simulate.WarmWet])

	fmt.Fprintln(bw, "2. First refill")
	fmt.Fprintf(bw, "\tDate: %s\n", rep.FirstRefill.Date.Format(simulate.DateLayout))
	fmt.Fprintf(bw, "\tWater refilled: %s L\n", number(rep.FirstRefill.Volume))

	fmt.Fprintln(bw, "3. Water bought")
	for _, mc := range opts.Prices.MonthlyCosts(rep.MonthlyUsage, opts.FirstMonth, opts.LastMonth) {
		fmt.Fprintf(bw, "\t%s: %s m^3, %s\n", mc.Month, number(mc.CubicMeters), opts.Prices.FormatCost(mc.Cost))
	}

	fmt.Fprintln(bw, "4. Overflow")
	fmt.Fprintf(bw, "\tLargest rain water loss: %s L\n", number(rep.MaxOverflowCeil()))
	fmt.Fprintf(bw, "\tCapacity needed to keep it: %s L\n", number(rep.CapacityNeeded()))

	fmt.Fprintln(bw, "5. Longest rainless warming")
	s := rep.LongestWarming
	fmt.Fprintf(bw, "\t%s - %s (%d days)\n",
		s.Start.Format(simulate.DateLayout), s.End().Format(simulate.DateLayout), s.Days)

	fmt.Fprintln(bw, "6. Rain sum")
	fmt.Fprintf(bw, "\tLargest rain sum: %s mm\n", number(rep.BestRainSum))

	return bw.Flush()
}

// number formats v with the fewest digits that represent it exactly.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type jsonReport struct {
	Start          string         `json:"start"`
	End            string         `json:"end"`
	Days           int            `json:"days"`
	DayCounts      map[string]int `json:"day_counts"`
	FirstRefill    jsonRefill     `json:"first_refill"`
	Refills        int            `json:"refills"`
	Months         []jsonMonth    `json:"months"`
	MaxOverflow    float64        `json:"max_overflow_liters"`
	CapacityNeeded float64        `json:"capacity_needed_liters"`
	LongestWarming jsonStreak     `json:"longest_warming"`
	BestRainSum    float64        `json:"best_rain_sum_mm"`
	FinalLevel     float64        `json:"final_level_liters"`
	Currency       string         `json:"currency"`
}

type jsonRefill struct {
	Date   string  `json:"date"`
	Liters float64 `json:"liters"`
}

type jsonMonth struct {
	Month       string  `json:"month"`
	Liters      float64 `json:"liters"`
	CubicMeters float64 `json:"cubic_meters"`
	Cost        float64 `json:"cost"`
}

type jsonStreak struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// WriteJSON writes the report as a single indented JSON document.
func WriteJSON(w io.Writer, rep simulate.Report, opts Options) error {
	out := jsonReport{
		Start:     rep.Start.Format(simulate.DateLayout),
		End:       rep.End().Format(simulate.DateLayout),
		Days:      rep.Days,
		DayCounts: make(map[string]int, simulate.NumBuckets),
		FirstRefill: jsonRefill{
			Date:   rep.FirstRefill.Date.Format(simulate.DateLayout),
			Liters: rep.FirstRefill.Volume,
		},
		Refills:        rep.Refills,
		MaxOverflow:    rep.MaxOverflowCeil(),
		CapacityNeeded: rep.CapacityNeeded(),
		LongestWarming: jsonStreak{
			Start: rep.LongestWarming.Start.Format(simulate.DateLayout),
			End:   rep.LongestWarming.End().Format(simulate.DateLayout),
			Days:  rep.LongestWarming.Days,
		},
		BestRainSum: rep.BestRainSum,
		FinalLevel:  rep.FinalLevel,
		Currency:    opts.Prices.Currency,
	}
	for b := simulate.Bucket(0); b < simulate.NumBuckets; b++ {
		out.DayCounts[b.String()] = rep.DayCounts[b]
	}
	for _, mc := range opts.Prices.MonthlyCosts(rep.MonthlyUsage, opts.FirstMonth, opts.LastMonth) {
		out.Months = append(out.Months, jsonMonth{
			Month:       mc.Month.String(),
			Liters:      mc.Liters,
			CubicMeters: mc.CubicMeters,
			Cost:        mc.Cost,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
