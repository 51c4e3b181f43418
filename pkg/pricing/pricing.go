// Package pricing provides cost estimation for mains water used to refill the tank.
package pricing

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/eunmann/raintank/pkg/humanfmt"
)

// PriceTable contains the water tariff.
type PriceTable struct {
	// PerCubicMeter is the price of one started cubic meter.
	PerCubicMeter float64 `json:"per_cubic_meter"`
	// Currency is printed after every amount.
	Currency string `json:"currency"`
}

// DefaultPrices returns the reference tariff of 11.74 PLN per m³.
func DefaultPrices() PriceTable {
	return PriceTable{
		PerCubicMeter: 11.74,
		Currency:      "PLN",
	}
}

// Validate reports whether the table can price water.
func (pt PriceTable) Validate() error {
	if math.IsNaN(pt.PerCubicMeter) || pt.PerCubicMeter < 0 {
		return fmt.Errorf("price per cubic meter must not be negative, got %v", pt.PerCubicMeter)
	}
	if pt.Currency == "" {
		return errors.New("currency is required")
	}
	return nil
}

// LoadPriceTable loads a price table from a JSON file.
func LoadPriceTable(path string) (PriceTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PriceTable{}, fmt.Errorf("read price table: %w", err)
	}

	var pt PriceTable
	if err := json.Unmarshal(data, &pt); err != nil {
		return PriceTable{}, fmt.Errorf("parse price table: %w", err)
	}
	if err := pt.Validate(); err != nil {
		return PriceTable{}, fmt.Errorf("price table %s: %w", path, err)
	}

	return pt, nil
}

// SavePriceTable saves a price table to a JSON file.
func SavePriceTable(path string, pt PriceTable) error {
	data, err := json.MarshalIndent(pt, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal price table: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write price table: %w", err)
	}

	return nil
}

// CubicMeters returns the billed volume for liters: every started cubic meter counts.
func CubicMeters(liters float64) float64 {
	return math.Ceil(liters / humanfmt.LitersPerCubicMeter)
}

// Cost returns the price of the billed volume for liters.
func (pt PriceTable) Cost(liters float64) float64 {
	return CubicMeters(liters) * pt.PerCubicMeter
}

// MonthlyCost is the bill for one calendar month.
type MonthlyCost struct {
	Month       time.Month
	Liters      float64
	CubicMeters float64
	Cost        float64
}

// MonthlyCosts prices usage (liters indexed by time.Month-1) for the months
// first through last inclusive.
func (pt PriceTable) MonthlyCosts(usage [12]float64, first, last time.Month) []MonthlyCost {
	if first < time.January {
		first = time.January
	}
	if last > time.December {
		last = time.December
	}

	var out []MonthlyCost
	for m := first; m <= last; m++ {
		liters := usage[m-1]
		out = append(out, MonthlyCost{
			Month:       m,
			Liters:      liters,
			CubicMeters: CubicMeters(liters),
			Cost:        pt.Cost(liters),
		})
	}
	return out
}

// FormatCost formats an amount with two decimals and the table's currency.
func (pt PriceTable) FormatCost(amount float64) string {
	return fmt.Sprintf("%.2f %s", amount, pt.Currency)
}
