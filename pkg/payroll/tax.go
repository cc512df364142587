package payroll

import (
	"fmt"
	"math"
	"strings"

	"github.com/klokku/bizcalc/internal/config"
)

// TaxTable maps a nationality to its flat tax rate. Nationalities not listed pay DefaultRate.
type TaxTable struct {
	Rates       map[Nationality]float64
	DefaultRate float64
}

type TaxResult struct {
	Rate       float64
	TaxAmount  float64
	NetPayment float64
}

func DefaultTaxTable() TaxTable {
	return TaxTable{
		Rates:       map[Nationality]float64{Vietnamese: 0.10},
		DefaultRate: 0.20,
	}
}

// TaxTableFromConfig builds the table from the payroll section of the configuration.
// An empty section yields DefaultTaxTable. A configured nationality replaces any
// built-in one that differs only in case.
func TaxTableFromConfig(cfg config.Payroll) TaxTable {
	table := DefaultTaxTable()
	if cfg.DefaultTaxRate != nil {
		table.DefaultRate = *cfg.DefaultTaxRate
	}
	for nationality, rate := range cfg.TaxRates {
		table.Rates[table.key(Nationality(nationality))] = rate
	}
	return table
}

// RateFor matches nationality case-insensitively, exact matches first.
func (t TaxTable) RateFor(nationality Nationality) float64 {
	if rate, ok := t.Rates[t.key(nationality)]; ok {
		return rate
	}
	return t.DefaultRate
}

func (t TaxTable) key(nationality Nationality) Nationality {
	if _, ok := t.Rates[nationality]; ok {
		return nationality
	}
	for known := range t.Rates {
		if strings.EqualFold(string(known), string(nationality)) {
			return known
		}
	}
	return nationality
}

func (t TaxTable) ComputeTax(nationality Nationality, gross float64) TaxResult {
	rate := t.RateFor(nationality)
	tax := gross * rate
	return TaxResult{Rate: rate, TaxAmount: tax, NetPayment: gross - tax}
}

// Apply fills the tax fields of f from its nationality and gross payment.
func (t TaxTable) Apply(f Freelancer) Freelancer {
	result := t.ComputeTax(f.Nationality, f.GrossPayment)
	f.TaxRate = result.Rate
	f.TaxAmount = result.TaxAmount
	f.NetPayment = result.NetPayment
	return f
}

// FormatTaxRate renders a fractional rate as a whole percentage, e.g. 0.1 as "10%".
func FormatTaxRate(rate float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(rate*100)))
}
