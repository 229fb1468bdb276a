// Package finance implements the aggregation engine behind the dashboard's
// financial reports: currency normalization, compensation-derived cost rates,
// platform fees, cost and budget aggregation, milestone revenue
// classification and trailing-month trends. Everything here is pure
// computation over entity snapshots; persistence and transport live in the
// surrounding packages.
package finance

import (
	"strings"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
)

// RateProvider resolves the base-currency rate for a currency code. The
// production implementation is a static table from config; tests substitute
// deterministic rates.
type RateProvider interface {
	Rate(code string) (float64, bool)
}

// StaticRates is a fixed currency table keyed by upper-case code.
type StaticRates struct {
	rates map[string]float64
}

func NewStaticRates(rates map[string]float64) *StaticRates {
	table := make(map[string]float64, len(rates))
	for code, rate := range rates {
		table[strings.ToUpper(code)] = rate
	}
	return &StaticRates{rates: table}
}

func (s *StaticRates) Rate(code string) (float64, bool) {
	rate, ok := s.rates[strings.ToUpper(code)]
	return rate, ok
}

// Converter normalizes amounts into the base currency.
type Converter struct {
	provider RateProvider
	// fallbackRate applies when a project budget's currency resolves
	// nowhere: no per-project override and no table entry.
	fallbackRate float64
}

func NewConverter(provider RateProvider, fallbackRate float64) *Converter {
	return &Converter{provider: provider, fallbackRate: fallbackRate}
}

// ToBase converts an optional amount into base-currency units. A nil amount
// stays nil: absence of data is not the same as zero. An unknown currency
// code is treated as already-base (rate 1).
func (c *Converter) ToBase(amount *float64, code string) *float64 {
	if amount == nil {
		return nil
	}
	v := c.ToBaseValue(*amount, code)
	return &v
}

// ToBaseValue is the non-nullable form of ToBase.
func (c *Converter) ToBaseValue(amount float64, code string) float64 {
	rate, ok := c.provider.Rate(code)
	if !ok {
		rate = 1
	}
	return amount * rate
}

// ProjectRate resolves the exchange rate a project's budget converts at:
// the per-project override wins, then the static table, then the hard
// fallback.
func (c *Converter) ProjectRate(p *model.Project) float64 {
	if p.ExchangeRate != nil {
		return *p.ExchangeRate
	}
	if rate, ok := c.provider.Rate(p.Currency); ok {
		return rate
	}
	return c.fallbackRate
}

// MilestoneCurrency returns the currency a milestone amount is quoted in:
// the milestone override when set, otherwise the project currency.
func MilestoneCurrency(m model.Milestone, projectCurrency string) string {
	if m.Currency != nil && *m.Currency != "" {
		return *m.Currency
	}
	return projectCurrency
}
