package domain

import (
	"regexp"
	"sort"
	"strings"
)

// Currency is an ISO-4217 style code. USD and IRT get dedicated formatting.
type Currency string

const (
	USD Currency = "USD"
	IRT Currency = "IRT"
)

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// NormalizeCurrency upper-cases and trims a user supplied code.
func NormalizeCurrency(code string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(code)))
}

// IsValid reports whether c is a three letter code.
func (c Currency) IsValid() bool {
	return currencyCodeRegex.MatchString(string(c))
}

func (c Currency) String() string {
	return string(c)
}

// Totals accumulates billed amounts per currency. Amounts in different
// currencies are never summed together.
type Totals map[Currency]float64

// Add accumulates amount under currency.
func (t Totals) Add(currency Currency, amount float64) {
	t[currency] += amount
}

// Get returns the amount for currency, 0 when absent.
func (t Totals) Get(currency Currency) float64 {
	return t[currency]
}

// Currencies returns the currencies present, sorted by code.
func (t Totals) Currencies() []Currency {
	codes := make([]Currency, 0, len(t))
	for c := range t {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
