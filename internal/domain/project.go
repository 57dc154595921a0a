package domain

// ProjectPalette holds the display colours new projects pick from.
var ProjectPalette = []string{
	"#3B82F6",
	"#10B981",
	"#F59E0B",
	"#EF4444",
	"#8B5CF6",
	"#EC4899",
	"#14B8A6",
	"#F97316",
}

// Project groups entries and may override the default rate and currency.
type Project struct {
	ID         string
	Name       string
	Color      string
	ClientName string
	HourlyRate *float64
	Currency   Currency // empty when the preferred currency applies
}

// RateOr returns the project's rate, or fallback when none is set.
func (p Project) RateOr(fallback float64) float64 {
	if p.HourlyRate == nil {
		return fallback
	}
	return *p.HourlyRate
}

// CurrencyOr returns the project's currency, or fallback when none is set.
func (p Project) CurrencyOr(fallback Currency) Currency {
	if p.Currency == "" {
		return fallback
	}
	return p.Currency
}

// ProjectUpdate is a partial set of project fields; nil means unchanged.
type ProjectUpdate struct {
	Name       *string
	Color      *string
	ClientName *string
	HourlyRate *float64
	Currency   *Currency
}

// IsEmpty reports whether the update carries no fields.
func (u ProjectUpdate) IsEmpty() bool {
	return u.Name == nil && u.Color == nil && u.ClientName == nil && u.HourlyRate == nil && u.Currency == nil
}

// Apply shallow-merges the provided fields into p.
func (u ProjectUpdate) Apply(p Project) Project {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Color != nil {
		p.Color = *u.Color
	}
	if u.ClientName != nil {
		p.ClientName = *u.ClientName
	}
	if u.HourlyRate != nil {
		rate := *u.HourlyRate
		p.HourlyRate = &rate
	}
	if u.Currency != nil {
		p.Currency = *u.Currency
	}
	return p
}
