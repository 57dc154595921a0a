// Package format renders durations, money and calendar labels the same way
// everywhere they are shown, so report totals match on-screen totals.
package format

import (
	"fmt"
	"strings"
	"time"

	"tempo-tracker/internal/domain"

	"github.com/dustin/go-humanize"
)

// DateLabelLayout is the label used for day groups, e.g. "Mon, Mar 10, 2025".
const DateLabelLayout = "Mon, Jan 2, 2006"

// DateKeyLayout is the stable key used for day groups.
const DateKeyLayout = "2006-01-02"

const tomanSuffix = " تومان"

var persianDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
	",", "٬", "-", "−",
)

// Duration renders d as HH:MM:SS. Hours are not capped at 24.
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int64(d / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds / 60) % 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Currency renders an amount in the given currency.
//   - USD: "$1,234.50"
//   - IRT: rounded, Persian digits and grouping, followed by "تومان"
//   - others: "EUR 1,234.50"
func Currency(amount float64, currency domain.Currency) string {
	switch currency {
	case domain.IRT:
		return persianDigits.Replace(humanize.FormatFloat("#,###.", amount)) + tomanSuffix
	case domain.USD, "":
		if amount < 0 {
			return "-$" + humanize.FormatFloat("#,###.##", -amount)
		}
		return "$" + humanize.FormatFloat("#,###.##", amount)
	default:
		return string(currency) + " " + humanize.FormatFloat("#,###.##", amount)
	}
}

// Totals renders every currency bucket, sorted by code. An empty map
// renders as zero in the fallback currency.
func Totals(totals domain.Totals, fallback domain.Currency) string {
	if len(totals) == 0 {
		return Currency(0, fallback)
	}
	parts := make([]string, 0, len(totals))
	for _, code := range totals.Currencies() {
		parts = append(parts, Currency(totals.Get(code), code))
	}
	return strings.Join(parts, " + ")
}

// DateLabel renders the day-group label for t.
func DateLabel(t time.Time) string {
	return t.Format(DateLabelLayout)
}

// DateKey renders the stable day-group key for t.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// Clock renders a time of day as HH:MM.
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// Rate renders an hourly rate, e.g. "$50/h".
func Rate(rate float64, currency domain.Currency) string {
	return Currency(rate, currency) + "/h"
}
