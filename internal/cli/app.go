package cli

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/config"
	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"

	"github.com/spf13/pflag"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

const dateLayout = "2006-01-02"

// App carries what every command handler needs
type App struct {
	businessAPI  api.BusinessAPI
	config       *config.Config
	in           io.Reader
	out          io.Writer
	location     *time.Location
	errorHandler *ErrorHandler
}

// NewApp creates a CLI application around a business API
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config, in io.Reader, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		businessAPI:  businessAPI,
		config:       cfg,
		in:           in,
		out:          out,
		location:     time.Local,
		errorHandler: NewErrorHandler(),
	}
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// clock renders a time of day using the configured display format
func (a *App) clock(t time.Time) string {
	layout := a.config.Display.TimeFormat
	if layout == "" {
		layout = "15:04"
	}
	return t.In(a.location).Format(layout)
}

// parseTimeShorthand parses time shorthand like "30m", "2h", "1d", etc.
func parseTimeShorthand(shorthand string) (time.Duration, error) {
	re := regexp.MustCompile(`^(\d+)(m|h|d|w|mo|y)$`)
	matches := re.FindStringSubmatch(shorthand)
	if matches == nil {
		return 0, fmt.Errorf("invalid time format: %s", shorthand)
	}

	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number in time format: %s", shorthand)
	}

	unit := matches[2]
	var duration time.Duration

	switch unit {
	case "m":
		duration = time.Duration(value) * time.Minute
	case "h":
		duration = time.Duration(value) * time.Hour
	case "d":
		duration = time.Duration(value) * 24 * time.Hour
	case "w":
		duration = time.Duration(value) * 7 * 24 * time.Hour
	case "mo":
		duration = time.Duration(value) * 30 * 24 * time.Hour
	case "y":
		duration = time.Duration(value) * 365 * 24 * time.Hour
	default:
		return 0, fmt.Errorf("invalid time unit: %s", unit)
	}

	return duration, nil
}

// parseDay accepts a calendar date (YYYY-MM-DD), "today", or a shorthand
// such as "1w" meaning that long before now
func parseDay(field, value string, now time.Time, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if value == "today" {
		day := now.In(loc)
		return &day, nil
	}
	if d, err := parseTimeShorthand(value); err == nil {
		day := now.Add(-d).In(loc)
		return &day, nil
	}
	day, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return nil, errors.NewInvalidInputError(field, value, "expected YYYY-MM-DD, today, or a shorthand like 1w")
	}
	return &day, nil
}

// parseMoment accepts "YYYY-MM-DD HH:MM" or "HH:MM"; the latter is placed
// on base's calendar day
func parseMoment(field, value string, base time.Time, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(dateLayout+" 15:04", value, loc); err == nil {
		return t, nil
	}
	clock, err := time.ParseInLocation("15:04", value, loc)
	if err != nil {
		return time.Time{}, errors.NewInvalidInputError(field, value, "expected HH:MM or YYYY-MM-DD HH:MM")
	}
	day := base.In(loc)
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// changedString returns a pointer to value when the flag was set explicitly
func changedString(flags *pflag.FlagSet, name, value string) *string {
	if flags == nil || !flags.Changed(name) {
		return nil
	}
	return &value
}

func changedBool(flags *pflag.FlagSet, name string, value bool) *bool {
	if flags == nil || !flags.Changed(name) {
		return nil
	}
	return &value
}

func changedFloat(flags *pflag.FlagSet, name string, value float64) *float64 {
	if flags == nil || !flags.Changed(name) {
		return nil
	}
	return &value
}

// resolveProjectID accepts a project id or a case-insensitive project name.
// Unknown values are passed through so the API reports them.
func (a *App) resolveProjectID(ctx context.Context, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	state, err := a.businessAPI.GetState(ctx)
	if err != nil {
		return value
	}
	if _, ok := state.Project(value); ok {
		return value
	}
	for _, project := range state.Projects {
		if strings.EqualFold(project.Name, value) {
			return project.ID
		}
	}
	return value
}

func (a *App) preferredCurrency(ctx context.Context) domain.Currency {
	state, err := a.businessAPI.GetState(ctx)
	if err != nil {
		return domain.USD
	}
	return state.PreferredCurrency
}
