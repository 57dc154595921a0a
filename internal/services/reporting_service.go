package services

import (
	"time"

	"tempo-tracker/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct{}

// NewReportingService creates a new ReportingService instance
func NewReportingService() ReportingService {
	return &reportingServiceImpl{}
}

// CalculateTotalsByCurrency sums billed amounts of completed billable
// entries, keyed by each entry's effective currency
func (r *reportingServiceImpl) CalculateTotalsByCurrency(state domain.AppState, entries []domain.TimeEntry) domain.Totals {
	totals := domain.Totals{}
	for _, entry := range entries {
		if !entry.IsBillable || entry.EndTime == nil {
			continue
		}
		totals.Add(state.EffectiveCurrency(entry), entry.BilledAmount())
	}
	return totals
}

// CalculateTotalDuration sums (end ?? start) - start over entries
func (r *reportingServiceImpl) CalculateTotalDuration(entries []domain.TimeEntry) time.Duration {
	var total time.Duration
	for _, entry := range entries {
		total += entry.Duration()
	}
	return total
}

// Summarize rolls up count, duration and per-currency totals
func (r *reportingServiceImpl) Summarize(state domain.AppState, entries []domain.TimeEntry) Rollup {
	return Rollup{
		Count:    len(entries),
		Duration: r.CalculateTotalDuration(entries),
		Totals:   r.CalculateTotalsByCurrency(state, entries),
	}
}

// SummarizeSelection rolls up only the selected entries
func (r *reportingServiceImpl) SummarizeSelection(state domain.AppState, selection domain.Selection) Rollup {
	return r.Summarize(state, selection.Apply(state.Entries))
}
