package sqlite

// StateDocument is the persisted shape of the whole application state.
// Field names and millisecond timestamps match the blob written by earlier
// versions so existing data keeps loading.
type StateDocument struct {
	Entries           []EntryRecord   `json:"entries"`
	Projects          []ProjectRecord `json:"projects"`
	ActiveEntry       *ActiveRecord   `json:"activeEntry"`
	DefaultHourlyRate *float64        `json:"defaultHourlyRate,omitempty"`
	PreferredCurrency string          `json:"preferredCurrency,omitempty"`
	ThemeMode         string          `json:"themeMode,omitempty"`
}

// EntryRecord is a persisted time entry
type EntryRecord struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	ProjectID   string  `json:"projectId,omitempty"`
	StartTime   int64   `json:"startTime"`
	EndTime     *int64  `json:"endTime,omitempty"`
	IsBillable  bool    `json:"isBillable"`
	HourlyRate  float64 `json:"hourlyRate"`
}

// ProjectRecord is a persisted project
type ProjectRecord struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Color      string   `json:"color"`
	ClientName string   `json:"clientName,omitempty"`
	HourlyRate *float64 `json:"hourlyRate,omitempty"`
	Currency   string   `json:"currency,omitempty"`
}

// ActiveRecord is the persisted draft or running timer
type ActiveRecord struct {
	ID          string   `json:"id,omitempty"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"projectId,omitempty"`
	StartTime   *int64   `json:"startTime,omitempty"`
	IsBillable  *bool    `json:"isBillable,omitempty"`
	HourlyRate  *float64 `json:"hourlyRate,omitempty"`
}

// SelectionDocument is the persisted selection set
type SelectionDocument struct {
	IDs []string `json:"ids"`
}

// Record is a raw row of the kv table
type Record struct {
	Key       string
	Value     string
	UpdatedAt string
}
