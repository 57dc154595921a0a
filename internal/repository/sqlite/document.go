package sqlite

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptDocument marks a stored blob that could not be decoded.
var ErrCorruptDocument = errors.New("stored document is corrupt")

// DocumentDefaults are the values backfilled into documents written before
// a field existed.
type DocumentDefaults struct {
	HourlyRate float64
	Currency   string
	ThemeMode  string
}

// EncodeState serializes a state document.
func EncodeState(doc StateDocument) (string, error) {
	if doc.Entries == nil {
		doc.Entries = []EntryRecord{}
	}
	if doc.Projects == nil {
		doc.Projects = []ProjectRecord{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return string(data), nil
}

// DecodeState parses a stored blob and backfills fields by presence, not by
// a version number.
func DecodeState(blob string, defaults DocumentDefaults) (*StateDocument, error) {
	var doc StateDocument
	if err := json.Unmarshal([]byte(blob), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	backfill(&doc, defaults)
	return &doc, nil
}

func backfill(doc *StateDocument, defaults DocumentDefaults) {
	if doc.Entries == nil {
		doc.Entries = []EntryRecord{}
	}
	if doc.Projects == nil {
		doc.Projects = []ProjectRecord{}
	}
	if doc.PreferredCurrency == "" {
		doc.PreferredCurrency = defaults.Currency
	}
	if doc.ThemeMode == "" {
		doc.ThemeMode = defaults.ThemeMode
	}
	if doc.DefaultHourlyRate == nil {
		rate := defaults.HourlyRate
		doc.DefaultHourlyRate = &rate
	}
}

// EncodeSelection serializes a selection document.
func EncodeSelection(doc SelectionDocument) (string, error) {
	if doc.IDs == nil {
		doc.IDs = []string{}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode selection: %w", err)
	}
	return string(data), nil
}

// DecodeSelection parses a stored selection blob.
func DecodeSelection(blob string) (*SelectionDocument, error) {
	var doc SelectionDocument
	if err := json.Unmarshal([]byte(blob), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return &doc, nil
}
