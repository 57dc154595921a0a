package validation

import (
	"strings"
	"testing"
	"time"
)

func TestTimeEntryValidator_ValidateManualRange(t *testing.T) {
	validator := NewTimeEntryValidator()

	tests := []struct {
		name        string
		from        string
		to          string
		expectError bool
		errorField  string
	}{
		{"Valid range", "09:00", "10:30", false, ""},
		{"Crossing midnight is allowed", "23:00", "01:00", false, ""},
		{"Equal times are allowed", "09:00", "09:00", false, ""},
		{"Missing from", "", "10:00", true, "from"},
		{"Bad to format", "09:00", "10am", true, "to"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateManualRange(tt.from, tt.to)

			if tt.expectError {
				if err == nil {
					t.Fatalf("ValidateManualRange(%q, %q) expected error", tt.from, tt.to)
				}
				ve, ok := AsValidationError(err)
				if !ok {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if !hasFieldError(ve, tt.errorField) {
					t.Errorf("expected error on field %s, got %v", tt.errorField, ve)
				}
			} else if err != nil {
				t.Errorf("ValidateManualRange(%q, %q) unexpected error: %v", tt.from, tt.to, err)
			}
		})
	}
}

func TestTimeEntryValidator_ValidateTimeUpdate(t *testing.T) {
	validator := NewTimeEntryValidator()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	if err := validator.ValidateTimeUpdate("e1", start, &end); err != nil {
		t.Errorf("valid update rejected: %v", err)
	}
	if err := validator.ValidateTimeUpdate("e1", start, nil); err != nil {
		t.Errorf("update without end rejected: %v", err)
	}

	err := validator.ValidateTimeUpdate("e1", end, &start)
	if err == nil || !strings.Contains(err.Error(), "end time must be after start time") {
		t.Errorf("reversed range should be rejected, got %v", err)
	}

	err = validator.ValidateTimeUpdate("e1", start, &start)
	if err == nil {
		t.Errorf("start equal to end should be rejected")
	}

	err = validator.ValidateTimeUpdate("", start, &end)
	if err == nil || !strings.Contains(err.Error(), "entry_id") {
		t.Errorf("missing id should be rejected, got %v", err)
	}
}

func TestTimeEntryValidator_ValidateDescription(t *testing.T) {
	validator := NewTimeEntryValidator()

	if err := validator.ValidateDescription(""); err != nil {
		t.Errorf("empty description should be allowed: %v", err)
	}
	if err := validator.ValidateDescription(strings.Repeat("x", 501)); err == nil {
		t.Errorf("overlong description should be rejected")
	}
}

func TestTimeEntryValidator_ValidateEntryID(t *testing.T) {
	validator := NewTimeEntryValidator()

	if err := validator.ValidateEntryID("abc"); err != nil {
		t.Errorf("valid id rejected: %v", err)
	}
	if err := validator.ValidateEntryID("  "); err == nil {
		t.Errorf("blank id accepted")
	}
}
