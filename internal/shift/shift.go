package shift

import (
	"fmt"
	"time"

	"github.com/frahmantamala/shift-tracker/internal/core/common/validation"
	shiftDatamodel "github.com/frahmantamala/shift-tracker/internal/core/datamodel/shift"
	"github.com/shopspring/decimal"
)

// Schema names the record shape a deployment accepts.
type Schema string

const (
	SchemaItinerary Schema = "itinerary"
	SchemaHours     Schema = "hours"
)

const DateLayout = "2006-01-02"

func ParseSchema(raw string) (Schema, error) {
	switch Schema(raw) {
	case SchemaItinerary, "":
		return SchemaItinerary, nil
	case SchemaHours:
		return SchemaHours, nil
	}
	return "", fmt.Errorf("unknown shift schema %q", raw)
}

// RequiredFields lists the json fields a submission must carry for the schema.
func (s Schema) RequiredFields() []string {
	if s == SchemaHours {
		return []string{"user_id", "total_hours"}
	}
	return []string{"user_id", "shift_number", "kunde", "auto", "datum", "start_time", "end_time"}
}

// Shift is the read model returned to clients.
type Shift struct {
	ID          int64            `json:"id"`
	UserID      int64            `json:"user_id"`
	Schema      Schema           `json:"schema"`
	ShiftNumber string           `json:"shift_number,omitempty"`
	Kunde       string           `json:"kunde,omitempty"`
	Auto        string           `json:"auto,omitempty"`
	Datum       string           `json:"datum"`
	StartTime   string           `json:"start_time,omitempty"`
	EndTime     string           `json:"end_time,omitempty"`
	TotalHours  *decimal.Decimal `json:"total_hours,omitempty"`
}

func FromDataModel(m *shiftDatamodel.Shift) Shift {
	s := Shift{
		ID:          m.ID,
		UserID:      m.UserID,
		Schema:      Schema(m.Schema),
		ShiftNumber: deref(m.ShiftNumber),
		Kunde:       deref(m.Kunde),
		Auto:        deref(m.Auto),
		Datum:       m.Datum.Format(DateLayout),
		StartTime:   FormatClock(deref(m.StartTime)),
		EndTime:     FormatClock(deref(m.EndTime)),
	}
	if m.TotalHours.Valid {
		hours := m.TotalHours.Decimal
		s.TotalHours = &hours
	}
	return s
}

// FormatClock renders a stored time of day as HH:MM. Unparseable input is returned as is.
func FormatClock(value string) string {
	if value == "" {
		return ""
	}
	t, ok := validation.ParseClock(value)
	if !ok {
		return value
	}
	return t.Format("15:04")
}

// DateOf truncates t to its calendar day, expressed as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string {
	return &s
}
