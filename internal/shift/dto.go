package shift

import (
	"strconv"
	"strings"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/internal/core/common/validation"
)

const (
	msgMissingFields = "Alle Felder sind erforderlich!"
	msgInvalidFormat = "Ungültiges Format!"
)

// SubmitShiftDTO is the body of POST /add-shift. Schema is set by the service
// from configuration and selects which fields are required.
type SubmitShiftDTO struct {
	Schema      Schema              `json:"-"`
	UserID      internal.FlexString `json:"user_id" validate:"required,number"`
	ShiftNumber string              `json:"shift_number" validate:"required_if=Schema itinerary"`
	Kunde       string              `json:"kunde" validate:"required_if=Schema itinerary"`
	Auto        string              `json:"auto" validate:"required_if=Schema itinerary"`
	Datum       string              `json:"datum" validate:"required_if=Schema itinerary,omitempty,datetime=2006-01-02"`
	StartTime   string              `json:"start_time" validate:"required_if=Schema itinerary,omitempty,clock"`
	EndTime     string              `json:"end_time" validate:"required_if=Schema itinerary,omitempty,clock"`
	TotalHours  internal.FlexString `json:"total_hours" validate:"required_if=Schema hours,omitempty,numeric"`
}

// Normalize trims every text field so whitespace-only values count as missing.
func (d *SubmitShiftDTO) Normalize() {
	d.UserID = internal.FlexString(strings.TrimSpace(string(d.UserID)))
	d.ShiftNumber = strings.TrimSpace(d.ShiftNumber)
	d.Kunde = strings.TrimSpace(d.Kunde)
	d.Auto = strings.TrimSpace(d.Auto)
	d.Datum = strings.TrimSpace(d.Datum)
	d.StartTime = strings.TrimSpace(d.StartTime)
	d.EndTime = strings.TrimSpace(d.EndTime)
	d.TotalHours = internal.FlexString(strings.TrimSpace(string(d.TotalHours)))
}

// Validate reports missing fields first; format problems only when nothing is missing.
func (d *SubmitShiftDTO) Validate() *internal.AppError {
	appErr := validation.Struct(d, msgMissingFields, internal.ErrCodeMissingFields)
	if appErr == nil {
		return nil
	}
	if len(validation.MissingFields(appErr)) == 0 {
		appErr.Message = msgInvalidFormat
		appErr.Code = internal.ErrCodeInvalidFormat
	}
	return appErr
}

// OwnerID returns the numeric user id. Call after Validate.
func (d *SubmitShiftDTO) OwnerID() (int64, error) {
	return strconv.ParseInt(string(d.UserID), 10, 64)
}

// Ack is the success body of POST /add-shift.
type Ack struct {
	Message string `json:"message"`
}
