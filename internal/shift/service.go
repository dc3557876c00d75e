package shift

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/shift-tracker/internal"
	shiftDatamodel "github.com/frahmantamala/shift-tracker/internal/core/datamodel/shift"
	"github.com/frahmantamala/shift-tracker/internal/metrics"
	"github.com/shopspring/decimal"
)

type RepositoryAPI interface {
	Create(ctx context.Context, s *shiftDatamodel.Shift) error
	ListByUser(ctx context.Context, userID int64) ([]*shiftDatamodel.Shift, error)
}

// OwnerChecker decides whether the caller in ctx may act on a user's shifts.
type OwnerChecker interface {
	CheckOwner(ctx context.Context, ownerID int64) *internal.AppError
}

const (
	msgRecorded     = "Schicht erfolgreich hinzugefügt!"
	msgRecordFailed = "Fehler beim Hinzufügen der Schicht!"
	msgListFailed   = "Fehler beim Abrufen der Schichten!"
)

type Service struct {
	repo   RepositoryAPI
	owners OwnerChecker
	schema Schema
	logger *slog.Logger
	// Now supplies the current time; the hours schema dates a shift with today when datum is omitted.
	Now func() time.Time
	// Location decides which calendar day "today" is. It should match the export timezone.
	Location *time.Location
}

func NewService(repo RepositoryAPI, owners OwnerChecker, schema Schema, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if schema == "" {
		schema = SchemaItinerary
	}
	return &Service{
		repo:     repo,
		owners:   owners,
		schema:   schema,
		logger:   logger,
		Now:      time.Now,
		Location: time.Local,
	}
}

func (s *Service) Schema() Schema {
	return s.schema
}

// RecordShift validates a submission against the active schema and stores it.
func (s *Service) RecordShift(ctx context.Context, dto SubmitShiftDTO) (*Ack, *internal.AppError) {
	dto.Schema = s.schema
	dto.Normalize()

	if appErr := dto.Validate(); appErr != nil {
		s.logger.WarnContext(ctx, "shift submission rejected", "schema", s.schema, "details", appErr.GetDetailedMessage())
		return nil, appErr
	}

	userID, err := dto.OwnerID()
	if err != nil || userID <= 0 {
		return nil, internal.NewValidationFieldError("user_id", "user_id must be a positive integer", internal.ErrCodeInvalidUserID)
	}

	if s.owners != nil {
		if appErr := s.owners.CheckOwner(ctx, userID); appErr != nil {
			s.logger.WarnContext(ctx, "shift submission for another user denied", "user_id", userID)
			return nil, appErr
		}
	}

	record, appErr := s.toRecord(userID, dto)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "failed to insert shift", "user_id", userID, "error", err)
		return nil, internal.NewInternalError(msgRecordFailed, err)
	}

	metrics.ShiftsRecordedTotal.WithLabelValues(string(s.schema)).Inc()
	s.logger.InfoContext(ctx, "shift recorded", "shift_id", record.ID, "user_id", userID, "schema", s.schema)

	return &Ack{Message: msgRecorded}, nil
}

// ListShifts returns every shift of a user, newest first. An empty history is an empty slice.
func (s *Service) ListShifts(ctx context.Context, userID int64) ([]Shift, *internal.AppError) {
	if s.owners != nil {
		if appErr := s.owners.CheckOwner(ctx, userID); appErr != nil {
			s.logger.WarnContext(ctx, "shift history of another user denied", "user_id", userID)
			return nil, appErr
		}
	}

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list shifts", "user_id", userID, "error", err)
		return nil, internal.NewInternalError(msgListFailed, err)
	}

	shifts := make([]Shift, 0, len(rows))
	for _, row := range rows {
		shifts = append(shifts, FromDataModel(row))
	}
	return shifts, nil
}

func (s *Service) toRecord(userID int64, dto SubmitShiftDTO) (*shiftDatamodel.Shift, *internal.AppError) {
	record := &shiftDatamodel.Shift{
		UserID: userID,
		Schema: string(s.schema),
	}

	if dto.Datum != "" {
		datum, err := time.Parse(DateLayout, dto.Datum)
		if err != nil {
			return nil, internal.NewValidationFieldError("datum", "datum must match 2006-01-02", internal.ErrCodeInvalidFormat)
		}
		record.Datum = DateOf(datum)
	} else {
		record.Datum = DateOf(s.Now().In(s.Location))
	}

	switch s.schema {
	case SchemaHours:
		hours, err := decimal.NewFromString(string(dto.TotalHours))
		if err != nil {
			return nil, internal.NewValidationFieldError("total_hours", "total_hours must be numeric", internal.ErrCodeInvalidFormat)
		}
		record.TotalHours = decimal.NewNullDecimal(hours.Round(2))
	default:
		record.ShiftNumber = ptr(dto.ShiftNumber)
		record.Kunde = ptr(dto.Kunde)
		record.Auto = ptr(dto.Auto)
		record.StartTime = ptr(normalizeClock(dto.StartTime))
		record.EndTime = ptr(normalizeClock(dto.EndTime))
	}

	return record, nil
}

func normalizeClock(value string) string {
	if t, err := time.Parse("15:04", value); err == nil {
		return t.Format("15:04:05")
	}
	return value
}
