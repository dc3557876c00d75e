package export

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/internal/metrics"
)

const (
	msgNoShifts     = "Keine Schichten für diesen Monat gefunden!"
	msgExportFailed = "Fehler beim Exportieren der Schichten!"
)

type Options struct {
	Filename  string
	SheetName string
	Location  *time.Location
}

type Service struct {
	repo   RepositoryAPI
	opts   Options
	logger *slog.Logger
	Now    func() time.Time
}

func NewService(repo RepositoryAPI, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Filename == "" {
		opts.Filename = "schichten.xlsx"
	}
	if opts.SheetName == "" {
		opts.SheetName = "Schichten"
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Service{
		repo:   repo,
		opts:   opts,
		logger: logger,
		Now:    time.Now,
	}
}

// ExportMonthly renders every shift of the current month into a spreadsheet. Only admins may call it.
func (s *Service) ExportMonthly(ctx context.Context, role internal.Role) (*Spreadsheet, *internal.AppError) {
	if role != internal.RoleAdmin {
		metrics.ExportsTotal.WithLabelValues("forbidden").Inc()
		return nil, internal.ErrInsufficientRole
	}

	from, to := MonthBounds(s.Now(), s.opts.Location)

	rows, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("error").Inc()
		s.logger.ErrorContext(ctx, "failed to load shifts for export", "from", from, "to", to, "error", err)
		return nil, internal.NewInternalError(msgExportFailed, err)
	}

	if len(rows) == 0 {
		metrics.ExportsTotal.WithLabelValues("empty").Inc()
		return nil, internal.NewNotFoundError(msgNoShifts, internal.ErrCodeNoShiftsThisMonth)
	}

	body, err := BuildWorkbook(s.opts.SheetName, rows)
	if err != nil {
		metrics.ExportsTotal.WithLabelValues("error").Inc()
		s.logger.ErrorContext(ctx, "failed to build export workbook", "rows", len(rows), "error", err)
		return nil, internal.NewInternalError(msgExportFailed, err)
	}

	metrics.ExportsTotal.WithLabelValues("success").Inc()
	metrics.ExportRows.Observe(float64(len(rows)))
	s.logger.InfoContext(ctx, "monthly export generated", "month", from.Format("2006-01"), "rows", len(rows), "bytes", len(body))

	return &Spreadsheet{
		Filename:    s.opts.Filename,
		ContentType: ContentTypeXLSX,
		Body:        body,
		Rows:        len(rows),
	}, nil
}
