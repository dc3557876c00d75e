package postgres

import (
	"context"
	"time"

	"github.com/frahmantamala/shift-tracker/internal/export"
	"github.com/jmoiron/sqlx"
)

const listBetweenQuery = `
SELECT u.name, u.unique_id, s.schema, s.shift_number, s.kunde, s.auto,
       s.datum, s.start_time, s.end_time, s.total_hours
FROM shifts s
JOIN users u ON u.id = s.user_id
WHERE s.datum >= ? AND s.datum < ?
ORDER BY s.datum DESC, s.id DESC`

type ExportRepository struct {
	db *sqlx.DB
}

func NewExportRepository(db *sqlx.DB) export.RepositoryAPI {
	return &ExportRepository{db: db}
}

func (r *ExportRepository) ListBetween(ctx context.Context, from, to time.Time) ([]export.Row, error) {
	rows := []export.Row{}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(listBetweenQuery), from, to); err != nil {
		return nil, err
	}
	return rows, nil
}
