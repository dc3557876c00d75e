package export

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Row is one shift joined with the name and public identifier of its user.
type Row struct {
	Name        string              `db:"name"`
	UniqueID    string              `db:"unique_id"`
	Schema      string              `db:"schema"`
	ShiftNumber sql.NullString      `db:"shift_number"`
	Kunde       sql.NullString      `db:"kunde"`
	Auto        sql.NullString      `db:"auto"`
	Datum       time.Time           `db:"datum"`
	StartTime   sql.NullString      `db:"start_time"`
	EndTime     sql.NullString      `db:"end_time"`
	TotalHours  decimal.NullDecimal `db:"total_hours"`
}

// RepositoryAPI reads shifts dated in [from, to), newest first.
type RepositoryAPI interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]Row, error)
}

// Spreadsheet is a fully generated workbook ready to be sent.
type Spreadsheet struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// MonthBounds returns the first day of the month containing now (as seen in loc)
// and the first day of the following month, both as UTC midnight dates.
func MonthBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	from := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
