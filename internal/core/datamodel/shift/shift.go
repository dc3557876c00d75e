package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shift is one row of the shifts table. Columns belonging to the schema
// the row was not recorded with stay NULL.
type Shift struct {
	ID          int64               `gorm:"primaryKey"`
	UserID      int64               `gorm:"column:user_id;not null;index"`
	Schema      string              `gorm:"column:schema;not null"`
	ShiftNumber *string             `gorm:"column:shift_number"`
	Kunde       *string             `gorm:"column:kunde"`
	Auto        *string             `gorm:"column:auto"`
	Datum       time.Time           `gorm:"column:datum;type:date;not null;index"`
	StartTime   *string             `gorm:"column:start_time;type:time"`
	EndTime     *string             `gorm:"column:end_time;type:time"`
	TotalHours  decimal.NullDecimal `gorm:"column:total_hours;type:numeric(6,2)"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
}

func (Shift) TableName() string {
	return "shifts"
}
