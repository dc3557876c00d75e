package postgres

import (
	"context"

	shiftDatamodel "github.com/frahmantamala/shift-tracker/internal/core/datamodel/shift"
	"github.com/frahmantamala/shift-tracker/internal/shift"
	"gorm.io/gorm"
)

type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) shift.RepositoryAPI {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Create(ctx context.Context, s *shiftDatamodel.Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ShiftRepository) ListByUser(ctx context.Context, userID int64) ([]*shiftDatamodel.Shift, error) {
	var shifts []*shiftDatamodel.Shift
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("datum DESC").
		Order("id DESC").
		Find(&shifts).Error
	return shifts, err
}
