package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/internal/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// FindByUniqueID returns the single user owning the public identifier.
func (r *Repository) FindByUniqueID(ctx context.Context, uniqueID string) (*user.User, error) {
	var (
		u    user.User
		role string
	)
	query := `SELECT id, unique_id, name, role FROM users WHERE unique_id = ? LIMIT 1`

	row := r.db.WithContext(ctx).Raw(query, uniqueID).Row()
	if err := row.Scan(&u.ID, &u.UniqueID, &u.Name, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	u.Role = internal.Role(role)
	return &u, nil
}
