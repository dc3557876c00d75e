package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/shift-tracker/internal"
)

type Repository interface {
	GetByUniqueID(ctx context.Context, uniqueID string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, u *User) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Ensure creates the user unless one with the same unique id exists.
// It reports whether a row was inserted.
func (s *Service) Ensure(ctx context.Context, uniqueID, name string, role internal.Role) (*User, bool, error) {
	u, err := NewUser(uniqueID, name, role)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetByUniqueID(ctx, u.UniqueID)
	switch {
	case err == nil:
		s.logger.Debug("user already present", "unique_id", u.UniqueID, "user_id", existing.ID)
		return existing, false, nil
	case !errors.Is(err, ErrNotFound):
		return nil, false, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	s.logger.Info("user created", "unique_id", u.UniqueID, "user_id", u.ID, "role", u.Role)
	return u, true, nil
}
