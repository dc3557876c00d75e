package auth

import (
	"context"
	"time"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/internal/user"
)

type ServiceAPI interface {
	Login(ctx context.Context, dto LoginDTO) (*LoginResponse, *internal.AppError)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

// RepositoryAPI resolves a public identifier to the user it belongs to.
// It returns user.ErrNotFound when no row matches.
type RepositoryAPI interface {
	FindByUniqueID(ctx context.Context, uniqueID string) (*user.User, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(userID int64, role internal.Role) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}
