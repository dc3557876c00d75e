package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/internal/metrics"
	"github.com/frahmantamala/shift-tracker/internal/user"
)

var (
	errUnknownID   = internal.NewUnauthorizedError("ID invalid!", internal.ErrCodeInvalidIdentifier)
	errLoginFailed = internal.NewInternalError("Fehler bei der Anmeldung!", nil)
)

// Service is the main auth service with dependencies
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	logger         *slog.Logger
}

// NewService creates a new auth service
func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

// Login exchanges a static identifier for a signed session credential.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, *internal.AppError) {
	if appErr := dto.Validate(); appErr != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_input").Inc()
		return nil, appErr
	}

	u, err := s.repo.FindByUniqueID(ctx, strings.TrimSpace(string(dto.ID)))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("unknown_id").Inc()
			s.logger.WarnContext(ctx, "login rejected: unknown identifier")
			return nil, errUnknownID
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.logger.ErrorContext(ctx, "login lookup failed", "error", err)
		return nil, errLoginFailed.WithCause(err)
	}

	token, expiresAt, err := s.tokenGenerator.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.logger.ErrorContext(ctx, "failed to sign access token", "user_id", u.ID, "error", err)
		return nil, errLoginFailed.WithCause(err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.InfoContext(ctx, "login succeeded", "user_id", u.ID, "role", u.Role, "expires_at", expiresAt)

	return &LoginResponse{
		Token: token,
		Name:  u.Name,
		Role:  u.Role,
	}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}
