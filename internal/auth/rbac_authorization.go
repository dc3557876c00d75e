package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/internal/metrics"
	"github.com/frahmantamala/shift-tracker/internal/transport"
)

type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*Claims, error)
}

// Guard authenticates bearer credentials and enforces route capabilities.
type Guard struct {
	*transport.BaseHandler
	validator TokenValidator
}

func NewGuard(validator TokenValidator, logger *slog.Logger) *Guard {
	return &Guard{
		BaseHandler: transport.NewBaseHandler(logger),
		validator:   validator,
	}
}

// Authorize decodes the Authorization header value into an identity.
// A missing credential is a 401, a credential that fails verification a 403.
func (g *Guard) Authorize(header string) (*internal.Identity, *internal.AppError) {
	token := bearerToken(header)
	if token == "" {
		return nil, internal.ErrMissingToken
	}

	claims, err := g.validator.ValidateAccessToken(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, internal.ErrTokenExpired.WithCause(err)
		}
		return nil, internal.ErrInvalidToken.WithCause(err)
	}

	return claims.Identity(), nil
}

// Require returns middleware that admits requests holding the capability.
func (g *Guard) Require(capability Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if capability == CapabilityPublic {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, appErr := g.Authorize(r.Header.Get("Authorization"))
			if appErr != nil {
				metrics.AccessDeniedTotal.WithLabelValues(denyReason(appErr)).Inc()
				g.WriteAppError(w, r, appErr)
				return
			}

			if capability == CapabilityAdmin && !identity.IsAdmin() {
				metrics.AccessDeniedTotal.WithLabelValues("insufficient_role").Inc()
				g.Logger.WarnContext(r.Context(), "access denied: admin role required",
					"user_id", identity.UserID,
					"role", identity.Role,
					"path", r.URL.Path)
				g.WriteAppError(w, r, internal.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r.WithContext(internal.ContextWithIdentity(r.Context(), identity)))
		})
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func denyReason(appErr *internal.AppError) string {
	switch appErr.Code {
	case internal.ErrCodeMissingToken:
		return "missing_token"
	default:
		return "invalid_token"
	}
}
