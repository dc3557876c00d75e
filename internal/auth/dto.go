package auth

import (
	"strings"

	"github.com/frahmantamala/shift-tracker/internal"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	ID internal.FlexString `json:"id"`
}

// Validate checks that an identifier was supplied.
func (d LoginDTO) Validate() *internal.AppError {
	if strings.TrimSpace(string(d.ID)) == "" {
		return internal.NewValidationError("ID ist erforderlich!", internal.ErrCodeMissingID).
			WithDetails(internal.ValidationErrors{Errors: []internal.ValidationError{
				{Field: "id", Message: "id is required", Code: string(internal.ErrCodeMissingFields)},
			}})
	}
	return nil
}

// LoginResponse is returned to the client after a successful login.
type LoginResponse struct {
	Token string        `json:"token"`
	Name  string        `json:"name"`
	Role  internal.Role `json:"role"`
}
