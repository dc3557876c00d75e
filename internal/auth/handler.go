package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/internal/transport"
	"github.com/frahmantamala/shift-tracker/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteAppError(w, r, internal.NewValidationError("ID ist erforderlich!", internal.ErrCodeInvalidBody).WithCause(err))
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	resp, appErr := h.Service.Login(ctx, dto)
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}
