package shift

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	RecordShift(ctx context.Context, dto SubmitShiftDTO) (*Ack, *internal.AppError)
	ListShifts(ctx context.Context, userID int64) ([]Shift, *internal.AppError)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// RecordShift handles POST /add-shift
func (h *Handler) RecordShift(w http.ResponseWriter, r *http.Request) {
	var dto SubmitShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteAppError(w, r, internal.NewValidationError(msgMissingFields, internal.ErrCodeInvalidBody).WithCause(err))
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	ack, appErr := h.Service.RecordShift(ctx, dto)
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, ack)
}

// ListShifts handles GET /shifts/{user_id}
func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil || userID <= 0 {
		h.WriteAppError(w, r, internal.NewValidationFieldError("user_id", "user_id must be a positive integer", internal.ErrCodeInvalidUserID))
		return
	}

	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	shifts, appErr := h.Service.ListShifts(ctx, userID)
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, shifts)
}
