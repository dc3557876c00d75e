package export

import (
	"context"
	"net/http"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/internal/transport"
)

type ServiceAPI interface {
	ExportMonthly(ctx context.Context, role internal.Role) (*Spreadsheet, *internal.AppError)
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

// ExportMonthly handles GET /export
func (h *Handler) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	var role internal.Role
	if identity, ok := internal.IdentityFromContext(r.Context()); ok {
		role = identity.Role
	}

	ctx, cancel := internal.WithTimeout(r.Context(), 0)
	defer cancel()

	sheet, appErr := h.Service.ExportMonthly(ctx, role)
	if appErr != nil {
		h.WriteAppError(w, r, appErr)
		return
	}

	h.WriteAttachment(w, sheet.ContentType, sheet.Filename, sheet.Body)
}
