package transport

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/shift-tracker/internal"
	"github.com/frahmantamala/shift-tracker/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteText writes a plain text response
func (h *BaseHandler) WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		h.Logger.Error("failed to write text response", "error", err)
	}
}

// WriteAttachment sends body as a downloadable file.
func (h *BaseHandler) WriteAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.Logger.Error("failed to write attachment", "filename", filename, "error", err)
	}
}

// WriteAppError logs the cause server-side and writes only the client facing part.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, r *http.Request, appErr *internal.AppError) {
	lg := logger.From(r.Context())
	attrs := []any{
		"status", appErr.StatusCode,
		"code", appErr.Code,
		"method", r.Method,
		"path", r.URL.Path,
	}
	if appErr.Cause != nil {
		attrs = append(attrs, "error", appErr.Cause)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		lg.ErrorContext(r.Context(), appErr.Message, attrs...)
	} else {
		lg.WarnContext(r.Context(), appErr.Message, attrs...)
	}

	status, body := appErr.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}
