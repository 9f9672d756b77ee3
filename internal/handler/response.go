package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/service"
)

// MessageResponse is the body of every JSON response:
//
//	{"message": "Validation failed.", "errors": ["Name is required."]}
type MessageResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// writeJSON sets headers and status before the body; later header changes
// would be ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a service error to a status and a JSON body. Errors that
// are not *apperror.AppError become a generic 500; their text never reaches
// the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: service.MsgInternalError})
		return
	}

	switch {
	case errors.Is(err, apperror.ErrValidation):
		writeJSON(w, http.StatusBadRequest, MessageResponse{
			Message: service.MsgValidationFailed,
			Errors:  appErr.Messages(),
		})
	case errors.Is(err, apperror.ErrNotFound):
		writeJSON(w, http.StatusNotFound, MessageResponse{Message: appErr.Message})
	case errors.Is(err, apperror.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, MessageResponse{Message: appErr.Message})
	case errors.Is(err, apperror.ErrForbidden):
		writeJSON(w, http.StatusForbidden, MessageResponse{Message: appErr.Message})
	case errors.Is(err, apperror.ErrConflict):
		writeJSON(w, http.StatusConflict, MessageResponse{Message: appErr.Message})
	default:
		writeJSON(w, http.StatusInternalServerError, MessageResponse{Message: service.MsgInternalError})
	}
}
