package handler

import (
	"encoding/json"
	"log/slog"
	"mime"
	"net/http"

	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/service"
)

const maxContactBody = 64 << 10

// ContactHandler accepts submissions from the public contact form.
type ContactHandler struct {
	contacts *service.ContactService
	logger   *slog.Logger
}

func NewContactHandler(contacts *service.ContactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger}
}

// HandleSubmit serves POST /Contact/Submit. The body is form-encoded, or
// JSON when the Content-Type says so. The reply is always JSON.
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)

	var in model.ContactInput
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			h.logger.Debug("decoding contact body", slog.String("error", err.Error()))
			writeJSON(w, http.StatusBadRequest, MessageResponse{
				Message: service.MsgValidationFailed,
				Errors:  []string{"The request body is not valid JSON."},
			})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, MessageResponse{
				Message: service.MsgValidationFailed,
				Errors:  []string{"The request body could not be read."},
			})
			return
		}
		in = bindContact(r)
	}

	if _, err := h.contacts.Submit(r.Context(), in); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: service.MsgContactReceived})
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}
