package http

import (
	"errors"
	"net/http"

	"log/slog"

	"safenotice/internal/inquiry"
)

// InquiryHandler exposes the public contact form and the admin inquiry
// management endpoints.
type InquiryHandler struct {
	service *inquiry.Service
	logger  *slog.Logger
}

// NewInquiryHandler creates a handler.
func NewInquiryHandler(service *inquiry.Service, logger *slog.Logger) *InquiryHandler {
	return &InquiryHandler{service: service, logger: logger}
}

// Create records a public contact-form submission.
func (h *InquiryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
		Message string `json:"message"`
	}
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONDecodeError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), inquiry.CreateInput{
		Name:    payload.Name,
		Contact: payload.Contact,
		Message: payload.Message,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// List returns all inquiries for the admin dashboard.
func (h *InquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		logHandlerError(h.logger, r, err)
		writeError(w, http.StatusInternalServerError, "failed to list inquiries")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"inquiries": list})
}

// Answer records the admin reply to an inquiry.
func (h *InquiryHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var payload struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONDecodeError(w, err)
		return
	}

	answered, err := h.service.Answer(r.Context(), id, payload.Answer)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, answered)
}

// Delete removes an inquiry.
func (h *InquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InquiryHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, inquiry.ErrNotFound) {
		writeError(w, http.StatusNotFound, "inquiry not found")
		return
	}
	if errors.Is(err, inquiry.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logHandlerError(h.logger, r, err)
	writeError(w, http.StatusInternalServerError, "unexpected error")
}
