package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"safenotice/internal/exporter"
	"safenotice/internal/safety"
)

// SafetyHandler exposes the safety-equipment catalogue and the item-request
// workflow: public browsing and submission, admin management and CSV export.
type SafetyHandler struct {
	service  *safety.Service
	exporter *exporter.RequestCSVExporter
	logger   *slog.Logger
}

// NewSafetyHandler creates a handler.
func NewSafetyHandler(service *safety.Service, exporter *exporter.RequestCSVExporter, logger *slog.Logger) *SafetyHandler {
	return &SafetyHandler{service: service, exporter: exporter, logger: logger}
}

// ListItems returns the public equipment catalogue.
func (h *SafetyHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		logHandlerError(h.logger, r, err)
		writeError(w, http.StatusInternalServerError, "failed to list safety items")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

type safetyItemPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// CreateItem adds a catalogue entry.
func (h *SafetyHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var payload safetyItemPayload
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONDecodeError(w, err)
		return
	}

	created, err := h.service.CreateItem(r.Context(), safety.ItemInput{
		Name:        payload.Name,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateItem modifies a catalogue entry.
func (h *SafetyHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var payload safetyItemPayload
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONDecodeError(w, err)
		return
	}

	updated, err := h.service.UpdateItem(r.Context(), id, safety.ItemInput{
		Name:        payload.Name,
		Description: payload.Description,
		ImageURL:    payload.ImageURL,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteItem removes a catalogue entry.
func (h *SafetyHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateRequest records a public item request.
func (h *SafetyHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ItemID     uuid.UUID `json:"itemId"`
		Requester  string    `json:"requester"`
		Department string    `json:"department"`
		Quantity   int       `json:"quantity"`
		Note       string    `json:"note"`
	}
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONDecodeError(w, err)
		return
	}

	created, err := h.service.CreateRequest(r.Context(), safety.RequestInput{
		ItemID:     payload.ItemID,
		Requester:  payload.Requester,
		Department: payload.Department,
		Quantity:   payload.Quantity,
		Note:       payload.Note,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListRequests returns item requests for the admin dashboard.
func (h *SafetyHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := safety.RequestFilter{}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := safety.RequestStatus(raw)
		if !safety.ValidStatus(status) {
			writeError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		filter.Status = &status
	}

	list, err := h.service.ListRequests(r.Context(), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": list})
}

// UpdateRequestStatus moves a request to a new workflow status.
func (h *SafetyHandler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONDecodeError(w, err)
		return
	}

	updated, err := h.service.UpdateRequestStatus(r.Context(), id, safety.RequestStatus(payload.Status))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ExportRequests streams the request list as a CSV download.
func (h *SafetyHandler) ExportRequests(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListRequests(r.Context(), safety.RequestFilter{})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	filename := fmt.Sprintf("item-requests-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.exporter.Export(w, list); err != nil {
		logHandlerError(h.logger, r, err)
	}
}

func (h *SafetyHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, safety.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if errors.Is(err, safety.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logHandlerError(h.logger, r, err)
	writeError(w, http.StatusInternalServerError, "unexpected error")
}
