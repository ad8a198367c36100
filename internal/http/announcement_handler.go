package http

import (
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"safenotice/internal/announce"
)

// AnnouncementHandler exposes the public board listing and the admin CRUD
// endpoints for announcements.
type AnnouncementHandler struct {
	service *announce.Service
	logger  *slog.Logger
}

// NewAnnouncementHandler creates a handler.
func NewAnnouncementHandler(service *announce.Service, logger *slog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{service: service, logger: logger}
}

// List returns announcements for the public board.
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = value
	}

	list, err := h.service.List(r.Context(), limit)
	if err != nil {
		logHandlerError(h.logger, r, err)
		writeError(w, http.StatusInternalServerError, "failed to list announcements")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"announcements": list})
}

type announcementPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Pinned  bool   `json:"pinned"`
}

// Create stores a new announcement.
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload announcementPayload
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONDecodeError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), announce.CreateInput{
		Title:   payload.Title,
		Content: payload.Content,
		Pinned:  payload.Pinned,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update modifies an existing announcement.
func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "id")
	if !ok {
		return
	}

	var payload announcementPayload
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONDecodeError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, announce.UpdateInput{
		Title:   payload.Title,
		Content: payload.Content,
		Pinned:  payload.Pinned,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes an announcement.
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *AnnouncementHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, announce.ErrNotFound) {
		writeError(w, http.StatusNotFound, "announcement not found")
		return
	}
	if errors.Is(err, announce.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logHandlerError(h.logger, r, err)
	writeError(w, http.StatusInternalServerError, "unexpected error")
}
