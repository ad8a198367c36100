package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"safenotice/internal/auth"
	"safenotice/internal/drive"
)

const maxPDFUploadBytes = 20 << 20 // 20 MiB

type driveAPI interface {
	ListPDFs(ctx context.Context, accessToken string) ([]drive.File, error)
	UploadPDF(ctx context.Context, accessToken, name string, content io.Reader) (drive.File, error)
	Delete(ctx context.Context, accessToken, fileID string) error
}

type tokenRefresher interface {
	EnsureValid(ctx context.Context, rec auth.TokenRecord) (auth.TokenRecord, bool, error)
}

// PDFHandler manages the notice PDFs stored in Google Drive. Every operation
// runs the token cookie through the refresher first, so the access token
// handed to Drive is always unexpired; a refreshed record is written back to
// the cookie in the same response.
type PDFHandler struct {
	drive     driveAPI
	refresher tokenRefresher
	cookies   *CookieStore
	logger    *slog.Logger
}

// NewPDFHandler creates a handler. drive may be nil when OAuth is not
// configured; the endpoints then answer 503.
func NewPDFHandler(drive driveAPI, refresher tokenRefresher, cookies *CookieStore, logger *slog.Logger) *PDFHandler {
	return &PDFHandler{drive: drive, refresher: refresher, cookies: cookies, logger: logger}
}

// List returns the PDFs in the notice folder.
func (h *PDFHandler) List(w http.ResponseWriter, r *http.Request) {
	token, ok := h.accessToken(w, r)
	if !ok {
		return
	}

	files, err := h.drive.ListPDFs(r.Context(), token)
	if err != nil {
		logHandlerError(h.logger, r, err)
		writeError(w, http.StatusBadGateway, "failed to list files from Google Drive")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

// Upload stores a new PDF in the notice folder.
func (h *PDFHandler) Upload(w http.ResponseWriter, r *http.Request) {
	token, ok := h.accessToken(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPDFUploadBytes)
	if err := r.ParseMultipartForm(maxPDFUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "PDF upload is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid upload")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "PDF file is required")
		return
	}
	defer func() { _ = file.Close() }()

	name := filepath.Base(header.Filename)
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		writeError(w, http.StatusBadRequest, "only PDF files are accepted")
		return
	}

	uploaded, err := h.drive.UploadPDF(r.Context(), token, name, file)
	if err != nil {
		logHandlerError(h.logger, r, err)
		writeError(w, http.StatusBadGateway, "failed to upload file to Google Drive")
		return
	}
	writeJSON(w, http.StatusCreated, uploaded)
}

// Delete removes a PDF from the notice folder.
func (h *PDFHandler) Delete(w http.ResponseWriter, r *http.Request) {
	token, ok := h.accessToken(w, r)
	if !ok {
		return
	}

	fileID := chi.URLParam(r, "id")
	if fileID == "" {
		writeError(w, http.StatusBadRequest, "file id is required")
		return
	}

	if err := h.drive.Delete(r.Context(), token, fileID); err != nil {
		if errors.Is(err, drive.ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		logHandlerError(h.logger, r, err)
		writeError(w, http.StatusBadGateway, "failed to delete file from Google Drive")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// accessToken produces a valid access token from the request's token cookie,
// refreshing and re-persisting it when needed. A false return means the
// response has already been written.
func (h *PDFHandler) accessToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	if h.drive == nil || h.refresher == nil {
		writeError(w, http.StatusServiceUnavailable, "Google Drive 연동이 설정되지 않았습니다.")
		return "", false
	}

	rec := h.cookies.LoadGoogleToken(r)
	if rec == nil {
		writeError(w, http.StatusUnauthorized, "Google 로그인이 필요합니다.")
		return "", false
	}

	valid, refreshed, err := h.refresher.EnsureValid(r.Context(), *rec)
	if err != nil {
		if errors.Is(err, auth.ErrReauthRequired) {
			// The stale credential is useless now; drop it so the
			// frontend falls back to the login flow.
			h.cookies.ClearGoogleToken(w)
			writeError(w, http.StatusUnauthorized, "Google 인증이 만료되었습니다. 다시 로그인해주세요.")
			return "", false
		}
		logHandlerError(h.logger, r, err)
		writeError(w, http.StatusInternalServerError, "token validation failed")
		return "", false
	}

	if refreshed {
		h.cookies.SaveGoogleToken(w, valid)
		h.logger.Info("google access token refreshed")
	}

	return valid.AccessToken, true
}
