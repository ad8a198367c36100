package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"safenotice/internal/auth"
	"safenotice/internal/drive"
)

type fakeDrive struct {
	listPDFs  func(ctx context.Context, accessToken string) ([]drive.File, error)
	uploadPDF func(ctx context.Context, accessToken, name string, content io.Reader) (drive.File, error)
	delete    func(ctx context.Context, accessToken, fileID string) error
}

func (f *fakeDrive) ListPDFs(ctx context.Context, accessToken string) ([]drive.File, error) {
	return f.listPDFs(ctx, accessToken)
}

func (f *fakeDrive) UploadPDF(ctx context.Context, accessToken, name string, content io.Reader) (drive.File, error) {
	return f.uploadPDF(ctx, accessToken, name, content)
}

func (f *fakeDrive) Delete(ctx context.Context, accessToken, fileID string) error {
	return f.delete(ctx, accessToken, fileID)
}

type fakeTokenRefresher struct {
	ensureValid func(ctx context.Context, rec auth.TokenRecord) (auth.TokenRecord, bool, error)
}

func (f *fakeTokenRefresher) EnsureValid(ctx context.Context, rec auth.TokenRecord) (auth.TokenRecord, bool, error) {
	if f.ensureValid != nil {
		return f.ensureValid(ctx, rec)
	}
	return rec, false, nil
}

func validTokenCookie(t *testing.T) *http.Cookie {
	t.Helper()
	return googleTokenCookieFor(t, auth.TokenRecord{
		AccessToken: "fresh-access",
		ExpiryDate:  time.Now().Add(time.Hour).UnixMilli(),
	})
}

func TestPDFListPassesFreshAccessToken(t *testing.T) {
	var seenToken string
	driveClient := &fakeDrive{
		listPDFs: func(ctx context.Context, accessToken string) ([]drive.File, error) {
			seenToken = accessToken
			return []drive.File{{ID: "f1", Name: "notice.pdf"}}, nil
		},
	}
	handler := NewPDFHandler(driveClient, &fakeTokenRefresher{}, NewCookieStore("development"), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pdfs", nil)
	req.AddCookie(validTokenCookie(t))
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if seenToken != "fresh-access" {
		t.Fatalf("expected access token to reach the drive client, got %q", seenToken)
	}
}

func TestPDFListRefreshesAndPersistsToken(t *testing.T) {
	refreshed := auth.TokenRecord{
		AccessToken: "refreshed-access",
		ExpiryDate:  time.Now().Add(time.Hour).UnixMilli(),
	}
	refresher := &fakeTokenRefresher{
		ensureValid: func(ctx context.Context, rec auth.TokenRecord) (auth.TokenRecord, bool, error) {
			return refreshed, true, nil
		},
	}
	var seenToken string
	driveClient := &fakeDrive{
		listPDFs: func(ctx context.Context, accessToken string) ([]drive.File, error) {
			seenToken = accessToken
			return nil, nil
		},
	}
	handler := NewPDFHandler(driveClient, refresher, NewCookieStore("development"), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pdfs", nil)
	req.AddCookie(validTokenCookie(t))
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if seenToken != "refreshed-access" {
		t.Fatalf("expected the refreshed token at the drive client, got %q", seenToken)
	}

	cookie := responseCookie(t, rec, googleTokenCookie)
	if cookie == nil {
		t.Fatal("expected refreshed record to be written back to the cookie")
	}
	loadReq := httptest.NewRequest(http.MethodGet, "/", nil)
	loadReq.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	stored := NewCookieStore("development").LoadGoogleToken(loadReq)
	if stored == nil || stored.AccessToken != "refreshed-access" {
		t.Fatalf("persisted record does not hold the refreshed token: %+v", stored)
	}
}

func TestPDFListWithoutTokenCookie(t *testing.T) {
	handler := NewPDFHandler(&fakeDrive{}, &fakeTokenRefresher{}, NewCookieStore("development"), testLogger())

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/api/admin/pdfs", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestPDFListReauthRequiredClearsCookie(t *testing.T) {
	refresher := &fakeTokenRefresher{
		ensureValid: func(ctx context.Context, rec auth.TokenRecord) (auth.TokenRecord, bool, error) {
			return auth.TokenRecord{}, false, auth.ErrReauthRequired
		},
	}
	handler := NewPDFHandler(&fakeDrive{}, refresher, NewCookieStore("development"), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pdfs", nil)
	req.AddCookie(validTokenCookie(t))
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	cookie := responseCookie(t, rec, googleTokenCookie)
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Fatal("expected the stale token cookie to be cleared")
	}
}

func TestPDFListDriveUnavailable(t *testing.T) {
	handler := NewPDFHandler(nil, nil, NewCookieStore("development"), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pdfs", nil)
	req.AddCookie(validTokenCookie(t))
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestPDFUpload(t *testing.T) {
	driveClient := &fakeDrive{
		uploadPDF: func(ctx context.Context, accessToken, name string, content io.Reader) (drive.File, error) {
			if name != "notice.pdf" {
				t.Fatalf("unexpected upload name %q", name)
			}
			data, _ := io.ReadAll(content)
			if string(data) != "%PDF-1.7 test" {
				t.Fatalf("unexpected upload content %q", data)
			}
			return drive.File{ID: "new-id", Name: name}, nil
		},
	}
	handler := NewPDFHandler(driveClient, &fakeTokenRefresher{}, NewCookieStore("development"), testLogger())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "notice.pdf")
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	_, _ = part.Write([]byte("%PDF-1.7 test"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/pdfs", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(validTokenCookie(t))
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestPDFUploadRejectsNonPDF(t *testing.T) {
	handler := NewPDFHandler(&fakeDrive{}, &fakeTokenRefresher{}, NewCookieStore("development"), testLogger())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "malware.exe")
	_, _ = part.Write([]byte("MZ"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/pdfs", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(validTokenCookie(t))
	rec := httptest.NewRecorder()

	handler.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestPDFDeleteNotFound(t *testing.T) {
	driveClient := &fakeDrive{
		delete: func(ctx context.Context, accessToken, fileID string) error {
			return drive.ErrFileNotFound
		},
	}
	handler := NewPDFHandler(driveClient, &fakeTokenRefresher{}, NewCookieStore("development"), testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/pdfs/missing", nil)
	req.AddCookie(validTokenCookie(t))
	req = withChiURLParam(req, "id", "missing")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestPDFDelete(t *testing.T) {
	var deleted string
	driveClient := &fakeDrive{
		delete: func(ctx context.Context, accessToken, fileID string) error {
			deleted = fileID
			return nil
		},
	}
	handler := NewPDFHandler(driveClient, &fakeTokenRefresher{}, NewCookieStore("development"), testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/pdfs/f1", nil)
	req.AddCookie(validTokenCookie(t))
	req = withChiURLParam(req, "id", "f1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if deleted != "f1" {
		t.Fatalf("expected file f1 to be deleted, got %q", deleted)
	}
}

func TestPDFListDriveFailure(t *testing.T) {
	driveClient := &fakeDrive{
		listPDFs: func(ctx context.Context, accessToken string) ([]drive.File, error) {
			return nil, errors.New("drive unavailable")
		},
	}
	handler := NewPDFHandler(driveClient, &fakeTokenRefresher{}, NewCookieStore("development"), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/pdfs", nil)
	req.AddCookie(validTokenCookie(t))
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rec.Code)
	}
}
