package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"

	"safenotice/internal/auth"
)

// withChiURLParam attaches a chi route parameter to a request so handlers can
// be exercised outside the router.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeGoogle struct {
	authURL  func(state string) string
	exchange func(ctx context.Context, code string) (auth.TokenRecord, *auth.Identity, error)
}

func (f *fakeGoogle) AuthURL(state string) string {
	if f.authURL != nil {
		return f.authURL(state)
	}
	return "https://accounts.google.com/o/oauth2/v2/auth?state=" + state
}

func (f *fakeGoogle) Exchange(ctx context.Context, code string) (auth.TokenRecord, *auth.Identity, error) {
	if f.exchange != nil {
		return f.exchange(ctx, code)
	}
	return auth.TokenRecord{AccessToken: "at"}, nil, nil
}

func newTestNonceStore(t *testing.T) *auth.NonceStore {
	t.Helper()
	store, err := auth.NewNonceStore()
	if err != nil {
		t.Fatalf("failed to create nonce store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// googleTokenCookieFor serializes a record the way the cookie store does so
// tests can attach it to requests.
func googleTokenCookieFor(t *testing.T, rec auth.TokenRecord) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	NewCookieStore("development").SaveGoogleToken(w, rec)
	for _, c := range w.Result().Cookies() {
		if c.Name == googleTokenCookie {
			return &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}
	t.Fatal("token cookie was not written")
	return nil
}

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
