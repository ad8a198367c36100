package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func newTestGoogleClient(tokenURL string) *GoogleClient {
	return &GoogleClient{
		config: &oauth2.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "https://notice.example.com/auth/callback",
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/auth",
				TokenURL: tokenURL,
			},
			Scopes: driveScopes,
		},
	}
}

func TestAuthURLCarriesStateAndOfflineAccess(t *testing.T) {
	client := newTestGoogleClient("https://oauth2.googleapis.com/token")

	rawURL := client.AuthURL("encoded-state")
	parsed, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("AuthURL produced invalid URL: %v", err)
	}

	query := parsed.Query()
	if got := query.Get("state"); got != "encoded-state" {
		t.Fatalf("state = %q, want unmodified pass-through", got)
	}
	if got := query.Get("access_type"); got != "offline" {
		t.Fatalf("access_type = %q, want offline", got)
	}
	if got := query.Get("prompt"); got != "consent" {
		t.Fatalf("prompt = %q, want consent", got)
	}
	if got := query.Get("redirect_uri"); got != "https://notice.example.com/auth/callback" {
		t.Fatalf("redirect_uri = %q", got)
	}
	if !strings.Contains(query.Get("scope"), "drive.file") {
		t.Fatalf("scope missing drive.file: %q", query.Get("scope"))
	}
}

func TestAuthURLIsDeterministic(t *testing.T) {
	client := newTestGoogleClient("https://oauth2.googleapis.com/token")
	if client.AuthURL("s") != client.AuthURL("s") {
		t.Fatal("AuthURL must be deterministic for a fixed state")
	}
}

func TestExchangeReturnsTokenRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"access_token": "at",
			"refresh_token": "rt",
			"token_type": "Bearer",
			"expires_in": 3600,
			"scope": "https://www.googleapis.com/auth/drive.file"
		}`))
	}))
	defer server.Close()

	client := newTestGoogleClient(server.URL)
	rec, ident, err := client.Exchange(context.Background(), "auth-code")
	if err != nil {
		t.Fatalf("Exchange returned error: %v", err)
	}
	if rec.AccessToken != "at" || rec.RefreshToken != "rt" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.ExpiryDate == 0 {
		t.Fatal("expected expiry to be populated from expires_in")
	}
	if rec.Scope != "https://www.googleapis.com/auth/drive.file" {
		t.Fatalf("unexpected scope: %q", rec.Scope)
	}
	if ident != nil {
		t.Fatal("no verifier configured, identity should be nil")
	}
}

func TestExchangeClassifiesProviderErrors(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantKind ExchangeKind
	}{
		{"invalid client", `{"error":"invalid_client"}`, ExchangeInvalidClient},
		{"expired code", `{"error":"invalid_grant"}`, ExchangeExpiredCode},
		{"redirect mismatch", `{"error":"redirect_uri_mismatch"}`, ExchangeRedirectMismatch},
		{"unknown", `{"error":"server_error"}`, ExchangeUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := newTestGoogleClient(server.URL)
			_, _, err := client.Exchange(context.Background(), "auth-code")
			if err == nil {
				t.Fatal("expected exchange error")
			}

			var exchangeErr *ExchangeError
			if !errors.As(err, &exchangeErr) {
				t.Fatalf("expected ExchangeError, got %T: %v", err, err)
			}
			if exchangeErr.Kind != tc.wantKind {
				t.Fatalf("kind = %s, want %s", exchangeErr.Kind, tc.wantKind)
			}
		})
	}
}

func TestRefreshKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"new-at","token_type":"Bearer","expires_in":3600}`))
	}))
	defer server.Close()

	client := newTestGoogleClient(server.URL)
	rec := TokenRecord{AccessToken: "old-at", RefreshToken: "rt", Scope: "drive"}

	refreshed, err := client.Refresh(context.Background(), rec)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if refreshed.AccessToken != "new-at" {
		t.Fatalf("access token = %q", refreshed.AccessToken)
	}
	if refreshed.RefreshToken != "rt" {
		t.Fatal("refresh token must survive a non-rotating refresh")
	}
	if refreshed.Scope != "drive" {
		t.Fatal("scope must be carried over when the response omits it")
	}
}

func TestRefreshFailureIsReauthRequired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	client := newTestGoogleClient(server.URL)
	_, err := client.Refresh(context.Background(), TokenRecord{AccessToken: "at", RefreshToken: "revoked"})
	if !errors.Is(err, ErrReauthRequired) {
		t.Fatalf("expected ErrReauthRequired, got %v", err)
	}
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	client := newTestGoogleClient("https://oauth2.googleapis.com/token")
	_, err := client.Refresh(context.Background(), TokenRecord{AccessToken: "at"})
	if !errors.Is(err, ErrReauthRequired) {
		t.Fatalf("expected ErrReauthRequired, got %v", err)
	}
}
