package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"safenotice/internal/auth"
)

// Cookie names are part of the deployed contract; renaming them logs every
// admin out.
const (
	googleTokenCookie = "google_token"
	adminTokenCookie  = "admin_token"

	googleTokenTTL = 30 * 24 * time.Hour
)

// CookieStore persists credentials in HTTP-only cookies. The Google token
// cookie is SameSite=Lax so it survives the top-level redirect back from the
// provider; the admin session cookie never crosses sites and stays Strict.
type CookieStore struct {
	secure bool
}

// NewCookieStore creates a store; cookies are marked Secure outside development.
func NewCookieStore(env string) *CookieStore {
	return &CookieStore{secure: !strings.EqualFold(env, "development")}
}

// SaveGoogleToken writes the token record cookie. The JSON payload is
// base64-encoded because raw JSON contains characters SetCookie strips.
func (s *CookieStore) SaveGoogleToken(w http.ResponseWriter, rec auth.TokenRecord) {
	payload, _ := json.Marshal(rec)
	http.SetCookie(w, &http.Cookie{
		Name:     googleTokenCookie,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(googleTokenTTL.Seconds()),
	})
}

// LoadGoogleToken reads and validates the token record cookie. It returns nil
// on a missing or malformed cookie; cookie problems mean "not authenticated",
// never an error the caller has to handle.
func (s *CookieStore) LoadGoogleToken(r *http.Request) *auth.TokenRecord {
	cookie, err := r.Cookie(googleTokenCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	rec, err := auth.ParseTokenRecord(payload)
	if err != nil {
		return nil
	}
	return &rec
}

// ClearGoogleToken expires the token record cookie.
func (s *CookieStore) ClearGoogleToken(w http.ResponseWriter) {
	s.clear(w, googleTokenCookie, http.SameSiteLaxMode)
}

// SaveAdminToken writes the admin session cookie.
func (s *CookieStore) SaveAdminToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.AdminSessionTTL.Seconds()),
	})
}

// LoadAdminToken reads the admin session cookie, or "" when absent.
func (s *CookieStore) LoadAdminToken(r *http.Request) string {
	cookie, err := r.Cookie(adminTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ClearAdminToken expires the admin session cookie.
func (s *CookieStore) ClearAdminToken(w http.ResponseWriter) {
	s.clear(w, adminTokenCookie, http.SameSiteStrictMode)
}

func (s *CookieStore) clear(w http.ResponseWriter, name string, sameSite http.SameSite) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
