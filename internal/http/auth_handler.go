package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"log/slog"

	"safenotice/internal/auth"
)

// isValidRedirectPath validates that a path is a safe relative redirect.
// It prevents open redirect attacks by ensuring the path:
// - Starts with a single "/" (not "//")
// - Has no scheme or host component
// - Cannot be bypassed via URL encoding
func isValidRedirectPath(path string) bool {
	if path == "" {
		return false
	}

	// Decode to catch encoded bypass attempts like /%2f%2f
	decoded, err := url.QueryUnescape(path)
	if err != nil {
		return false
	}

	if !strings.HasPrefix(decoded, "/") || strings.HasPrefix(decoded, "//") {
		return false
	}

	parsed, err := url.Parse(decoded)
	if err != nil {
		return false
	}

	if parsed.Scheme != "" || parsed.Host != "" {
		return false
	}

	return true
}

type googleOAuth interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (auth.TokenRecord, *auth.Identity, error)
}

// AuthHandler implements the authentication endpoints: the Google OAuth
// initiation and callback pair, the password login, logout, and the status
// probe the frontend polls.
type AuthHandler struct {
	google        googleOAuth // nil when OAuth is not configured
	sessions      *auth.SessionManager
	cookies       *CookieStore
	nonces        *auth.NonceStore
	adminPassword string
	logger        *slog.Logger
	now           func() time.Time
}

// NewAuthHandler creates an AuthHandler. google may be nil in deployments
// without OAuth configuration; the OAuth endpoints then fail closed with 500.
func NewAuthHandler(google googleOAuth, sessions *auth.SessionManager, cookies *CookieStore, nonces *auth.NonceStore, adminPassword string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		google:        google,
		sessions:      sessions,
		cookies:       cookies,
		nonces:        nonces,
		adminPassword: strings.TrimSpace(adminPassword),
		logger:        logger,
		now:           time.Now,
	}
}

// Start handles GET /auth/start?returnPath=<path>.
// It responds with the provider consent URL carrying a stateless state
// payload. No cookie is involved; the state itself holds everything the
// callback needs to validate the round-trip.
func (h *AuthHandler) Start(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		h.logger.Error("oauth start: google oauth is not configured")
		writeError(w, http.StatusInternalServerError, "서버 설정 오류")
		return
	}

	returnPath := "/"
	if raw := r.URL.Query().Get("returnPath"); raw != "" && isValidRedirectPath(raw) {
		returnPath = raw
	}

	state, err := auth.NewState(returnPath)
	if err != nil {
		h.logger.Error("oauth start: failed to generate state", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to initiate authentication")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authUrl": h.google.AuthURL(auth.EncodeState(state)),
	})
}

// Callback handles GET /auth/callback?code=<code>&state=<state>.
// It validates the state (decode, freshness window, single-use nonce),
// exchanges the code for tokens, persists them in the token cookie, and
// redirects back to the state's return path.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		h.logger.Error("oauth callback: google oauth is not configured")
		writeError(w, http.StatusInternalServerError, "서버 설정 오류")
		return
	}

	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		h.logger.Warn("oauth callback: provider error", "error", errParam, "description", query.Get("error_description"))
		writeError(w, http.StatusBadRequest, "인증이 취소되었거나 거부되었습니다.")
		return
	}

	code := query.Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "authorization code is missing")
		return
	}

	stateParam := query.Get("state")
	if stateParam == "" {
		writeError(w, http.StatusBadRequest, "state parameter is missing")
		return
	}

	state, err := auth.DecodeState(stateParam)
	if err != nil {
		h.logger.Warn("oauth callback: invalid state", "error", err)
		writeError(w, http.StatusBadRequest, "invalid state format")
		return
	}

	if state.ExpiredAt(h.now()) {
		h.logger.Warn("oauth callback: state outside acceptance window")
		writeError(w, http.StatusBadRequest, "state expired, please try again")
		return
	}

	if h.nonces != nil {
		firstUse, err := h.nonces.Consume(state.Nonce, auth.StateTTL)
		if err != nil {
			h.logger.Error("oauth callback: nonce store failure", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to complete authentication")
			return
		}
		if !firstUse {
			h.logger.Warn("oauth callback: state replayed")
			writeError(w, http.StatusBadRequest, "state already used, please try again")
			return
		}
	}

	record, identity, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.handleExchangeError(w, r, err)
		return
	}

	h.cookies.SaveGoogleToken(w, record)

	if identity != nil {
		h.logger.Info("google login successful", "email", identity.Email)
	} else {
		h.logger.Info("google login successful")
	}

	returnPath := "/"
	if isValidRedirectPath(state.ReturnPath) {
		returnPath = state.ReturnPath
	}
	http.Redirect(w, r, returnPath, http.StatusFound)
}

func (h *AuthHandler) handleExchangeError(w http.ResponseWriter, r *http.Request, err error) {
	var exchangeErr *auth.ExchangeError
	if !errors.As(err, &exchangeErr) {
		logHandlerError(h.logger, r, err)
		writeError(w, http.StatusInternalServerError, "failed to complete authentication")
		return
	}

	// Full provider detail stays in the server log; the client gets a
	// human-readable classification only.
	h.logger.Error("oauth callback: exchange failed", "kind", string(exchangeErr.Kind), "error", exchangeErr.Err)

	switch exchangeErr.Kind {
	case auth.ExchangeExpiredCode:
		writeError(w, http.StatusBadRequest, "인증 코드가 만료되었거나 유효하지 않습니다. 다시 시도해주세요.")
	case auth.ExchangeInvalidClient, auth.ExchangeRedirectMismatch:
		writeError(w, http.StatusInternalServerError, "서버 설정 오류")
	default:
		writeError(w, http.StatusInternalServerError, "failed to complete authentication")
	}
}

// Login handles POST /auth/login with body {"password": "..."}.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.adminPassword == "" || h.sessions == nil || !h.sessions.Configured() {
		h.logger.Error("login: admin password auth is not configured")
		writeError(w, http.StatusInternalServerError, "서버 설정 오류")
		return
	}

	var payload struct {
		Password string `json:"password"`
	}
	if err := decodeJSONBody(w, r, &payload); err != nil {
		writeJSONDecodeError(w, err)
		return
	}

	if subtle.ConstantTimeCompare([]byte(payload.Password), []byte(h.adminPassword)) != 1 {
		h.logger.Warn("login: wrong password", "ip", clientIPFromRequest(r))
		writeError(w, http.StatusUnauthorized, "비밀번호가 올바르지 않습니다.")
		return
	}

	token, err := h.sessions.Issue()
	if err != nil {
		logHandlerError(h.logger, r, err)
		writeError(w, http.StatusInternalServerError, "로그인 처리 중 오류가 발생했습니다.")
		return
	}

	h.cookies.SaveAdminToken(w, token)
	h.logger.Info("admin password login successful", "ip", clientIPFromRequest(r))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Logout handles POST /auth/logout. It clears both credential cookies and is
// idempotent: logging out twice reports success both times.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.cookies.ClearGoogleToken(w)
	h.cookies.ClearAdminToken(w)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Status handles GET /auth/status. It applies the same credential precedence
// as the admin guard so the frontend and the middleware never disagree about
// authentication state.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	if h.sessions != nil {
		if token := h.cookies.LoadAdminToken(r); token != "" {
			if err := h.sessions.Verify(token); err == nil {
				writeJSON(w, http.StatusOK, map[string]any{"isAuthenticated": true})
				return
			}
		}
	}

	if rec := h.cookies.LoadGoogleToken(r); rec != nil && rec.Authenticated(h.now()) {
		writeJSON(w, http.StatusOK, map[string]any{
			"isAuthenticated": true,
			"hasAccessToken":  true,
			"hasRefreshToken": rec.RefreshToken != "",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"isAuthenticated": false})
}
