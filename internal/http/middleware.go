package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"safenotice/internal/auth"
	"safenotice/internal/ratelimit"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func newSlogMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			duration := time.Since(start)
			logger.Info("http request", "method", r.Method, "path", r.URL.Path, "status", recorder.status, "duration", duration.String())
		})
	}
}

func newSecurityHeadersMiddleware(environment string) func(http.Handler) http.Handler {
	isDev := strings.EqualFold(environment, "development")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Permissions-Policy", "geolocation=(), camera=(), microphone=()")

			if !isDev {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminGuard gates admin surfaces. Two independent credentials authorize
// access: a valid admin session JWT (password login) or a structurally valid,
// unexpired Google token record. They are alternatives, not factors; the JWT
// is checked first and a positive answer short-circuits the Google check.
type AdminGuard struct {
	sessions *auth.SessionManager
	cookies  *CookieStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewAdminGuard creates a guard over the given credential sources.
func NewAdminGuard(sessions *auth.SessionManager, cookies *CookieStore, logger *slog.Logger) *AdminGuard {
	return &AdminGuard{sessions: sessions, cookies: cookies, logger: logger, now: time.Now}
}

// credential reports which credential authenticates the request: "admin",
// "google", or "" when neither verifies.
func (g *AdminGuard) credential(r *http.Request) string {
	if g.sessions != nil {
		if token := g.cookies.LoadAdminToken(r); token != "" {
			if err := g.sessions.Verify(token); err == nil {
				return "admin"
			}
		}
	}

	if rec := g.cookies.LoadGoogleToken(r); rec != nil && rec.Authenticated(g.now()) {
		return "google"
	}

	return ""
}

// RequireAPI denies unauthenticated API requests with a structured 401.
func (g *AdminGuard) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.credential(r) == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePage redirects unauthenticated page requests to the admin root,
// which renders its own login form. The root itself is never behind this
// guard; sending it here would loop.
func (g *AdminGuard) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.credential(r) == "" {
			http.Redirect(w, r, "/admin", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// newRateLimitMiddleware enforces an advisory per-IP request budget on the
// wrapped routes.
func newRateLimitMiddleware(limiter *ratelimit.Limiter, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := limiter.Allow(clientIPFromRequest(r), limit, window)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

			if !result.Allowed {
				retryAfter := int(result.RetryAfter.Seconds()) + 1
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				writeError(w, http.StatusTooManyRequests, fmt.Sprintf("too many requests, retry in %ds", retryAfter))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
