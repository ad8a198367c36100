package http

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"safenotice/internal/config"
	"safenotice/internal/ratelimit"
)

// Per-IP budgets for the endpoints that accept anonymous writes.
const (
	loginRateLimit    = 10
	loginRateWindow   = time.Minute
	contactRateLimit  = 5
	contactRateWindow = time.Minute
)

// RouterDeps carries the constructed handlers and shared infrastructure the
// router wires together.
type RouterDeps struct {
	Config        config.Config
	Auth          *AuthHandler
	Guard         *AdminGuard
	Announcements *AnnouncementHandler
	Safety        *SafetyHandler
	Inquiries     *InquiryHandler
	PDFs          *PDFHandler
	Limiter       *ratelimit.Limiter
	Logger        *slog.Logger
}

// NewRouter wires application routes and middleware using chi.
func NewRouter(deps RouterDeps) http.Handler {
	cfg := deps.Config
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(newSecurityHeadersMiddleware(cfg.Environment))
	r.Use(newSlogMiddleware(deps.Logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"environment": cfg.Environment,
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Get("/start", deps.Auth.Start)
		r.Get("/callback", deps.Auth.Callback)
		r.With(newRateLimitMiddleware(deps.Limiter, loginRateLimit, loginRateWindow)).
			Post("/login", deps.Auth.Login)
		r.Post("/logout", deps.Auth.Logout)
		r.Get("/status", deps.Auth.Status)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/announcements", deps.Announcements.List)
		r.Get("/safety-items", deps.Safety.ListItems)
		r.Post("/item-requests", deps.Safety.CreateRequest)
		r.With(newRateLimitMiddleware(deps.Limiter, contactRateLimit, contactRateWindow)).
			Post("/contact", deps.Inquiries.Create)

		r.Route("/admin", func(r chi.Router) {
			r.Use(deps.Guard.RequireAPI)

			r.Route("/announcements", func(r chi.Router) {
				r.Post("/", deps.Announcements.Create)
				r.Put("/{id}", deps.Announcements.Update)
				r.Delete("/{id}", deps.Announcements.Delete)
			})
			r.Route("/safety-items", func(r chi.Router) {
				r.Post("/", deps.Safety.CreateItem)
				r.Put("/{id}", deps.Safety.UpdateItem)
				r.Delete("/{id}", deps.Safety.DeleteItem)
			})
			r.Route("/item-requests", func(r chi.Router) {
				r.Get("/", deps.Safety.ListRequests)
				r.Get("/export", deps.Safety.ExportRequests)
				r.Put("/{id}/status", deps.Safety.UpdateRequestStatus)
			})
			r.Route("/inquiries", func(r chi.Router) {
				r.Get("/", deps.Inquiries.List)
				r.Put("/{id}/answer", deps.Inquiries.Answer)
				r.Delete("/{id}", deps.Inquiries.Delete)
			})
			r.Route("/pdfs", func(r chi.Router) {
				r.Get("/", deps.PDFs.List)
				r.Post("/", deps.PDFs.Upload)
				r.Delete("/{id}", deps.PDFs.Delete)
			})
		})
	})

	// The admin root hosts its own login form, so it stays reachable; every
	// deeper admin page bounces back to it when the session is missing.
	adminPage := newAdminPageHandler(cfg.StaticDir)
	r.Get("/admin", adminPage)
	r.With(deps.Guard.RequirePage).Get("/admin/*", adminPage)

	if fi, err := os.Stat(cfg.StaticDir); err == nil && fi.IsDir() {
		r.NotFound(newStaticHandler(cfg.StaticDir))
	} else {
		r.NotFound(http.NotFoundHandler().ServeHTTP)
	}

	return r
}

// newAdminPageHandler serves the built admin page from the static directory,
// falling back to a minimal inline page when no frontend build is present.
func newAdminPageHandler(staticDir string) http.HandlerFunc {
	page := filepath.Join(staticDir, "admin.html")
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(page); err == nil {
			http.ServeFile(w, r, page)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, adminFallbackPage)
	}
}

// newStaticHandler serves the public frontend build, answering unknown paths
// with index.html so client-side routing keeps working.
func newStaticHandler(staticDir string) http.HandlerFunc {
	fs := http.FileServer(http.Dir(staticDir))
	index := filepath.Join(staticDir, "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		candidate := filepath.Join(staticDir, filepath.Clean("/"+r.URL.Path))
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}
		if _, err := os.Stat(index); err == nil {
			http.ServeFile(w, r, index)
			return
		}
		http.NotFound(w, r)
	}
}

const adminFallbackPage = `<!DOCTYPE html>
<html lang="ko">
<head><meta charset="utf-8"><title>관리자 로그인</title></head>
<body>
<h1>관리자 로그인</h1>
<p>관리자 페이지 빌드가 배포되지 않았습니다. API는 /auth/login 으로 접근할 수 있습니다.</p>
</body>
</html>
`
