package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates runtime configuration for the safety-notice backend.
type Config struct {
	Environment    string
	HTTPPort       int
	DatabaseURL    string
	DataStore      string
	LogLevel       string
	AllowedOrigins []string

	// Google OAuth client settings. The redirect URI is fixed per
	// deployment; deriving it from the incoming request caused
	// provider-side redirect_uri_mismatch rejections.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	// Drive folder holding the notice PDFs.
	DriveFolderID string

	// Admin password login.
	AdminPassword string
	JWTSecret     string

	StaticDir string
}

// Load reads configuration from environment variables with sensible defaults for local development.
func Load() (Config, error) {
	databaseURL, err := getEnvOrFile("DATABASE_URL", "/run/secrets/safenotice_database_url")
	if err != nil {
		return Config{}, err
	}

	clientSecret, err := getEnvOrFile("GOOGLE_CLIENT_SECRET", "/run/secrets/safenotice_google_client_secret")
	if err != nil {
		return Config{}, err
	}

	adminPassword, err := getEnvOrFile("ADMIN_PASSWORD", "/run/secrets/safenotice_admin_password")
	if err != nil {
		return Config{}, err
	}

	jwtSecret, err := getEnvOrFile("JWT_SECRET", "/run/secrets/safenotice_jwt_secret")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Environment:        getEnv("APP_ENV", "development"),
		DatabaseURL:        databaseURL,
		DataStore:          strings.ToLower(getEnv("DATA_STORE", "memory")),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AllowedOrigins:     parseCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080")),
		GoogleClientID:     strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID")),
		GoogleClientSecret: strings.TrimSpace(clientSecret),
		GoogleRedirectURI:  strings.TrimSpace(os.Getenv("GOOGLE_REDIRECT_URI")),
		DriveFolderID:      strings.TrimSpace(os.Getenv("DRIVE_FOLDER_ID")),
		AdminPassword:      strings.TrimSpace(adminPassword),
		JWTSecret:          strings.TrimSpace(jwtSecret),
		StaticDir:          getEnv("WEB_DIST_PATH", "web/dist"),
	}

	portValue := getEnv("PORT", getEnv("HTTP_PORT", "8080"))
	port, err := strconv.Atoi(portValue)
	if err != nil {
		return Config{}, fmt.Errorf("invalid port %q: %w", portValue, err)
	}
	cfg.HTTPPort = port

	if cfg.DataStore == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATA_STORE is postgres but DATABASE_URL is not set")
	}

	// Auth secrets fail closed: a deployment missing any of them must not
	// come up pretending authentication works.
	if !cfg.IsDevelopment() {
		required := []struct {
			name  string
			value string
		}{
			{"GOOGLE_CLIENT_ID", cfg.GoogleClientID},
			{"GOOGLE_CLIENT_SECRET", cfg.GoogleClientSecret},
			{"GOOGLE_REDIRECT_URI", cfg.GoogleRedirectURI},
			{"ADMIN_PASSWORD", cfg.AdminPassword},
			{"JWT_SECRET", cfg.JWTSecret},
		}
		for _, req := range required {
			if req.value == "" {
				return Config{}, fmt.Errorf("%s is required outside development", req.name)
			}
		}
	}

	return cfg, nil
}

// HTTPAddress returns the address the HTTP server should bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// UseInMemoryStore returns true if the in-memory repository should be used.
func (c Config) UseInMemoryStore() bool {
	return c.DataStore == "memory"
}

// IsDevelopment reports whether the service runs in the development environment.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// GoogleOAuthConfigured reports whether the full OAuth client triple is present.
func (c Config) GoogleOAuthConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURI != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrFile(key, defaultPath string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}

	fileKey := key + "_FILE"
	if path := os.Getenv(fileKey); path != "" {
		return readSecret(path, fileKey)
	}

	if defaultPath != "" {
		return readSecret(defaultPath, key)
	}

	return "", nil
}

func readSecret(path, name string) (string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("config: reading %s (%s): %w", name, path, err)
	}

	value := strings.TrimSpace(string(contents))
	if value == "" {
		return "", fmt.Errorf("config: %s (%s) is empty", name, path)
	}
	return value, nil
}
