package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminSessionTTL is the fixed lifetime of a password-based admin session.
const AdminSessionTTL = 8 * time.Hour

var (
	ErrInvalidSession = errors.New("invalid admin session")
	ErrExpiredSession = errors.New("admin session expired")
	ErrNoSecret       = errors.New("session secret is not configured")
)

// AdminClaims is the payload of the password-login session token. Validity is
// entirely stateless: the signature and the embedded expiry are the only
// things checked.
type AdminClaims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256-signed admin session tokens.
type SessionManager struct {
	secret []byte
	now    func() time.Time
}

// NewSessionManager creates a SessionManager signing with the given secret.
// An empty secret yields a manager that refuses to issue or verify anything;
// an HS256 key anyone knows is no key at all.
func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{secret: []byte(secret), now: time.Now}
}

// Configured reports whether the manager holds a signing secret.
func (m *SessionManager) Configured() bool {
	return len(m.secret) > 0
}

// Issue creates a signed session token valid for AdminSessionTTL.
func (m *SessionManager) Issue() (string, error) {
	if !m.Configured() {
		return "", ErrNoSecret
	}

	now := m.now()
	claims := &AdminClaims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AdminSessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks the token's signature and expiry. Without a configured
// secret every token is rejected.
func (m *SessionManager) Verify(tokenString string) error {
	if !m.Configured() {
		return ErrInvalidSession
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&AdminClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidSession
			}
			return m.secret, nil
		},
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredSession
		}
		return ErrInvalidSession
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || !claims.IsAdmin {
		return ErrInvalidSession
	}
	return nil
}
