package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// driveScopes covers the Drive access the admin dashboard needs plus the
// identity scopes used to log which account signed in.
var driveScopes = []string{
	oidc.ScopeOpenID,
	"email",
	"profile",
	"https://www.googleapis.com/auth/drive.readonly",
	"https://www.googleapis.com/auth/drive.file",
}

// Identity holds the verified claims of the Google account that completed
// the OAuth flow.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleClient wraps the Google OAuth 2.0 token endpoint: it builds consent
// URLs, exchanges authorization codes, and refreshes access tokens. It never
// touches cookies; persistence is the caller's job.
type GoogleClient struct {
	config     *oauth2.Config
	verifier   *oidc.IDTokenVerifier
	httpClient *http.Client
}

// NewGoogleClient creates a GoogleClient. The redirect URI is taken verbatim
// from configuration; it must match the console registration exactly or the
// provider rejects the exchange with redirect_uri_mismatch.
func NewGoogleClient(ctx context.Context, clientID, clientSecret, redirectURI string) (*GoogleClient, error) {
	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, fmt.Errorf("oidc provider: %w", err)
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Endpoint:     google.Endpoint,
		Scopes:       driveScopes,
	}

	return &GoogleClient{
		config:     config,
		verifier:   provider.Verifier(&oidc.Config{ClientID: clientID}),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// AuthURL generates the Google consent URL carrying the given state. The
// offline access type and consent prompt make Google issue a refresh token.
func (g *GoogleClient) AuthURL(state string) string {
	return g.config.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
}

// Exchange swaps the authorization code for tokens. When the response carries
// an ID token it is verified and the account identity returned alongside the
// record; identity extraction failures only cost the identity, not the login.
func (g *GoogleClient) Exchange(ctx context.Context, code string) (TokenRecord, *Identity, error) {
	token, err := g.config.Exchange(g.withHTTPClient(ctx), code)
	if err != nil {
		return TokenRecord{}, nil, classifyExchangeError(err)
	}

	return recordFromToken(token), g.identityFromToken(ctx, token), nil
}

// Refresh obtains a fresh access token using the record's refresh token. Any
// provider failure surfaces as ErrReauthRequired; a token that cannot be
// refreshed must never pass as still valid.
func (g *GoogleClient) Refresh(ctx context.Context, rec TokenRecord) (TokenRecord, error) {
	if rec.RefreshToken == "" {
		return TokenRecord{}, ErrReauthRequired
	}

	source := g.config.TokenSource(g.withHTTPClient(ctx), &oauth2.Token{RefreshToken: rec.RefreshToken})
	token, err := source.Token()
	if err != nil {
		return TokenRecord{}, fmt.Errorf("%w: %v", ErrReauthRequired, err)
	}

	refreshed := recordFromToken(token)
	// Google only rotates the refresh token occasionally; keep the old one
	// when the response omits it.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = rec.RefreshToken
	}
	if refreshed.Scope == "" {
		refreshed.Scope = rec.Scope
	}
	return refreshed, nil
}

func (g *GoogleClient) withHTTPClient(ctx context.Context) context.Context {
	if g.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
}

func (g *GoogleClient) identityFromToken(ctx context.Context, token *oauth2.Token) *Identity {
	if g.verifier == nil {
		return nil
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil
	}

	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil
	}

	var ident Identity
	if err := idToken.Claims(&ident); err != nil {
		return nil
	}
	return &ident
}

func recordFromToken(token *oauth2.Token) TokenRecord {
	rec := TokenRecord{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
	}
	if !token.Expiry.IsZero() {
		rec.ExpiryDate = token.Expiry.UnixMilli()
	}
	if scope, ok := token.Extra("scope").(string); ok {
		rec.Scope = scope
	}
	return rec
}

// classifyExchangeError maps a provider exchange failure onto the error
// taxonomy. The sub-kinds mirror the failure modes seen in production:
// misconfigured client credentials, a redirect URI that does not match the
// console registration, and stale or reused authorization codes.
func classifyExchangeError(err error) *ExchangeError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		switch retrieveErr.ErrorCode {
		case "invalid_client", "unauthorized_client":
			return &ExchangeError{Kind: ExchangeInvalidClient, Err: err}
		case "invalid_grant":
			return &ExchangeError{Kind: ExchangeExpiredCode, Err: err}
		case "redirect_uri_mismatch":
			return &ExchangeError{Kind: ExchangeRedirectMismatch, Err: err}
		}
		if strings.Contains(retrieveErr.ErrorDescription, "redirect_uri") ||
			strings.Contains(string(retrieveErr.Body), "redirect_uri") {
			return &ExchangeError{Kind: ExchangeRedirectMismatch, Err: err}
		}
	}
	return &ExchangeError{Kind: ExchangeUnknown, Err: err}
}
