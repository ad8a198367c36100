package auth

import (
	"errors"
	"fmt"
)

// ErrReauthRequired signals that no valid credential can be produced and the
// user must restart the OAuth flow.
var ErrReauthRequired = errors.New("reauthentication required")

// ErrDecode is returned when a state or cookie payload cannot be parsed.
var ErrDecode = errors.New("decode error")

// DecodeError wraps a decode failure message so callers can distinguish
// malformed client input from internal failures.
type DecodeError struct {
	Message string
}

func (e *DecodeError) Error() string {
	return e.Message
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// ExchangeKind classifies a failed authorization-code exchange.
type ExchangeKind string

const (
	ExchangeInvalidClient    ExchangeKind = "invalid_client"
	ExchangeRedirectMismatch ExchangeKind = "redirect_mismatch"
	ExchangeExpiredCode      ExchangeKind = "expired_or_invalid_code"
	ExchangeUnknown          ExchangeKind = "unknown"
)

// ExchangeError reports a failed code-for-token exchange with the provider.
type ExchangeError struct {
	Kind ExchangeKind
	Err  error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed (%s): %v", e.Kind, e.Err)
}

func (e *ExchangeError) Unwrap() error {
	return e.Err
}
