package auth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// StateTTL bounds how long an encoded state is accepted after creation.
// An abandoned flow simply ages out; no server-side record is kept for it.
const StateTTL = 10 * time.Minute

// clockSkewTolerance allows for minor clock drift between the instance that
// issued a state and the one validating it.
const clockSkewTolerance = time.Minute

// State is the anti-CSRF payload carried through the OAuth redirect
// round-trip. It holds only public routing and anti-replay data, never
// secrets; confidentiality is not part of its contract.
type State struct {
	Nonce      string `json:"nonce"`
	ReturnPath string `json:"returnPath"`
	Timestamp  int64  `json:"timestamp"` // epoch milliseconds
}

// NewState creates a state bound to one authorization attempt.
func NewState(returnPath string) (State, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return State{}, fmt.Errorf("generate nonce: %w", err)
	}

	return State{
		Nonce:      base64.RawURLEncoding.EncodeToString(nonce),
		ReturnPath: returnPath,
		Timestamp:  time.Now().UnixMilli(),
	}, nil
}

// ExpiredAt reports whether the state falls outside the acceptance window at
// the given instant. Timestamps from the future beyond skew tolerance are
// rejected as well.
func (s State) ExpiredAt(now time.Time) bool {
	age := now.UnixMilli() - s.Timestamp
	return age > StateTTL.Milliseconds() || age < -clockSkewTolerance.Milliseconds()
}

// EncodeState serializes a state into its transport form, base64 over JSON.
func EncodeState(s State) string {
	data, _ := json.Marshal(s)
	return base64.RawURLEncoding.EncodeToString(data)
}

// DecodeState parses the transport form back into a State. It returns a
// DecodeError when the input is not valid base64, not valid JSON, or missing
// required fields.
func DecodeState(raw string) (State, error) {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return State{}, &DecodeError{Message: "state is not valid base64"}
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, &DecodeError{Message: "state is not valid JSON"}
	}

	if s.Nonce == "" || s.Timestamp == 0 {
		return State{}, &DecodeError{Message: "state is missing required fields"}
	}

	return s, nil
}
