package auth

import (
	"bytes"
	"encoding/json"
	"time"
)

// TokenRecord is the Google credential set persisted in the token cookie.
// The JSON field names match the wire format the deployment already uses, so
// existing cookies keep validating across releases.
type TokenRecord struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiryDate   int64  `json:"expiry_date,omitempty"` // epoch milliseconds
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// Authenticated reports whether the record is usable proof of identity at the
// given instant: an access token is present and, when expiry is known, not in
// the past.
func (t TokenRecord) Authenticated(now time.Time) bool {
	if t.AccessToken == "" {
		return false
	}
	if t.ExpiryDate != 0 && t.ExpiryDate < now.UnixMilli() {
		return false
	}
	return true
}

// ExpiresWithin reports whether the record's expiry falls inside the window
// after now. Records without expiry information report false; freshness
// cannot be determined for them.
func (t TokenRecord) ExpiresWithin(now time.Time, window time.Duration) bool {
	if t.ExpiryDate == 0 {
		return false
	}
	return !time.UnixMilli(t.ExpiryDate).After(now.Add(window))
}

// ParseTokenRecord deserializes a cookie payload into a TokenRecord. The
// schema is validated at this boundary: unknown fields, malformed JSON, and a
// missing access token all yield a DecodeError rather than a half-populated
// record callers would have to probe defensively.
func ParseTokenRecord(data []byte) (TokenRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var rec TokenRecord
	if err := dec.Decode(&rec); err != nil {
		return TokenRecord{}, &DecodeError{Message: "token record is not valid JSON"}
	}

	if rec.AccessToken == "" {
		return TokenRecord{}, &DecodeError{Message: "token record is missing access_token"}
	}

	return rec, nil
}
