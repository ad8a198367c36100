package auth

import (
	"context"
	"time"
)

// refreshWindow is how close to expiry an access token may get before it is
// refreshed ahead of use.
const refreshWindow = 5 * time.Minute

// RefreshClient refreshes an access token using the record's refresh token.
type RefreshClient interface {
	Refresh(ctx context.Context, rec TokenRecord) (TokenRecord, error)
}

// Refresher guarantees that any token record it hands back is unexpired, or
// fails with ErrReauthRequired. It is pure over records; callers persist the
// refreshed record back to the cookie.
type Refresher struct {
	client RefreshClient
	now    func() time.Time
}

// NewRefresher creates a Refresher on top of the given client.
func NewRefresher(client RefreshClient) *Refresher {
	return &Refresher{client: client, now: time.Now}
}

// EnsureValid returns a record whose access token is safe to present to the
// Drive API. The second return value reports whether a refresh happened, so
// the caller knows to re-persist the record.
//
// Records without expiry information are returned as-is; freshness cannot be
// determined for them. Records expiring within the refresh window are
// refreshed when a refresh token is available, and rejected with
// ErrReauthRequired otherwise.
func (r *Refresher) EnsureValid(ctx context.Context, rec TokenRecord) (TokenRecord, bool, error) {
	if rec.AccessToken == "" {
		return TokenRecord{}, false, ErrReauthRequired
	}

	if rec.ExpiryDate == 0 {
		return rec, false, nil
	}

	now := r.now()
	if !rec.ExpiresWithin(now, refreshWindow) {
		return rec, false, nil
	}

	if rec.RefreshToken == "" {
		return TokenRecord{}, false, ErrReauthRequired
	}

	refreshed, err := r.client.Refresh(ctx, rec)
	if err != nil {
		return TokenRecord{}, false, err
	}

	// A refresh must move the expiry forward; a provider response that is
	// already stale is as good as a failure.
	if refreshed.ExpiryDate != 0 && !time.UnixMilli(refreshed.ExpiryDate).After(now) {
		return TokenRecord{}, false, ErrReauthRequired
	}

	return refreshed, true, nil
}
