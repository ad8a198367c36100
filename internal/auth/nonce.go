package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/buntdb"
)

var errNonceSeen = errors.New("nonce already consumed")

// NonceStore records consumed OAuth state nonces in a short-TTL in-memory
// store, making each state single-use within a process. Entries expire on
// their own after the state acceptance window passes.
type NonceStore struct {
	db *buntdb.DB
}

// NewNonceStore opens an in-memory store.
func NewNonceStore() (*NonceStore, error) {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open nonce store: %w", err)
	}
	return &NonceStore{db: db}, nil
}

// Consume atomically records the nonce and reports whether this was its first
// use. A second call with the same nonce within the TTL returns false.
func (s *NonceStore) Consume(nonce string, ttl time.Duration) (bool, error) {
	err := s.db.Update(func(tx *buntdb.Tx) error {
		if _, err := tx.Get(nonce); err == nil {
			return errNonceSeen
		} else if !errors.Is(err, buntdb.ErrNotFound) {
			return err
		}

		_, _, err := tx.Set(nonce, "1", &buntdb.SetOptions{Expires: true, TTL: ttl})
		return err
	})
	if errors.Is(err, errNonceSeen) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("record nonce: %w", err)
	}
	return true, nil
}

// Close releases the store.
func (s *NonceStore) Close() error {
	return s.db.Close()
}
