package auth

import (
	"testing"
	"time"
)

func TestNonceStoreConsumeIsSingleUse(t *testing.T) {
	store, err := NewNonceStore()
	if err != nil {
		t.Fatalf("NewNonceStore returned error: %v", err)
	}
	defer func() { _ = store.Close() }()

	first, err := store.Consume("nonce-1", time.Minute)
	if err != nil {
		t.Fatalf("Consume returned error: %v", err)
	}
	if !first {
		t.Fatal("first use should succeed")
	}

	second, err := store.Consume("nonce-1", time.Minute)
	if err != nil {
		t.Fatalf("Consume returned error: %v", err)
	}
	if second {
		t.Fatal("second use of the same nonce should be rejected")
	}
}

func TestNonceStoreIndependentNonces(t *testing.T) {
	store, err := NewNonceStore()
	if err != nil {
		t.Fatalf("NewNonceStore returned error: %v", err)
	}
	defer func() { _ = store.Close() }()

	for _, nonce := range []string{"a", "b", "c"} {
		ok, err := store.Consume(nonce, time.Minute)
		if err != nil || !ok {
			t.Fatalf("Consume(%q) = (%v, %v), want first use", nonce, ok, err)
		}
	}
}
