package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func newTestLimiter(now *time.Time) *Limiter {
	l := New()
	l.now = func() time.Time { return *now }
	return l
}

func TestAllowCountsWithinWindow(t *testing.T) {
	now := time.Now()
	l := newTestLimiter(&now)

	for i := 0; i < 3; i++ {
		res := l.Allow("1.2.3.4", 3, time.Minute)
		if !res.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
		if res.Remaining != 3-i-1 {
			t.Fatalf("remaining = %d after request %d", res.Remaining, i+1)
		}
	}

	res := l.Allow("1.2.3.4", 3, time.Minute)
	if res.Allowed {
		t.Fatal("fourth request should be blocked")
	}
	if res.RetryAfter <= 0 || res.RetryAfter > time.Minute {
		t.Fatalf("unexpected RetryAfter: %v", res.RetryAfter)
	}
}

func TestAllowResetsAfterWindow(t *testing.T) {
	now := time.Now()
	l := newTestLimiter(&now)

	for i := 0; i < 2; i++ {
		l.Allow("key", 2, time.Minute)
	}
	if l.Allow("key", 2, time.Minute).Allowed {
		t.Fatal("limit should be reached")
	}

	now = now.Add(time.Minute + time.Second)
	if !l.Allow("key", 2, time.Minute).Allowed {
		t.Fatal("window elapsed, request should be allowed again")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	now := time.Now()
	l := newTestLimiter(&now)

	l.Allow("a", 1, time.Minute)
	if l.Allow("a", 1, time.Minute).Allowed {
		t.Fatal("key a should be exhausted")
	}
	if !l.Allow("b", 1, time.Minute).Allowed {
		t.Fatal("key b should be unaffected")
	}
}

func TestAllowIsSafeUnderConcurrency(t *testing.T) {
	l := New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l.Allow("shared", 1000, time.Minute)
			}
		}()
	}
	wg.Wait()

	res := l.Allow("shared", 2000, time.Minute)
	if !res.Allowed {
		t.Fatal("expected headroom under doubled limit")
	}
}
