package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryLimiter_WindowCap(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(time.Minute, 3)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if !l.Allow(ctx, "alice") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow(ctx, "alice") {
		t.Error("request over the cap should be rejected")
	}

	// Another key has its own budget
	if !l.Allow(ctx, "bob") {
		t.Error("different key should be unaffected")
	}
}

func TestMemoryLimiter_WindowExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(time.Minute, 2)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	l.Allow(ctx, "alice")
	l.Allow(ctx, "alice")
	if l.Allow(ctx, "alice") {
		t.Fatal("third request within window should be rejected")
	}

	// Advance past the window; the budget resets
	now = now.Add(61 * time.Second)
	if !l.Allow(ctx, "alice") {
		t.Error("request after window elapsed should be allowed")
	}
}

func TestMemoryLimiter_RejectionsDoNotExtendLockout(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(time.Minute, 1)
	l.now = func() time.Time { return now }

	ctx := context.Background()
	l.Allow(ctx, "alice")

	// Hammer while locked out
	for i := 0; i < 10; i++ {
		now = now.Add(5 * time.Second)
		l.Allow(ctx, "alice")
	}

	// 61s after the single recorded request, the key is free again
	now = now.Add(11 * time.Second)
	if !l.Allow(ctx, "alice") {
		t.Error("rejected attempts must not extend the lockout")
	}
}

type fakeCounterStore struct {
	count   int
	incrErr error
	decrs   int
}

func (f *fakeCounterStore) Incr(_ context.Context, _ string, _ time.Duration, _ time.Time) (int, error) {
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.count++
	return f.count, nil
}

func (f *fakeCounterStore) Decr(_ context.Context, _ string) error {
	f.decrs++
	f.count--
	return nil
}

func TestStoreLimiter_RejectsOverMaxAndRefunds(t *testing.T) {
	store := &fakeCounterStore{}
	l := NewStoreLimiter(store, time.Minute, 2)

	ctx := context.Background()
	if !l.Allow(ctx, "alice") || !l.Allow(ctx, "alice") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow(ctx, "alice") {
		t.Error("third request should be rejected")
	}
	if store.decrs != 1 {
		t.Errorf("rejected request should be refunded once, got %d refunds", store.decrs)
	}
}

func TestStoreLimiter_StoreFailureDegradesToAllow(t *testing.T) {
	store := &fakeCounterStore{incrErr: errors.New("connection refused")}
	l := NewStoreLimiter(store, time.Minute, 1)

	if !l.Allow(context.Background(), "alice") {
		t.Error("store failure should degrade to allow, not block chat")
	}
}
