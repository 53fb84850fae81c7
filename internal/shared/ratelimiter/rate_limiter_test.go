package ratelimiter

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestRateLimiter_BurstUpToLimit(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(3, time.Hour)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("expected burst without waiting, took %v", elapsed)
	}
}

func TestRateLimiter_WaitsWhenExhausted(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(2, 200*time.Millisecond)
	ctx := context.Background()
	_ = rl.Wait(ctx)
	_ = rl.Wait(ctx)

	start := time.Now()
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected the third call to wait, took %v", elapsed)
	}
}

func TestRateLimiter_ContextCanceled(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(1, time.Hour)
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := rl.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("expected Wait to return on cancel, took %v", elapsed)
	}
}

func TestRateLimiter_Unlimited(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
}

type limiterFunc func(ctx context.Context) error

func (f limiterFunc) Wait(ctx context.Context) error { return f(ctx) }

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func TestWrapDoer(t *testing.T) {
	t.Parallel()

	var waits, sends int
	d := WrapDoer(
		limiterFunc(func(ctx context.Context) error { waits++; return nil }),
		doerFunc(func(req *http.Request) (*http.Response, error) {
			sends++
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		}),
	)

	req, _ := http.NewRequest(http.MethodGet, "http://example.invalid/query", nil)
	res, err := d.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = res.Body.Close()
	if waits != 1 || sends != 1 {
		t.Errorf("expected one wait and one send, got %d and %d", waits, sends)
	}
}

func TestWrapDoer_LimiterErrorSkipsSend(t *testing.T) {
	t.Parallel()

	sent := false
	d := WrapDoer(
		limiterFunc(func(ctx context.Context) error { return context.Canceled }),
		doerFunc(func(req *http.Request) (*http.Response, error) {
			sent = true
			return nil, nil
		}),
	)

	req, _ := http.NewRequest(http.MethodGet, "http://example.invalid/query", nil)
	_, err := d.Do(req)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sent {
		t.Error("request must not be sent when the limiter fails")
	}
}
