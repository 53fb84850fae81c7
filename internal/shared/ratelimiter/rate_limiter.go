package ratelimiter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Alpha Vantage の無料枠は 1分あたり5リクエストまで。
const (
	DefaultLimit    = 5
	DefaultInterval = time.Minute
)

// Limiter は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は interval あたり limit 回までの呼び出しを許可します。
// バーストは limit まで、その後は interval/limit ごとに1回ずつ補充されます。
type RateLimiter struct {
	limit    int
	interval time.Duration
	lim      *rate.Limiter
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limit が0以下の場合は制限なしになります。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{lim: rate.NewLimiter(rate.Inf, 0)}
	}
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		lim:      rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit),
	}
}

// Wait は上限に達している場合、枠が空くか ctx が終了するまで待機します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	r := rl.lim.Reserve()
	if !r.OK() {
		return rl.lim.Wait(ctx)
	}
	d := r.Delay()
	if d <= 0 {
		return nil
	}
	slog.Info("rate limit reached, waiting", "limit", rl.limit, "interval", rl.interval, "sleep", d)

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		// 使わなかった枠は返却する
		r.Cancel()
		return ctx.Err()
	}
}

// Doer は *http.Client と同じ形の送信関数です。
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type limitedDoer struct {
	limiter Limiter
	next    Doer
}

// WrapDoer は送信のたびに limiter.Wait を呼ぶ Doer を返します。
// 待機中にリクエストのコンテキストが終了した場合は送信しません。
func WrapDoer(limiter Limiter, next Doer) Doer {
	return &limitedDoer{limiter: limiter, next: next}
}

func (d *limitedDoer) Do(req *http.Request) (*http.Response, error) {
	if err := d.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return d.next.Do(req)
}
