// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"log/slog"

	av "alpha_vantage/alphavantage"
	"alpha_vantage/internal/platform/externalapi/alphavantage"
	infrahttp "alpha_vantage/internal/platform/http"
	"alpha_vantage/internal/shared/ratelimiter"
)

// NewAlphaVantageClient creates a fully configured client on top of the tuned HTTP client.
// limiter が nil でない場合、すべてのリクエストは limiter を通ります。
func NewAlphaVantageClient(limiter ratelimiter.Limiter) (*av.Client, error) {
	cfg, err := alphavantage.LoadConfig()
	if err != nil {
		return nil, err
	}
	minTLS, ok := infrahttp.ParseTLSVersion(cfg.MinTLS)
	if !ok {
		return nil, fmt.Errorf("invalid ALPHA_VANTAGE_MIN_TLS %q", cfg.MinTLS)
	}

	var doer av.Doer = infrahttp.NewHTTPClient(cfg.Timeout, minTLS)
	if limiter != nil {
		doer = ratelimiter.WrapDoer(limiter, doer)
	}
	slog.Info("alpha vantage client configured", "provider", cfg.Provider, "timeout", cfg.Timeout)
	return alphavantage.NewClient(cfg, doer, slog.Default()), nil
}
