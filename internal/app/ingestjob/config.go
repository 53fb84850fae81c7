// Package ingestjob loads the YAML file that drives cmd/ingest.
package ingestjob

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	candleentity "alpha_vantage/internal/feature/candles/domain/entity"
	symbolentity "alpha_vantage/internal/feature/symbollist/domain/entity"
	"alpha_vantage/internal/shared/ratelimiter"
)

// DefaultTimeout は1回の取り込み全体の上限です。
const DefaultTimeout = 5 * time.Minute

// Config is the ingest job.
//
//	assets:
//	  - {kind: stock, symbol: IBM}
//	  - {kind: forex, symbol: EUR, market: USD}
//	  - {kind: crypto, symbol: BTC, market: USD}
//	intervals: [1day, 1week]
//	output_size: 100
//	watchlist: true
//	timeout: 10m
//	rate_limit: {limit: 5, interval: 1m}
type Config struct {
	Assets     []AssetConfig   `yaml:"assets"`
	Intervals  []string        `yaml:"intervals"`
	OutputSize int             `yaml:"output_size"`
	Watchlist  bool            `yaml:"watchlist"` // DB のアクティブな銘柄も取り込む
	Timeout    time.Duration   `yaml:"timeout"`
	RateLimit  RateLimitConfig `yaml:"rate_limit"`
}

type AssetConfig struct {
	Kind   string `yaml:"kind"`
	Symbol string `yaml:"symbol"`
	Market string `yaml:"market"`
}

type RateLimitConfig struct {
	Limit    int           `yaml:"limit"`
	Interval time.Duration `yaml:"interval"`
}

// Load reads filename and fills in defaults. Unknown intervals and invalid assets are rejected.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a job from YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse ingest job: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit.Limit == 0 {
		cfg.RateLimit.Limit = ratelimiter.DefaultLimit
	}
	if cfg.RateLimit.Interval <= 0 {
		cfg.RateLimit.Interval = ratelimiter.DefaultInterval
	}
	if cfg.OutputSize < 0 {
		return nil, fmt.Errorf("invalid output_size %d", cfg.OutputSize)
	}
	for _, iv := range cfg.Intervals {
		if !candleentity.ValidInterval(iv) {
			return nil, fmt.Errorf("invalid interval %q", iv)
		}
	}
	for i, a := range cfg.Assets {
		if err := a.Asset().Validate(); err != nil {
			return nil, fmt.Errorf("assets[%d]: %w", i, err)
		}
	}
	if len(cfg.Assets) == 0 && !cfg.Watchlist {
		return nil, fmt.Errorf("ingest job has no assets and watchlist is disabled")
	}
	return &cfg, nil
}

// Asset normalizes the entry the same way candle queries do, so "ibm" is stored as "IBM".
func (a AssetConfig) Asset() candleentity.Asset {
	return candleentity.Asset{
		Kind:   candleentity.AssetKind(strings.ToLower(strings.TrimSpace(a.Kind))),
		Symbol: strings.ToUpper(strings.TrimSpace(a.Symbol)),
		Market: strings.ToUpper(strings.TrimSpace(a.Market)),
	}
}

// MergeAssets returns the configured assets followed by the watchlist, without duplicates by code.
func (c *Config) MergeAssets(watchlist []symbolentity.Symbol) []candleentity.Asset {
	seen := make(map[string]bool)
	out := make([]candleentity.Asset, 0, len(c.Assets)+len(watchlist))
	add := func(a candleentity.Asset) {
		if seen[a.Code()] {
			return
		}
		seen[a.Code()] = true
		out = append(out, a)
	}
	for _, a := range c.Assets {
		add(a.Asset())
	}
	for _, s := range watchlist {
		add(FromSymbol(s))
	}
	return out
}

// FromSymbol converts a watchlist entry to the asset candles are ingested for.
func FromSymbol(s symbolentity.Symbol) candleentity.Asset {
	a := candleentity.Asset{Symbol: s.Ticker, Market: s.Market}
	switch s.Kind {
	case symbolentity.KindStock:
		a.Kind = candleentity.AssetStock
		a.Market = ""
	case symbolentity.KindForex:
		a.Kind = candleentity.AssetForex
	case symbolentity.KindCrypto:
		a.Kind = candleentity.AssetCrypto
	default:
		a.Kind = candleentity.AssetKind(s.Kind)
	}
	return a
}
