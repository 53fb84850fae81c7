// Package alphavantage wires the Alpha Vantage client into the application: it loads
// the client configuration from the environment and adapts the typed records to the
// candles, quotes and symbollist features.
package alphavantage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	av "alpha_vantage/alphavantage"
)

// ErrMissingAPIKey is returned by LoadConfig when ALPHA_VANTAGE_API_KEY is empty.
var ErrMissingAPIKey = errors.New("ALPHA_VANTAGE_API_KEY is not set")

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey   string        // API key, sent as apikey or as x-rapidapi-key
	Provider av.Provider   // alphavantage.co or RapidAPI
	BaseURL  string        // overrides the provider endpoint when set
	Timeout  time.Duration // HTTP request timeout
	MinTLS   string        // "1.2" or "1.3"
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
func LoadConfig() (Config, error) {
	cfg := Config{
		APIKey:  os.Getenv("ALPHA_VANTAGE_API_KEY"),
		BaseURL: os.Getenv("ALPHA_VANTAGE_BASE_URL"),
		Timeout: av.DefaultTimeout,
		MinTLS:  os.Getenv("ALPHA_VANTAGE_MIN_TLS"),
	}
	if cfg.APIKey == "" {
		return cfg, ErrMissingAPIKey
	}

	switch p := strings.ToLower(os.Getenv("ALPHA_VANTAGE_PROVIDER")); p {
	case "", "alphavantage":
		cfg.Provider = av.ProviderAlphaVantage
	case "rapidapi":
		cfg.Provider = av.ProviderRapidAPI
	default:
		return cfg, fmt.Errorf("unknown ALPHA_VANTAGE_PROVIDER %q", p)
	}

	if s := os.Getenv("ALPHA_VANTAGE_TIMEOUT"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid ALPHA_VANTAGE_TIMEOUT %q", s)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// NewClient builds the API client for cfg on top of httpClient.
func NewClient(cfg Config, httpClient av.Doer, logger *slog.Logger) *av.Client {
	opts := []av.Option{av.WithBaseURL(cfg.BaseURL), av.WithLogger(logger)}
	if cfg.Provider == av.ProviderRapidAPI {
		return av.NewRapidAPI(cfg.APIKey, httpClient, opts...)
	}
	return av.New(cfg.APIKey, httpClient, opts...)
}
