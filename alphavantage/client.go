// Package alphavantage is a typed client for the Alpha Vantage market data API.
//
// A Client pairs an API key with an HTTP client. Every endpoint method returns a
// request builder; its JSON method performs a single GET and decodes the response
// into a read-only record. The client does not cache, retry or throttle.
package alphavantage

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the query endpoint of alphavantage.co.
	DefaultBaseURL = "https://www.alphavantage.co/query"
	// RapidAPIBaseURL is the query endpoint when the API is consumed through RapidAPI.
	RapidAPIBaseURL = "https://alpha-vantage.p.rapidapi.com/query"

	rapidAPIHost = "alpha-vantage.p.rapidapi.com"

	// DefaultTimeout applies when New is given a nil HTTP client.
	DefaultTimeout = 30 * time.Second
)

// Doer is the HTTP capability the client needs. *http.Client satisfies it, so TLS,
// proxies and pooling are configured on the injected client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Provider selects where requests are sent and how the key is passed.
type Provider int

const (
	// ProviderAlphaVantage sends the key as the apikey query parameter.
	ProviderAlphaVantage Provider = iota
	// ProviderRapidAPI sends the key in the x-rapidapi-key header.
	ProviderRapidAPI
)

func (p Provider) String() string {
	if p == ProviderRapidAPI {
		return "rapidapi"
	}
	return "alphavantage"
}

// Client holds the API key and the HTTP client. It is immutable and safe for concurrent use.
type Client struct {
	apiKey   string
	http     Doer
	provider Provider
	baseURL  string
	logger   *slog.Logger
}

// Option customizes a Client at construction.
type Option func(*Client)

// WithBaseURL overrides the query endpoint, e.g. for a proxy or a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithLogger sets the logger used for per-request debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a Client for alphavantage.co. A nil httpClient is replaced by an
// *http.Client with DefaultTimeout.
func New(apiKey string, httpClient Doer, opts ...Option) *Client {
	return newClient(apiKey, httpClient, ProviderAlphaVantage, DefaultBaseURL, opts)
}

// NewRapidAPI returns a Client that goes through RapidAPI.
func NewRapidAPI(apiKey string, httpClient Doer, opts ...Option) *Client {
	return newClient(apiKey, httpClient, ProviderRapidAPI, RapidAPIBaseURL, opts)
}

func newClient(apiKey string, httpClient Doer, provider Provider, baseURL string, opts []Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	c := &Client{
		apiKey:   apiKey,
		http:     httpClient,
		provider: provider,
		baseURL:  baseURL,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIKey returns the key the client was built with.
func (c *Client) APIKey() string {
	return c.apiKey
}

// Provider returns the provider requests are sent to.
func (c *Client) Provider() Provider {
	return c.provider
}

func (c *Client) buildURL(function string, required, optional []Param) (string, error) {
	key := c.apiKey
	if c.provider == ProviderRapidAPI {
		key = ""
	}
	return BuildURL(c.baseURL, function, required, optional, key)
}

// fetch runs the whole pipeline for one endpoint: build the URL, GET it, decode the body.
// Nothing is sent when the URL cannot be built.
func fetch[T any](ctx context.Context, c *Client, function string, required, optional []Param,
	decode func(function string, body []byte) (*T, error)) (*T, error) {
	u, err := c.buildURL(function, required, optional)
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, function, u)
	if err != nil {
		return nil, err
	}
	return decode(function, body)
}
