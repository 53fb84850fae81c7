package alphavantage

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

// maxErrorBody caps how much of a failed response ends up in a StatusError.
const maxErrorBody = 512

// redacted replaces the API key in URLs carried by errors.
const redacted = "REDACTED"

// get performs one GET request and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, function, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{Err: c.redactURLError(err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.provider == ProviderRapidAPI {
		req.Header.Set("x-rapidapi-host", rapidAPIHost)
		req.Header.Set("x-rapidapi-key", c.apiKey)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{timeout: isTimeout(ctx, err), Err: c.redactURLError(err)}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			c.logger.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &TransportError{timeout: isTimeout(ctx, err), Err: err}
	}
	c.logger.Debug("alphavantage request", "function", function, "provider", c.provider.String(),
		"status", res.StatusCode, "bytes", len(body))

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: res.StatusCode, Body: truncateBody(body)}
	}
	return body, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// redactURLError hides the apikey query value of a *url.Error, whose message
// otherwise repeats the full request URL.
func (c *Client) redactURLError(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	if ue == err {
		return &url.Error{Op: ue.Op, URL: c.redactURL(ue.URL), Err: ue.Err}
	}
	ue.URL = c.redactURL(ue.URL)
	return err
}

func (c *Client) redactURL(raw string) string {
	if u, err := url.Parse(raw); err == nil {
		q := u.Query()
		if q.Has("apikey") {
			q.Set("apikey", redacted)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	if c.apiKey == "" {
		return raw
	}
	raw = strings.ReplaceAll(raw, url.QueryEscape(c.apiKey), redacted)
	return strings.ReplaceAll(raw, c.apiKey, redacted)
}

// truncateBody cuts body to maxErrorBody bytes without splitting a rune.
func truncateBody(body []byte) string {
	if len(body) <= maxErrorBody {
		return string(body)
	}
	n := maxErrorBody
	for n > 0 && !utf8.RuneStart(body[n]) {
		n--
	}
	return string(body[:n])
}
