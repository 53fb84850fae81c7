package alphavantage

import (
	"context"
	"encoding/json"
)

// CustomBuilder calls a function the client has no typed builder for. The caller
// supplies the parameters and the target type.
type CustomBuilder struct {
	client   *Client
	function string
	params   []Param
}

// Custom returns a builder for an arbitrary function, e.g. "OVERVIEW" or "NEWS_SENTIMENT".
func (c *Client) Custom(function string) *CustomBuilder {
	return &CustomBuilder{client: c, function: function}
}

// Param adds a query parameter. Empty values are left out of the URL.
func (b *CustomBuilder) Param(key, value string) *CustomBuilder {
	b.params = append(b.params, Param{Key: key, Value: value})
	return b
}

// URL returns the request URL without sending anything.
func (b *CustomBuilder) URL() (string, error) {
	return b.client.buildURL(b.function, nil, b.params)
}

// Raw fetches the body after checking it is a JSON object that is not a vendor error.
func (b *CustomBuilder) Raw(ctx context.Context) (json.RawMessage, error) {
	u, err := b.URL()
	if err != nil {
		return nil, err
	}
	body, err := b.client.get(ctx, b.function, u)
	if err != nil {
		return nil, err
	}
	top, err := decodeObject(b.function, body)
	if err != nil {
		return nil, err
	}
	if onlyVendorKeys(top) {
		return nil, vendorError(top)
	}
	return json.RawMessage(body), nil
}

// Decode fetches the body and unmarshals it into v, which must be a pointer.
// Unknown fields are ignored since the shape is not known to the client.
func (b *CustomBuilder) Decode(ctx context.Context, v any) error {
	body, err := b.Raw(ctx)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &DecodeError{Function: b.function, Err: err}
	}
	return nil
}

// onlyVendorKeys reports whether every top-level key is an error key. Without a
// known data key this is the only safe way to tell an error from data.
func onlyVendorKeys(top map[string]json.RawMessage) bool {
	for k := range top {
		known := false
		for _, vk := range vendorKeys {
			if k == vk.key {
				known = true
				break
			}
		}
		if !known {
			return false
		}
	}
	return len(top) > 0
}
