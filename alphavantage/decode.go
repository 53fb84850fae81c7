package alphavantage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	errMissingField  = errors.New("missing required field")
	errEmptyResponse = errors.New("empty response")
	errUnknownField  = errors.New("unknown field")
)

// vendorKeys are the top-level keys Alpha Vantage uses instead of an HTTP error status.
var vendorKeys = []struct {
	key  string
	kind VendorErrorKind
}{
	{"Error Message", VendorErrorMessage},
	{"Note", VendorNote},
	{"Information", VendorInformation},
}

// decodeTop parses the body as a JSON object and checks that dataKey is present.
// When it is absent, a vendor payload becomes a *VendorError and anything else a *DecodeError.
func decodeTop(function string, body []byte, dataKey string) (map[string]json.RawMessage, error) {
	top, err := decodeObject(function, body)
	if err != nil {
		return nil, err
	}
	if _, ok := top[dataKey]; ok {
		return top, nil
	}
	if verr := vendorError(top); verr != nil {
		return nil, verr
	}
	return nil, &DecodeError{Function: function, Field: dataKey, Err: errMissingField}
}

// decodeTopMatching is decodeTop for endpoints whose data key varies with the
// request, e.g. "Time Series (5min)". It returns the single matching key.
func decodeTopMatching(function string, body []byte, match func(key string) bool, what string) (map[string]json.RawMessage, string, error) {
	top, err := decodeObject(function, body)
	if err != nil {
		return nil, "", err
	}
	var found []string
	for k := range top {
		if match(k) {
			found = append(found, k)
		}
	}
	switch len(found) {
	case 1:
		return top, found[0], nil
	case 0:
		if verr := vendorError(top); verr != nil {
			return nil, "", verr
		}
		return nil, "", &DecodeError{Function: function, Field: what, Err: errMissingField}
	default:
		slices.Sort(found)
		return nil, "", &DecodeError{Function: function, Field: what,
			Err: fmt.Errorf("ambiguous data keys %q", found)}
	}
}

func decodeObject(function string, body []byte) (map[string]json.RawMessage, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, &DecodeError{Function: function, Err: err}
	}
	if len(top) == 0 {
		return nil, &DecodeError{Function: function, Err: errEmptyResponse}
	}
	return top, nil
}

func vendorError(top map[string]json.RawMessage) *VendorError {
	for _, vk := range vendorKeys {
		raw, ok := top[vk.key]
		if !ok {
			continue
		}
		var msg string
		if err := json.Unmarshal(raw, &msg); err != nil {
			msg = string(raw)
		}
		return &VendorError{Kind: vk.kind, Message: msg}
	}
	return nil
}

// strictUnmarshal rejects fields the target struct does not declare.
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// fields resolves numbered vendor keys such as "2. From Symbol" or "1: Symbol" by their label.
type fields map[string]string

// decodeFields decodes an object of scalars; numbers and booleans keep their JSON text.
func decodeFields(raw json.RawMessage) (fields, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	out := make(fields, len(m))
	for k, v := range m {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[label(k)] = s
			continue
		}
		t := strings.TrimSpace(string(v))
		if strings.HasPrefix(t, "{") || strings.HasPrefix(t, "[") {
			return nil, fmt.Errorf("field %q: expected scalar, got %s", k, t)
		}
		out[label(k)] = t
	}
	return out, nil
}

func (f fields) get(name string) (string, bool) {
	v, ok := f[name]
	return v, ok
}

// label strips an ordinal prefix like "1. ", "1a. ", "7: " or "5.1: ".
func label(key string) string {
	_, rest := splitOrdinal(key)
	return rest
}

// ordinal returns the prefix label strips, e.g. "1a" for "1a. open (CNY)".
func ordinal(key string) string {
	ord, _ := splitOrdinal(key)
	return ord
}

func splitOrdinal(key string) (string, string) {
	i := strings.IndexByte(key, ' ')
	if i < 2 || i > 5 {
		return "", key
	}
	head := key[:i]
	last := head[len(head)-1]
	if (last != '.' && last != ':') || head[0] < '0' || head[0] > '9' {
		return "", key
	}
	return head[:len(head)-1], key[i+1:]
}

// parser converts vendor strings and remembers the first failure, so decoders can
// read every field in sequence and check once.
type parser struct {
	function string
	err      error
}

func (p *parser) fail(field string, err error) {
	if p.err == nil {
		p.err = &DecodeError{Function: p.function, Field: field, Err: err}
	}
}

func (p *parser) required(field, s string) string {
	if strings.TrimSpace(s) == "" {
		p.fail(field, errMissingField)
	}
	return s
}

func (p *parser) requiredField(f fields, name string) string {
	v, ok := f.get(name)
	if !ok {
		p.fail(name, errMissingField)
		return ""
	}
	return p.required(name, v)
}

// only fails on the first label of f outside allowed.
func (p *parser) only(field string, f fields, allowed ...string) {
	for name := range f {
		if !slices.Contains(allowed, name) {
			p.fail(field, fmt.Errorf("%w %q", errUnknownField, name))
			return
		}
	}
}

func (p *parser) decimal(field, s string) decimal.Decimal {
	if strings.TrimSpace(s) == "" {
		p.fail(field, errMissingField)
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		p.fail(field, fmt.Errorf("parse %q: %w", s, err))
		return decimal.Zero
	}
	return d
}

// nullDecimal treats the vendor's placeholders for "no value" as invalid rather than failing.
func (p *parser) nullDecimal(field, s string) decimal.NullDecimal {
	switch strings.TrimSpace(s) {
	case "", "None", "-", ".", "null":
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(p.decimal(field, s))
}

// percent parses values like "-1.2345%".
func (p *parser) percent(field, s string) decimal.Decimal {
	return p.decimal(field, strings.TrimSuffix(strings.TrimSpace(s), "%"))
}

func (p *parser) int64(field, s string) int64 {
	if strings.TrimSpace(s) == "" {
		p.fail(field, errMissingField)
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		p.fail(field, fmt.Errorf("parse %q: %w", s, err))
		return 0
	}
	return n
}
