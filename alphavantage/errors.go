package alphavantage

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter is returned when a required query parameter is empty.
	ErrMissingParameter = errors.New("alphavantage: missing required parameter")

	// ErrInvalidParameter is returned for a parameter combination the endpoint does not accept.
	ErrInvalidParameter = errors.New("alphavantage: invalid parameter combination")

	// ErrRequestFailed is returned when the GET request could not be completed.
	ErrRequestFailed = errors.New("alphavantage: get request failed")

	// ErrTimeout is returned when the request hit a deadline or client timeout.
	ErrTimeout = errors.New("alphavantage: request timed out")

	// ErrUnexpectedStatus is returned for a non-2xx HTTP status.
	ErrUnexpectedStatus = errors.New("alphavantage: unexpected http status")

	// ErrDecode is returned when the body cannot be decoded into the endpoint record.
	ErrDecode = errors.New("alphavantage: decode json to struct")

	// ErrVendor is returned when the API reports an error inside a 200 response.
	ErrVendor = errors.New("alphavantage: api reported an error")

	// ErrNotEnoughEntries is returned by LatestN when fewer entries exist than requested.
	ErrNotEnoughEntries = errors.New("alphavantage: desired number of entries not present")
)

// ErrorKind groups errors by what the caller can do about them.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindConfig: fix the input, nothing was sent.
	KindConfig
	// KindTransport: network, timeout or HTTP status failure.
	KindTransport
	// KindDecode: the body did not match the endpoint schema.
	KindDecode
	// KindVendor: Alpha Vantage answered with an error message, note or information payload.
	KindVendor
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindVendor:
		return "vendor"
	default:
		return "unknown"
	}
}

// KindOf classifies err. Wrapped errors are unwrapped.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrMissingParameter), errors.Is(err, ErrInvalidParameter):
		return KindConfig
	case errors.Is(err, ErrRequestFailed), errors.Is(err, ErrTimeout), errors.Is(err, ErrUnexpectedStatus):
		return KindTransport
	case errors.Is(err, ErrVendor):
		return KindVendor
	case errors.Is(err, ErrDecode):
		return KindDecode
	default:
		return KindUnknown
	}
}

// ConfigError reports a parameter problem detected before any request is made.
type ConfigError struct {
	Function string
	Param    string
	Reason   string
	err      error
}

func missingParam(function, param string) *ConfigError {
	return &ConfigError{Function: function, Param: param, Reason: "is required", err: ErrMissingParameter}
}

func invalidParam(function, param, reason string) *ConfigError {
	return &ConfigError{Function: function, Param: param, Reason: reason, err: ErrInvalidParameter}
}

func (e *ConfigError) Error() string {
	if e.Function == "" {
		return fmt.Sprintf("%v: %s %s", e.err, e.Param, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s %s", e.err, e.Function, e.Param, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.err }

// TransportError wraps a failure of the underlying HTTP client.
type TransportError struct {
	timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.timeout {
		return fmt.Sprintf("%v: %v", ErrTimeout, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrRequestFailed, e.Err)
}

// Timeout reports whether the request failed because of a deadline.
func (e *TransportError) Timeout() bool { return e.timeout }

func (e *TransportError) Unwrap() []error {
	if e.timeout {
		return []error{ErrTimeout, e.Err}
	}
	return []error{ErrRequestFailed, e.Err}
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v %d", ErrUnexpectedStatus, e.StatusCode)
	}
	return fmt.Sprintf("%v %d: %s", ErrUnexpectedStatus, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// DecodeError reports malformed JSON or a schema mismatch.
type DecodeError struct {
	Function string
	Field    string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s: %v", ErrDecode, e.Function, e.Err)
	}
	return fmt.Sprintf("%v: %s: field %q: %v", ErrDecode, e.Function, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// VendorErrorKind is the top-level key the API used to report a problem.
type VendorErrorKind int

const (
	// VendorErrorMessage comes from "Error Message", usually an invalid symbol or call.
	VendorErrorMessage VendorErrorKind = iota + 1
	// VendorNote comes from "Note", usually the call frequency limit.
	VendorNote
	// VendorInformation comes from "Information", usually a premium endpoint or invalid key.
	VendorInformation
)

func (k VendorErrorKind) String() string {
	switch k {
	case VendorErrorMessage:
		return "Error Message"
	case VendorNote:
		return "Note"
	case VendorInformation:
		return "Information"
	default:
		return "unknown"
	}
}

// VendorError carries the message Alpha Vantage embedded in a 200 response.
type VendorError struct {
	Kind    VendorErrorKind
	Message string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrVendor, e.Kind, e.Message)
}

func (e *VendorError) Unwrap() error { return ErrVendor }
