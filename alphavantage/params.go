package alphavantage

import (
	"net/url"
	"strings"
)

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// BuildURL assembles the query URL for one API function.
//
// Required params with an empty value fail with a *ConfigError wrapping ErrMissingParameter.
// Optional params with an empty value are left out. The apikey parameter is appended once
// when apiKey is non-empty; RapidAPI passes an empty key and sends it as a header instead.
func BuildURL(baseURL, function string, required, optional []Param, apiKey string) (string, error) {
	if function == "" {
		return "", missingParam("", "function")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", &ConfigError{Function: function, Param: "base url", Reason: err.Error(), err: ErrInvalidParameter}
	}

	q := url.Values{}
	q.Set("function", function)
	for _, p := range required {
		if strings.TrimSpace(p.Value) == "" {
			return "", missingParam(function, p.Key)
		}
		if err := checkReserved(function, p.Key); err != nil {
			return "", err
		}
		q.Set(p.Key, p.Value)
	}
	for _, p := range optional {
		if p.Value == "" {
			continue
		}
		if err := checkReserved(function, p.Key); err != nil {
			return "", err
		}
		q.Set(p.Key, p.Value)
	}
	if apiKey != "" {
		q.Set("apikey", apiKey)
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

// checkReserved keeps callers from overriding function or apikey through extra params.
func checkReserved(function, key string) error {
	switch key {
	case "":
		return invalidParam(function, "parameter", "key must not be empty")
	case "function", "apikey":
		return invalidParam(function, key, "is set by the client")
	}
	return nil
}

// OutputSize controls how many data points series endpoints return.
// The zero value leaves the parameter out, which the API treats as compact.
type OutputSize int

const (
	outputSizeDefault OutputSize = iota
	// OutputSizeCompact returns the latest 100 data points.
	OutputSizeCompact
	// OutputSizeFull returns the full history.
	OutputSizeFull
)

func (o OutputSize) String() string {
	switch o {
	case OutputSizeCompact:
		return "compact"
	case OutputSizeFull:
		return "full"
	default:
		return ""
	}
}

// TimeSeriesInterval is the bar size of intraday stock and forex series.
type TimeSeriesInterval int

const (
	intervalNone TimeSeriesInterval = iota
	OneMin
	FiveMin
	FifteenMin
	ThirtyMin
	SixtyMin
)

func (i TimeSeriesInterval) String() string {
	switch i {
	case OneMin:
		return "1min"
	case FiveMin:
		return "5min"
	case FifteenMin:
		return "15min"
	case ThirtyMin:
		return "30min"
	case SixtyMin:
		return "60min"
	default:
		return ""
	}
}

// TechnicalIndicatorInterval is the bar size technical indicators are computed on.
type TechnicalIndicatorInterval int

const (
	IndicatorOneMin TechnicalIndicatorInterval = iota + 1
	IndicatorFiveMin
	IndicatorFifteenMin
	IndicatorThirtyMin
	IndicatorSixtyMin
	IndicatorDaily
	IndicatorWeekly
	IndicatorMonthly
)

func (i TechnicalIndicatorInterval) String() string {
	switch i {
	case IndicatorOneMin:
		return "1min"
	case IndicatorFiveMin:
		return "5min"
	case IndicatorFifteenMin:
		return "15min"
	case IndicatorThirtyMin:
		return "30min"
	case IndicatorSixtyMin:
		return "60min"
	case IndicatorDaily:
		return "daily"
	case IndicatorWeekly:
		return "weekly"
	case IndicatorMonthly:
		return "monthly"
	default:
		return ""
	}
}

func boolParam(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
