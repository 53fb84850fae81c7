package alphavantage

import (
	"context"
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const technicalAnalysisPrefix = "Technical Analysis: "

// TechnicalIndicator is the output of an indicator function such as SMA, MACD or BBANDS.
// Meta data differs per indicator, so it is exposed by label.
type TechnicalIndicator struct {
	name    string
	meta    fields
	entries []IndicatorEntry
}

// Name is the indicator from the data key, e.g. "SMA".
func (t *TechnicalIndicator) Name() string { return t.name }

// Meta returns a meta data value by label, e.g. "Symbol", "Time Period" or "Series Type".
func (t *TechnicalIndicator) Meta(label string) (string, bool) { return t.meta.get(label) }

// MetaLabels lists the meta data labels in sorted order.
func (t *TechnicalIndicator) MetaLabels() []string {
	labels := make([]string, 0, len(t.meta))
	for k := range t.meta {
		labels = append(labels, k)
	}
	slices.Sort(labels)
	return labels
}

func (t *TechnicalIndicator) Symbol() string {
	s, _ := t.meta.get("Symbol")
	return s
}

// Entries are ordered newest first.
func (t *TechnicalIndicator) Entries() []IndicatorEntry               { return t.entries }
func (t *TechnicalIndicator) Find(time string) (IndicatorEntry, bool) { return findEntry(t.entries, time) }
func (t *TechnicalIndicator) Latest() (IndicatorEntry, bool)          { return latestEntry(t.entries) }
func (t *TechnicalIndicator) LatestN(n int) ([]IndicatorEntry, error) { return latestEntries(t.entries, n) }

// Value returns the named output at a timestamp, e.g. Value("2024-01-05", "MACD_Signal").
func (t *TechnicalIndicator) Value(time, output string) (decimal.Decimal, bool) {
	e, ok := t.Find(time)
	if !ok {
		return decimal.Zero, false
	}
	return e.Value(output)
}

// IndicatorEntry holds every output of the indicator at one timestamp.
type IndicatorEntry struct {
	time   string
	values map[string]decimal.Decimal
}

func (e IndicatorEntry) Time() string { return e.time }

func (e IndicatorEntry) Value(output string) (decimal.Decimal, bool) {
	v, ok := e.values[output]
	return v, ok
}

// Outputs lists the output names in sorted order, e.g. [MACD MACD_Hist MACD_Signal].
func (e IndicatorEntry) Outputs() []string {
	out := make([]string, 0, len(e.values))
	for k := range e.values {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

func decodeTechnicalIndicator(function string, body []byte) (*TechnicalIndicator, error) {
	isData := func(k string) bool { return strings.HasPrefix(k, technicalAnalysisPrefix) }
	top, dataKey, err := decodeTopMatching(function, body, isData, "Technical Analysis")
	if err != nil {
		return nil, err
	}
	meta, err := decodeMeta(function, top)
	if err != nil {
		return nil, err
	}
	var raw map[string]map[string]string
	if err := json.Unmarshal(top[dataKey], &raw); err != nil {
		return nil, &DecodeError{Function: function, Field: dataKey, Err: err}
	}

	p := parser{function: function}
	p.requiredField(meta, "Symbol")
	ti := &TechnicalIndicator{
		name:    strings.TrimPrefix(dataKey, technicalAnalysisPrefix),
		meta:    meta,
		entries: make([]IndicatorEntry, 0, len(raw)),
	}
	for time, outputs := range raw {
		if len(outputs) == 0 {
			p.fail(time, errMissingField)
			continue
		}
		e := IndicatorEntry{time: time, values: make(map[string]decimal.Decimal, len(outputs))}
		for name, v := range outputs {
			e.values[name] = p.decimal(time+" "+name, v)
		}
		ti.entries = append(ti.entries, e)
	}
	if p.err != nil {
		return nil, p.err
	}
	sortNewestFirst(ti.entries)
	return ti, nil
}

// TechnicalIndicatorBuilder requests an indicator function. Indicator-specific
// parameters such as fastlimit or nbdevup go through ExtraParam.
type TechnicalIndicatorBuilder struct {
	client     *Client
	function   string
	symbol     string
	interval   TechnicalIndicatorInterval
	timePeriod int
	seriesType string
	month      string
	extra      []Param
}

// TechnicalIndicator returns a builder for function (e.g. "SMA") on symbol.
func (c *Client) TechnicalIndicator(function, symbol string, interval TechnicalIndicatorInterval) *TechnicalIndicatorBuilder {
	return &TechnicalIndicatorBuilder{client: c, function: function, symbol: symbol, interval: interval}
}

// TimePeriod sets the number of data points used per value.
func (b *TechnicalIndicatorBuilder) TimePeriod(n int) *TechnicalIndicatorBuilder {
	b.timePeriod = n
	return b
}

// SeriesType selects the price column: "close", "open", "high" or "low".
func (b *TechnicalIndicatorBuilder) SeriesType(seriesType string) *TechnicalIndicatorBuilder {
	b.seriesType = seriesType
	return b
}

// Month limits intraday intervals to one month in YYYY-MM format.
func (b *TechnicalIndicatorBuilder) Month(month string) *TechnicalIndicatorBuilder {
	b.month = month
	return b
}

// ExtraParam adds an indicator-specific parameter, e.g. ExtraParam("fastlimit", 0.02).
func (b *TechnicalIndicatorBuilder) ExtraParam(key string, value any) *TechnicalIndicatorBuilder {
	b.extra = append(b.extra, Param{Key: key, Value: formatValue(value)})
	return b
}

func (b *TechnicalIndicatorBuilder) query() ([]Param, []Param, error) {
	interval := b.interval.String()
	if interval == "" {
		return nil, nil, missingParam(b.function, "interval")
	}
	if b.timePeriod < 0 {
		return nil, nil, invalidParam(b.function, "time_period", "must be positive")
	}
	if b.month != "" {
		switch b.interval {
		case IndicatorDaily, IndicatorWeekly, IndicatorMonthly:
			return nil, nil, invalidParam(b.function, "month", "is only valid for intraday intervals")
		}
	}
	required := []Param{
		{Key: "symbol", Value: b.symbol},
		{Key: "interval", Value: interval},
	}
	optional := []Param{
		{Key: "series_type", Value: b.seriesType},
		{Key: "month", Value: b.month},
	}
	if b.timePeriod > 0 {
		optional = append(optional, Param{Key: "time_period", Value: strconv.Itoa(b.timePeriod)})
	}
	for _, p := range b.extra {
		switch p.Key {
		case "symbol", "interval", "series_type", "month", "time_period":
			return nil, nil, invalidParam(b.function, p.Key, "has a dedicated builder method")
		}
	}
	return required, append(optional, b.extra...), nil
}

// URL returns the request URL without sending anything.
func (b *TechnicalIndicatorBuilder) URL() (string, error) {
	required, optional, err := b.query()
	if err != nil {
		return "", err
	}
	return b.client.buildURL(b.function, required, optional)
}

// JSON fetches and decodes the indicator.
func (b *TechnicalIndicatorBuilder) JSON(ctx context.Context) (*TechnicalIndicator, error) {
	required, optional, err := b.query()
	if err != nil {
		return nil, err
	}
	return fetch(ctx, b.client, b.function, required, optional, decodeTechnicalIndicator)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case interface{ String() string }:
		return x.String()
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return strings.Trim(string(b), `"`)
	}
}
