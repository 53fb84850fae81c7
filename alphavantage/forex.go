package alphavantage

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ForexFunction selects which FX_* function is called.
type ForexFunction int

const (
	// ForexIntraday requires an interval.
	ForexIntraday ForexFunction = iota + 1
	ForexDaily
	ForexWeekly
	ForexMonthly
)

func (f ForexFunction) String() string {
	switch f {
	case ForexIntraday:
		return "FX_INTRADAY"
	case ForexDaily:
		return "FX_DAILY"
	case ForexWeekly:
		return "FX_WEEKLY"
	case ForexMonthly:
		return "FX_MONTHLY"
	default:
		return ""
	}
}

// Forex is an OHLC series for a currency pair.
type Forex struct {
	information   string
	symbolFrom    string
	symbolTo      string
	lastRefreshed string
	interval      string
	outputSize    string
	timeZone      string
	entries       []ForexEntry
}

func (f *Forex) Information() string   { return f.information }
func (f *Forex) SymbolFrom() string    { return f.symbolFrom }
func (f *Forex) SymbolTo() string      { return f.symbolTo }
func (f *Forex) LastRefreshed() string { return f.lastRefreshed }
func (f *Forex) TimeZone() string      { return f.timeZone }

// Interval is set for intraday series only.
func (f *Forex) Interval() (string, bool) { return f.interval, f.interval != "" }

// OutputSize is set for intraday and daily series only.
func (f *Forex) OutputSize() (string, bool) { return f.outputSize, f.outputSize != "" }

// Entries are ordered newest first.
func (f *Forex) Entries() []ForexEntry               { return f.entries }
func (f *Forex) Find(time string) (ForexEntry, bool) { return findEntry(f.entries, time) }
func (f *Forex) Latest() (ForexEntry, bool)          { return latestEntry(f.entries) }
func (f *Forex) LatestN(n int) ([]ForexEntry, error) { return latestEntries(f.entries, n) }

// ForexEntry is one bar of a currency pair.
type ForexEntry struct {
	time  string
	open  decimal.Decimal
	high  decimal.Decimal
	low   decimal.Decimal
	close decimal.Decimal
}

func (e ForexEntry) Time() string           { return e.time }
func (e ForexEntry) Open() decimal.Decimal  { return e.open }
func (e ForexEntry) High() decimal.Decimal  { return e.high }
func (e ForexEntry) Low() decimal.Decimal   { return e.low }
func (e ForexEntry) Close() decimal.Decimal { return e.close }

func decodeForex(function string, body []byte) (*Forex, error) {
	top, seriesKey, err := decodeTopMatching(function, body, isSeriesKey, "Time Series FX")
	if err != nil {
		return nil, err
	}
	meta, err := decodeMeta(function, top)
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(top[seriesKey], &raw); err != nil {
		return nil, &DecodeError{Function: function, Field: seriesKey, Err: err}
	}

	p := parser{function: function}
	fx := &Forex{
		information:   p.requiredField(meta, "Information"),
		symbolFrom:    p.requiredField(meta, "From Symbol"),
		symbolTo:      p.requiredField(meta, "To Symbol"),
		lastRefreshed: p.requiredField(meta, "Last Refreshed"),
		timeZone:      p.requiredField(meta, "Time Zone"),
		entries:       make([]ForexEntry, 0, len(raw)),
	}
	fx.interval, _ = meta.get("Interval")
	fx.outputSize, _ = meta.get("Output Size")

	for time, r := range raw {
		f, err := decodeFields(r)
		if err != nil {
			return nil, &DecodeError{Function: function, Field: time, Err: err}
		}
		p.only(time, f, "open", "high", "low", "close")
		fx.entries = append(fx.entries, ForexEntry{
			time:  time,
			open:  p.decimal(time+" open", p.requiredField(f, "open")),
			high:  p.decimal(time+" high", p.requiredField(f, "high")),
			low:   p.decimal(time+" low", p.requiredField(f, "low")),
			close: p.decimal(time+" close", p.requiredField(f, "close")),
		})
	}
	if p.err != nil {
		return nil, p.err
	}
	sortNewestFirst(fx.entries)
	return fx, nil
}

// ForexBuilder requests one of the FX_* functions.
type ForexBuilder struct {
	client     *Client
	function   ForexFunction
	fromSymbol string
	toSymbol   string
	interval   TimeSeriesInterval
	outputSize OutputSize
}

// Forex returns a builder for a currency pair series, e.g. "EUR" to "USD".
func (c *Client) Forex(function ForexFunction, fromSymbol, toSymbol string) *ForexBuilder {
	return &ForexBuilder{client: c, function: function, fromSymbol: fromSymbol, toSymbol: toSymbol}
}

// Interval sets the bar size; required for ForexIntraday and rejected otherwise.
func (b *ForexBuilder) Interval(interval TimeSeriesInterval) *ForexBuilder {
	b.interval = interval
	return b
}

// OutputSize applies to ForexIntraday and ForexDaily.
func (b *ForexBuilder) OutputSize(size OutputSize) *ForexBuilder {
	b.outputSize = size
	return b
}

func (b *ForexBuilder) query() (string, []Param, []Param, error) {
	function := b.function.String()
	if function == "" {
		return "", nil, nil, invalidParam("", "function", "is not a known forex function")
	}
	required := []Param{
		{Key: "from_symbol", Value: b.fromSymbol},
		{Key: "to_symbol", Value: b.toSymbol},
	}
	var optional []Param

	if b.function == ForexIntraday {
		if b.interval.String() == "" {
			return "", nil, nil, missingParam(function, "interval")
		}
		required = append(required, Param{Key: "interval", Value: b.interval.String()})
	} else if b.interval != intervalNone {
		return "", nil, nil, invalidParam(function, "interval", "is only valid for intraday series")
	}

	switch b.function {
	case ForexIntraday, ForexDaily:
		optional = append(optional, Param{Key: "outputsize", Value: b.outputSize.String()})
	default:
		if b.outputSize != outputSizeDefault {
			return "", nil, nil, invalidParam(function, "outputsize", "is only valid for intraday and daily series")
		}
	}
	return function, required, optional, nil
}

// URL returns the request URL without sending anything.
func (b *ForexBuilder) URL() (string, error) {
	function, required, optional, err := b.query()
	if err != nil {
		return "", err
	}
	return b.client.buildURL(function, required, optional)
}

// JSON fetches and decodes the series.
func (b *ForexBuilder) JSON(ctx context.Context) (*Forex, error) {
	function, required, optional, err := b.query()
	if err != nil {
		return nil, err
	}
	return fetch(ctx, b.client, function, required, optional, decodeForex)
}
