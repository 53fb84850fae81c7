package alphavantage

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StockFunction selects which TIME_SERIES_* function is called.
type StockFunction int

const (
	// StockIntraday requires an interval.
	StockIntraday StockFunction = iota + 1
	StockDaily
	StockDailyAdjusted
	StockWeekly
	StockWeeklyAdjusted
	StockMonthly
	StockMonthlyAdjusted
)

func (f StockFunction) String() string {
	switch f {
	case StockIntraday:
		return "TIME_SERIES_INTRADAY"
	case StockDaily:
		return "TIME_SERIES_DAILY"
	case StockDailyAdjusted:
		return "TIME_SERIES_DAILY_ADJUSTED"
	case StockWeekly:
		return "TIME_SERIES_WEEKLY"
	case StockWeeklyAdjusted:
		return "TIME_SERIES_WEEKLY_ADJUSTED"
	case StockMonthly:
		return "TIME_SERIES_MONTHLY"
	case StockMonthlyAdjusted:
		return "TIME_SERIES_MONTHLY_ADJUSTED"
	default:
		return ""
	}
}

// TimeSeries is an OHLCV series for one equity.
type TimeSeries struct {
	information   string
	symbol        string
	lastRefreshed string
	interval      string
	outputSize    string
	timeZone      string
	entries       []TimeSeriesEntry
}

func (t *TimeSeries) Information() string   { return t.information }
func (t *TimeSeries) Symbol() string        { return t.symbol }
func (t *TimeSeries) LastRefreshed() string { return t.lastRefreshed }
func (t *TimeSeries) TimeZone() string      { return t.timeZone }

// Interval is set for intraday series only.
func (t *TimeSeries) Interval() (string, bool) { return t.interval, t.interval != "" }

// OutputSize is set for intraday and daily series only.
func (t *TimeSeries) OutputSize() (string, bool) { return t.outputSize, t.outputSize != "" }

// Entries are ordered newest first.
func (t *TimeSeries) Entries() []TimeSeriesEntry { return t.entries }

func (t *TimeSeries) Find(time string) (TimeSeriesEntry, bool) { return findEntry(t.entries, time) }
func (t *TimeSeries) Latest() (TimeSeriesEntry, bool)          { return latestEntry(t.entries) }

// LatestN returns the n newest entries or an error wrapping ErrNotEnoughEntries.
func (t *TimeSeries) LatestN(n int) ([]TimeSeriesEntry, error) { return latestEntries(t.entries, n) }

// TimeSeriesEntry is one bar. The adjusted fields are only valid for *_ADJUSTED functions.
type TimeSeriesEntry struct {
	time             string
	open             decimal.Decimal
	high             decimal.Decimal
	low              decimal.Decimal
	close            decimal.Decimal
	volume           int64
	adjustedClose    decimal.NullDecimal
	dividendAmount   decimal.NullDecimal
	splitCoefficient decimal.NullDecimal
}

func (e TimeSeriesEntry) Time() string                          { return e.time }
func (e TimeSeriesEntry) Open() decimal.Decimal                 { return e.open }
func (e TimeSeriesEntry) High() decimal.Decimal                 { return e.high }
func (e TimeSeriesEntry) Low() decimal.Decimal                  { return e.low }
func (e TimeSeriesEntry) Close() decimal.Decimal                { return e.close }
func (e TimeSeriesEntry) Volume() int64                         { return e.volume }
func (e TimeSeriesEntry) AdjustedClose() decimal.NullDecimal    { return e.adjustedClose }
func (e TimeSeriesEntry) DividendAmount() decimal.NullDecimal   { return e.dividendAmount }
func (e TimeSeriesEntry) SplitCoefficient() decimal.NullDecimal { return e.splitCoefficient }

func decodeTimeSeries(function string, body []byte) (*TimeSeries, error) {
	top, seriesKey, err := decodeTopMatching(function, body, isSeriesKey, "Time Series")
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
	ts := &TimeSeries{
		information:   p.requiredField(meta, "Information"),
		symbol:        p.requiredField(meta, "Symbol"),
		lastRefreshed: p.requiredField(meta, "Last Refreshed"),
		timeZone:      p.requiredField(meta, "Time Zone"),
		entries:       make([]TimeSeriesEntry, 0, len(raw)),
	}
	ts.interval, _ = meta.get("Interval")
	ts.outputSize, _ = meta.get("Output Size")

	for time, r := range raw {
		f, err := decodeFields(r)
		if err != nil {
			return nil, &DecodeError{Function: function, Field: time, Err: err}
		}
		p.only(time, f, stockEntryLabels...)
		e := TimeSeriesEntry{
			time:   time,
			open:   p.decimal(time+" open", p.requiredField(f, "open")),
			high:   p.decimal(time+" high", p.requiredField(f, "high")),
			low:    p.decimal(time+" low", p.requiredField(f, "low")),
			close:  p.decimal(time+" close", p.requiredField(f, "close")),
			volume: p.int64(time+" volume", p.requiredField(f, "volume")),
		}
		if v, ok := f.get("adjusted close"); ok {
			e.adjustedClose = p.nullDecimal(time+" adjusted close", v)
		}
		if v, ok := f.get("dividend amount"); ok {
			e.dividendAmount = p.nullDecimal(time+" dividend amount", v)
		}
		if v, ok := f.get("split coefficient"); ok {
			e.splitCoefficient = p.nullDecimal(time+" split coefficient", v)
		}
		ts.entries = append(ts.entries, e)
	}
	if p.err != nil {
		return nil, p.err
	}
	sortNewestFirst(ts.entries)
	return ts, nil
}

// stockEntryLabels are the only columns a stock series entry may carry.
var stockEntryLabels = []string{
	"open", "high", "low", "close", "volume",
	"adjusted close", "dividend amount", "split coefficient",
}

// decodeMeta reads the "Meta Data" object shared by the series endpoints.
// Unknown meta labels are ignored; only entries are held to a fixed column set.
func decodeMeta(function string, top map[string]json.RawMessage) (fields, error) {
	raw, ok := top["Meta Data"]
	if !ok {
		return nil, &DecodeError{Function: function, Field: "Meta Data", Err: errMissingField}
	}
	meta, err := decodeFields(raw)
	if err != nil {
		return nil, &DecodeError{Function: function, Field: "Meta Data", Err: err}
	}
	return meta, nil
}

// TimeSeriesBuilder requests one of the TIME_SERIES_* functions.
type TimeSeriesBuilder struct {
	client        *Client
	function      StockFunction
	symbol        string
	interval      TimeSeriesInterval
	outputSize    OutputSize
	adjusted      *bool
	extendedHours *bool
	month         string
}

// StockTime returns a builder for a stock time series of symbol.
func (c *Client) StockTime(function StockFunction, symbol string) *TimeSeriesBuilder {
	return &TimeSeriesBuilder{client: c, function: function, symbol: symbol}
}

// Interval sets the bar size; required for StockIntraday and rejected otherwise.
func (b *TimeSeriesBuilder) Interval(interval TimeSeriesInterval) *TimeSeriesBuilder {
	b.interval = interval
	return b
}

// OutputSize applies to StockIntraday, StockDaily and StockDailyAdjusted.
func (b *TimeSeriesBuilder) OutputSize(size OutputSize) *TimeSeriesBuilder {
	b.outputSize = size
	return b
}

// Adjusted toggles split and dividend adjustment of intraday bars.
func (b *TimeSeriesBuilder) Adjusted(adjusted bool) *TimeSeriesBuilder {
	b.adjusted = &adjusted
	return b
}

// ExtendedHours toggles pre and post market bars of intraday series.
func (b *TimeSeriesBuilder) ExtendedHours(extended bool) *TimeSeriesBuilder {
	b.extendedHours = &extended
	return b
}

// Month selects a historical intraday month in YYYY-MM format.
func (b *TimeSeriesBuilder) Month(month string) *TimeSeriesBuilder {
	b.month = month
	return b
}

func (b *TimeSeriesBuilder) query() (string, []Param, []Param, error) {
	function := b.function.String()
	if function == "" {
		return "", nil, nil, invalidParam("", "function", "is not a known stock function")
	}
	required := []Param{{Key: "symbol", Value: b.symbol}}
	var optional []Param

	switch b.function {
	case StockIntraday:
		if b.interval.String() == "" {
			return "", nil, nil, missingParam(function, "interval")
		}
		required = append(required, Param{Key: "interval", Value: b.interval.String()})
		if b.adjusted != nil {
			optional = append(optional, Param{Key: "adjusted", Value: boolParam(*b.adjusted)})
		}
		if b.extendedHours != nil {
			optional = append(optional, Param{Key: "extended_hours", Value: boolParam(*b.extendedHours)})
		}
		optional = append(optional, Param{Key: "month", Value: b.month})
	default:
		if b.interval != intervalNone {
			return "", nil, nil, invalidParam(function, "interval", "is only valid for intraday series")
		}
		if b.adjusted != nil || b.extendedHours != nil || b.month != "" {
			return "", nil, nil, invalidParam(function, "adjusted/extended_hours/month", "are only valid for intraday series")
		}
	}

	switch b.function {
	case StockIntraday, StockDaily, StockDailyAdjusted:
		optional = append(optional, Param{Key: "outputsize", Value: b.outputSize.String()})
	default:
		if b.outputSize != outputSizeDefault {
			return "", nil, nil, invalidParam(function, "outputsize", "is only valid for intraday and daily series")
		}
	}
	return function, required, optional, nil
}

// URL returns the request URL without sending anything.
func (b *TimeSeriesBuilder) URL() (string, error) {
	function, required, optional, err := b.query()
	if err != nil {
		return "", err
	}
	return b.client.buildURL(function, required, optional)
}

// JSON fetches and decodes the series.
func (b *TimeSeriesBuilder) JSON(ctx context.Context) (*TimeSeries, error) {
	function, required, optional, err := b.query()
	if err != nil {
		return nil, err
	}
	return fetch(ctx, b.client, function, required, optional, decodeTimeSeries)
}
