package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CryptoFunction selects which DIGITAL_CURRENCY_* function is called. Every variant
// is refreshed daily at midnight UTC and quotes prices in the market currency.
type CryptoFunction int

const (
	CryptoDaily CryptoFunction = iota + 1
	CryptoWeekly
	CryptoMonthly
)

func (f CryptoFunction) String() string {
	switch f {
	case CryptoDaily:
		return "DIGITAL_CURRENCY_DAILY"
	case CryptoWeekly:
		return "DIGITAL_CURRENCY_WEEKLY"
	case CryptoMonthly:
		return "DIGITAL_CURRENCY_MONTHLY"
	default:
		return ""
	}
}

// Crypto is a price series of a digital currency traded on a market.
type Crypto struct {
	information   string
	digitalCode   string
	digitalName   string
	marketCode    string
	marketName    string
	lastRefreshed string
	timeZone      string
	entries       []CryptoEntry
}

func (c *Crypto) Information() string   { return c.information }
func (c *Crypto) DigitalCode() string   { return c.digitalCode }
func (c *Crypto) DigitalName() string   { return c.digitalName }
func (c *Crypto) MarketCode() string    { return c.marketCode }
func (c *Crypto) MarketName() string    { return c.marketName }
func (c *Crypto) LastRefreshed() string { return c.lastRefreshed }
func (c *Crypto) TimeZone() string      { return c.timeZone }

// Entries are ordered newest first.
func (c *Crypto) Entries() []CryptoEntry               { return c.entries }
func (c *Crypto) Find(time string) (CryptoEntry, bool) { return findEntry(c.entries, time) }
func (c *Crypto) Latest() (CryptoEntry, bool)          { return latestEntry(c.entries) }
func (c *Crypto) LatestN(n int) ([]CryptoEntry, error) { return latestEntries(c.entries, n) }

// CryptoEntry is one bar. Market prices are in the market currency; the USD columns
// and market cap are only present in the older response layout.
type CryptoEntry struct {
	time        string
	marketOpen  decimal.Decimal
	marketHigh  decimal.Decimal
	marketLow   decimal.Decimal
	marketClose decimal.Decimal
	usdOpen     decimal.NullDecimal
	usdHigh     decimal.NullDecimal
	usdLow      decimal.NullDecimal
	usdClose    decimal.NullDecimal
	volume      decimal.Decimal
	marketCap   decimal.NullDecimal
}

func (e CryptoEntry) Time() string                   { return e.time }
func (e CryptoEntry) MarketOpen() decimal.Decimal    { return e.marketOpen }
func (e CryptoEntry) MarketHigh() decimal.Decimal    { return e.marketHigh }
func (e CryptoEntry) MarketLow() decimal.Decimal     { return e.marketLow }
func (e CryptoEntry) MarketClose() decimal.Decimal   { return e.marketClose }
func (e CryptoEntry) USDOpen() decimal.NullDecimal   { return e.usdOpen }
func (e CryptoEntry) USDHigh() decimal.NullDecimal   { return e.usdHigh }
func (e CryptoEntry) USDLow() decimal.NullDecimal    { return e.usdLow }
func (e CryptoEntry) USDClose() decimal.NullDecimal  { return e.usdClose }
func (e CryptoEntry) Volume() decimal.Decimal        { return e.volume }
func (e CryptoEntry) MarketCap() decimal.NullDecimal { return e.marketCap }

// cryptoColumns maps the ordinal of a vendor key ("1a", "4b", "5") to where it lands.
// Plain "1".."4" is the current layout, "1a".."4a" the older one.
var cryptoColumns = map[string]string{
	"1": "market open", "1a": "market open", "1b": "usd open",
	"2": "market high", "2a": "market high", "2b": "usd high",
	"3": "market low", "3a": "market low", "3b": "usd low",
	"4": "market close", "4a": "market close", "4b": "usd close",
	"5": "volume", "6": "market cap",
}

func decodeCrypto(function string, body []byte) (*Crypto, error) {
	top, seriesKey, err := decodeTopMatching(function, body, isSeriesKey, "Time Series (Digital Currency)")
	if err != nil {
		return nil, err
	}
	meta, err := decodeMeta(function, top)
	if err != nil {
		return nil, err
	}
	var raw map[string]map[string]string
	if err := json.Unmarshal(top[seriesKey], &raw); err != nil {
		return nil, &DecodeError{Function: function, Field: seriesKey, Err: err}
	}

	p := parser{function: function}
	cr := &Crypto{
		information:   p.requiredField(meta, "Information"),
		digitalCode:   p.requiredField(meta, "Digital Currency Code"),
		digitalName:   p.requiredField(meta, "Digital Currency Name"),
		marketCode:    p.requiredField(meta, "Market Code"),
		marketName:    p.requiredField(meta, "Market Name"),
		lastRefreshed: p.requiredField(meta, "Last Refreshed"),
		timeZone:      p.requiredField(meta, "Time Zone"),
		entries:       make([]CryptoEntry, 0, len(raw)),
	}

	for time, values := range raw {
		cols := make(fields, len(values))
		for k, v := range values {
			col, ok := cryptoColumns[ordinal(k)]
			if !ok {
				p.fail(time, fmt.Errorf("%w %q", errUnknownField, k))
				continue
			}
			cols[col] = v
		}
		e := CryptoEntry{
			time:        time,
			marketOpen:  p.decimal(time+" open", p.requiredField(cols, "market open")),
			marketHigh:  p.decimal(time+" high", p.requiredField(cols, "market high")),
			marketLow:   p.decimal(time+" low", p.requiredField(cols, "market low")),
			marketClose: p.decimal(time+" close", p.requiredField(cols, "market close")),
			volume:      p.decimal(time+" volume", p.requiredField(cols, "volume")),
			usdOpen:     p.nullDecimal(time+" open (USD)", cols["usd open"]),
			usdHigh:     p.nullDecimal(time+" high (USD)", cols["usd high"]),
			usdLow:      p.nullDecimal(time+" low (USD)", cols["usd low"]),
			usdClose:    p.nullDecimal(time+" close (USD)", cols["usd close"]),
			marketCap:   p.nullDecimal(time+" market cap (USD)", cols["market cap"]),
		}
		cr.entries = append(cr.entries, e)
	}
	if p.err != nil {
		return nil, p.err
	}
	sortNewestFirst(cr.entries)
	return cr, nil
}

// CryptoBuilder requests one of the DIGITAL_CURRENCY_* functions.
type CryptoBuilder struct {
	client   *Client
	function CryptoFunction
	symbol   string
	market   string
}

// Crypto returns a builder for the series of symbol (e.g. "BTC") on market (e.g. "CNY").
func (c *Client) Crypto(function CryptoFunction, symbol, market string) *CryptoBuilder {
	return &CryptoBuilder{client: c, function: function, symbol: symbol, market: market}
}

func (b *CryptoBuilder) query() (string, []Param, error) {
	function := b.function.String()
	if function == "" {
		return "", nil, invalidParam("", "function", "is not a known crypto function")
	}
	return function, []Param{
		{Key: "symbol", Value: b.symbol},
		{Key: "market", Value: b.market},
	}, nil
}

// URL returns the request URL without sending anything.
func (b *CryptoBuilder) URL() (string, error) {
	function, required, err := b.query()
	if err != nil {
		return "", err
	}
	return b.client.buildURL(function, required, nil)
}

// JSON fetches and decodes the series.
func (b *CryptoBuilder) JSON(ctx context.Context) (*Crypto, error) {
	function, required, err := b.query()
	if err != nil {
		return nil, err
	}
	return fetch(ctx, b.client, function, required, nil, decodeCrypto)
}
