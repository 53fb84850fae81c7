package alphavantage

import (
	"context"

	"github.com/shopspring/decimal"
)

// Economic indicator functions known to take no symbol.
const (
	RealGDP          = "REAL_GDP"
	RealGDPPerCapita = "REAL_GDP_PER_CAPITA"
	TreasuryYield    = "TREASURY_YIELD"
	FederalFundsRate = "FEDERAL_FUNDS_RATE"
	CPI              = "CPI"
	Inflation        = "INFLATION"
	RetailSales      = "RETAIL_SALES"
	Durables         = "DURABLES"
	Unemployment     = "UNEMPLOYMENT"
	NonfarmPayroll   = "NONFARM_PAYROLL"
)

// EconomicIndicator is a US macro series such as REAL_GDP or TREASURY_YIELD.
type EconomicIndicator struct {
	name     string
	interval string
	unit     string
	data     []EconomicEntry
}

func (e *EconomicIndicator) Name() string     { return e.name }
func (e *EconomicIndicator) Interval() string { return e.interval }
func (e *EconomicIndicator) Unit() string     { return e.unit }

// Data is ordered newest first.
func (e *EconomicIndicator) Data() []EconomicEntry                  { return e.data }
func (e *EconomicIndicator) Find(date string) (EconomicEntry, bool) { return findEntry(e.data, date) }
func (e *EconomicIndicator) Latest() (EconomicEntry, bool)          { return latestEntry(e.data) }
func (e *EconomicIndicator) LatestN(n int) ([]EconomicEntry, error) { return latestEntries(e.data, n) }

// EconomicEntry is one observation. Value is invalid where the API reports ".".
type EconomicEntry struct {
	date  string
	value decimal.NullDecimal
}

func (e EconomicEntry) Time() string               { return e.date }
func (e EconomicEntry) Date() string               { return e.date }
func (e EconomicEntry) Value() decimal.NullDecimal { return e.value }

type economicPayload struct {
	Name     string `json:"name"`
	Interval string `json:"interval"`
	Unit     string `json:"unit"`
	Data     []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"data"`
}

func decodeEconomicIndicator(function string, body []byte) (*EconomicIndicator, error) {
	if _, err := decodeTop(function, body, "data"); err != nil {
		return nil, err
	}
	var x economicPayload
	if err := strictUnmarshal(body, &x); err != nil {
		return nil, &DecodeError{Function: function, Err: err}
	}

	p := parser{function: function}
	ei := &EconomicIndicator{
		name:     p.required("name", x.Name),
		interval: p.required("interval", x.Interval),
		unit:     x.Unit,
		data:     make([]EconomicEntry, 0, len(x.Data)),
	}
	for _, d := range x.Data {
		ei.data = append(ei.data, EconomicEntry{
			date:  p.required("data date", d.Date),
			value: p.nullDecimal(d.Date+" value", d.Value),
		})
	}
	if p.err != nil {
		return nil, p.err
	}
	sortNewestFirst(ei.data)
	return ei, nil
}

// EconomicIndicatorBuilder requests one of the economic indicator functions.
type EconomicIndicatorBuilder struct {
	client   *Client
	function string
	interval string
	maturity string
}

// EconomicIndicator returns a builder for function, e.g. RealGDP or TreasuryYield.
func (c *Client) EconomicIndicator(function string) *EconomicIndicatorBuilder {
	return &EconomicIndicatorBuilder{client: c, function: function}
}

// Interval is "daily", "weekly", "monthly", "quarterly", "semiannual" or "annual",
// depending on what the function supports.
func (b *EconomicIndicatorBuilder) Interval(interval string) *EconomicIndicatorBuilder {
	b.interval = interval
	return b
}

// Maturity applies to TreasuryYield only, e.g. "10year".
func (b *EconomicIndicatorBuilder) Maturity(maturity string) *EconomicIndicatorBuilder {
	b.maturity = maturity
	return b
}

func (b *EconomicIndicatorBuilder) params() ([]Param, error) {
	if b.maturity != "" && b.function != TreasuryYield {
		return nil, invalidParam(b.function, "maturity", "is only valid for "+TreasuryYield)
	}
	return []Param{
		{Key: "interval", Value: b.interval},
		{Key: "maturity", Value: b.maturity},
	}, nil
}

// URL returns the request URL without sending anything.
func (b *EconomicIndicatorBuilder) URL() (string, error) {
	optional, err := b.params()
	if err != nil {
		return "", err
	}
	return b.client.buildURL(b.function, nil, optional)
}

// JSON fetches and decodes the indicator.
func (b *EconomicIndicatorBuilder) JSON(ctx context.Context) (*EconomicIndicator, error) {
	optional, err := b.params()
	if err != nil {
		return nil, err
	}
	return fetch(ctx, b.client, b.function, nil, optional, decodeEconomicIndicator)
}
