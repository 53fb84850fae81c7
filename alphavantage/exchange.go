package alphavantage

import (
	"context"

	"github.com/shopspring/decimal"
)

const functionExchangeRate = "CURRENCY_EXCHANGE_RATE"

// Exchange is the realtime rate between two physical or digital currencies.
// Only the rate is guaranteed; the other fields are empty when the API leaves them out.
type Exchange struct {
	codeFrom      string
	nameFrom      string
	codeTo        string
	nameTo        string
	rate          decimal.Decimal
	lastRefreshed string
	timeZone      string
	bidPrice      decimal.NullDecimal
	askPrice      decimal.NullDecimal
}

func (e *Exchange) CodeFrom() string      { return e.codeFrom }
func (e *Exchange) NameFrom() string      { return e.nameFrom }
func (e *Exchange) CodeTo() string        { return e.codeTo }
func (e *Exchange) NameTo() string        { return e.nameTo }
func (e *Exchange) Rate() decimal.Decimal { return e.rate }
func (e *Exchange) LastRefreshed() string { return e.lastRefreshed }
func (e *Exchange) TimeZone() string      { return e.timeZone }

// BidPrice is invalid when the API reports "-".
func (e *Exchange) BidPrice() decimal.NullDecimal { return e.bidPrice }

// AskPrice is invalid when the API reports "-".
func (e *Exchange) AskPrice() decimal.NullDecimal { return e.askPrice }

type exchangePayload struct {
	FromCode      string `json:"1. From_Currency Code"`
	FromName      string `json:"2. From_Currency Name"`
	ToCode        string `json:"3. To_Currency Code"`
	ToName        string `json:"4. To_Currency Name"`
	Rate          string `json:"5. Exchange Rate"`
	LastRefreshed string `json:"6. Last Refreshed"`
	TimeZone      string `json:"7. Time Zone"`
	BidPrice      string `json:"8. Bid Price"`
	AskPrice      string `json:"9. Ask Price"`
}

func decodeExchange(function string, body []byte) (*Exchange, error) {
	const key = "Realtime Currency Exchange Rate"
	top, err := decodeTop(function, body, key)
	if err != nil {
		return nil, err
	}
	var x exchangePayload
	if err := strictUnmarshal(top[key], &x); err != nil {
		return nil, &DecodeError{Function: function, Field: key, Err: err}
	}

	p := parser{function: function}
	e := &Exchange{
		codeFrom:      x.FromCode,
		nameFrom:      x.FromName,
		codeTo:        x.ToCode,
		nameTo:        x.ToName,
		rate:          p.decimal("5. Exchange Rate", x.Rate),
		lastRefreshed: x.LastRefreshed,
		timeZone:      x.TimeZone,
		bidPrice:      p.nullDecimal("8. Bid Price", x.BidPrice),
		askPrice:      p.nullDecimal("9. Ask Price", x.AskPrice),
	}
	if p.err != nil {
		return nil, p.err
	}
	return e, nil
}

// ExchangeBuilder requests CURRENCY_EXCHANGE_RATE.
type ExchangeBuilder struct {
	client       *Client
	fromCurrency string
	toCurrency   string
}

// Exchange returns a builder for the rate from one currency to another, e.g. "BTC" to "EUR".
func (c *Client) Exchange(fromCurrency, toCurrency string) *ExchangeBuilder {
	return &ExchangeBuilder{client: c, fromCurrency: fromCurrency, toCurrency: toCurrency}
}

func (b *ExchangeBuilder) params() []Param {
	return []Param{
		{Key: "from_currency", Value: b.fromCurrency},
		{Key: "to_currency", Value: b.toCurrency},
	}
}

// URL returns the request URL without sending anything.
func (b *ExchangeBuilder) URL() (string, error) {
	return b.client.buildURL(functionExchangeRate, b.params(), nil)
}

// JSON fetches and decodes the exchange rate.
func (b *ExchangeBuilder) JSON(ctx context.Context) (*Exchange, error) {
	return fetch(ctx, b.client, functionExchangeRate, b.params(), nil, decodeExchange)
}
