package alphavantage

import (
	"context"

	"github.com/shopspring/decimal"
)

const functionGlobalQuote = "GLOBAL_QUOTE"

// Quote is the latest price and volume of a security.
type Quote struct {
	symbol           string
	open             decimal.Decimal
	high             decimal.Decimal
	low              decimal.Decimal
	price            decimal.Decimal
	volume           int64
	latestTradingDay string
	previousClose    decimal.Decimal
	change           decimal.Decimal
	changePercent    decimal.Decimal
}

func (q *Quote) Symbol() string                 { return q.symbol }
func (q *Quote) Open() decimal.Decimal          { return q.open }
func (q *Quote) High() decimal.Decimal          { return q.high }
func (q *Quote) Low() decimal.Decimal           { return q.low }
func (q *Quote) Price() decimal.Decimal         { return q.price }
func (q *Quote) Volume() int64                  { return q.volume }
func (q *Quote) LatestTradingDay() string       { return q.latestTradingDay }
func (q *Quote) PreviousClose() decimal.Decimal { return q.previousClose }
func (q *Quote) Change() decimal.Decimal        { return q.change }

// ChangePercent is the change in percent, "0.5132%" decodes to 0.5132.
func (q *Quote) ChangePercent() decimal.Decimal { return q.changePercent }

type globalQuotePayload struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

func decodeQuote(function string, body []byte) (*Quote, error) {
	top, err := decodeTop(function, body, "Global Quote")
	if err != nil {
		return nil, err
	}
	var g globalQuotePayload
	if err := strictUnmarshal(top["Global Quote"], &g); err != nil {
		return nil, &DecodeError{Function: function, Field: "Global Quote", Err: err}
	}

	p := parser{function: function}
	q := &Quote{
		symbol:           p.required("01. symbol", g.Symbol),
		open:             p.decimal("02. open", g.Open),
		high:             p.decimal("03. high", g.High),
		low:              p.decimal("04. low", g.Low),
		price:            p.decimal("05. price", g.Price),
		volume:           p.int64("06. volume", g.Volume),
		latestTradingDay: p.required("07. latest trading day", g.LatestTradingDay),
		previousClose:    p.decimal("08. previous close", g.PreviousClose),
		change:           p.decimal("09. change", g.Change),
		changePercent:    p.percent("10. change percent", g.ChangePercent),
	}
	if p.err != nil {
		return nil, p.err
	}
	return q, nil
}

// QuoteBuilder requests GLOBAL_QUOTE.
type QuoteBuilder struct {
	client *Client
	symbol string
}

// Quote returns a builder for the latest quote of symbol.
func (c *Client) Quote(symbol string) *QuoteBuilder {
	return &QuoteBuilder{client: c, symbol: symbol}
}

func (b *QuoteBuilder) params() []Param {
	return []Param{{Key: "symbol", Value: b.symbol}}
}

// URL returns the request URL without sending anything.
func (b *QuoteBuilder) URL() (string, error) {
	return b.client.buildURL(functionGlobalQuote, b.params(), nil)
}

// JSON fetches and decodes the quote.
func (b *QuoteBuilder) JSON(ctx context.Context) (*Quote, error) {
	return fetch(ctx, b.client, functionGlobalQuote, b.params(), nil, decodeQuote)
}
