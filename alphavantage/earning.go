package alphavantage

import (
	"context"

	"github.com/shopspring/decimal"
)

const functionEarnings = "EARNINGS"

// Earning holds the annual and quarterly EPS history of a company.
type Earning struct {
	symbol    string
	annual    []AnnualEarning
	quarterly []QuarterlyEarning
}

func (e *Earning) Symbol() string { return e.symbol }

// Annual is ordered by fiscal date, newest first.
func (e *Earning) Annual() []AnnualEarning { return e.annual }

// Quarterly is ordered by fiscal date, newest first.
func (e *Earning) Quarterly() []QuarterlyEarning { return e.quarterly }

// LatestQuarter returns the most recent quarterly report.
func (e *Earning) LatestQuarter() (QuarterlyEarning, bool) { return latestEntry(e.quarterly) }

type AnnualEarning struct {
	fiscalDateEnding string
	reportedEPS      decimal.NullDecimal
}

// Time is the fiscal date ending, so annual entries work with the series helpers.
func (a AnnualEarning) Time() string                     { return a.fiscalDateEnding }
func (a AnnualEarning) FiscalDateEnding() string         { return a.fiscalDateEnding }
func (a AnnualEarning) ReportedEPS() decimal.NullDecimal { return a.reportedEPS }

type QuarterlyEarning struct {
	fiscalDateEnding   string
	reportedDate       string
	reportedEPS        decimal.NullDecimal
	estimatedEPS       decimal.NullDecimal
	surprise           decimal.NullDecimal
	surprisePercentage decimal.NullDecimal
	reportTime         string
}

func (q QuarterlyEarning) Time() string                            { return q.fiscalDateEnding }
func (q QuarterlyEarning) FiscalDateEnding() string                { return q.fiscalDateEnding }
func (q QuarterlyEarning) ReportedDate() string                    { return q.reportedDate }
func (q QuarterlyEarning) ReportedEPS() decimal.NullDecimal        { return q.reportedEPS }
func (q QuarterlyEarning) EstimatedEPS() decimal.NullDecimal       { return q.estimatedEPS }
func (q QuarterlyEarning) Surprise() decimal.NullDecimal           { return q.surprise }
func (q QuarterlyEarning) SurprisePercentage() decimal.NullDecimal { return q.surprisePercentage }

// ReportTime is "pre-market" or "post-market" when the API provides it.
func (q QuarterlyEarning) ReportTime() string { return q.reportTime }

type earningsPayload struct {
	Symbol string `json:"symbol"`
	Annual []struct {
		FiscalDateEnding string `json:"fiscalDateEnding"`
		ReportedEPS      string `json:"reportedEPS"`
	} `json:"annualEarnings"`
	Quarterly []struct {
		FiscalDateEnding   string `json:"fiscalDateEnding"`
		ReportedDate       string `json:"reportedDate"`
		ReportedEPS        string `json:"reportedEPS"`
		EstimatedEPS       string `json:"estimatedEPS"`
		Surprise           string `json:"surprise"`
		SurprisePercentage string `json:"surprisePercentage"`
		ReportTime         string `json:"reportTime"`
	} `json:"quarterlyEarnings"`
}

func decodeEarning(function string, body []byte) (*Earning, error) {
	if _, err := decodeTop(function, body, "symbol"); err != nil {
		return nil, err
	}
	var x earningsPayload
	if err := strictUnmarshal(body, &x); err != nil {
		return nil, &DecodeError{Function: function, Err: err}
	}

	p := parser{function: function}
	e := &Earning{
		symbol:    p.required("symbol", x.Symbol),
		annual:    make([]AnnualEarning, 0, len(x.Annual)),
		quarterly: make([]QuarterlyEarning, 0, len(x.Quarterly)),
	}
	for _, a := range x.Annual {
		e.annual = append(e.annual, AnnualEarning{
			fiscalDateEnding: p.required("annualEarnings fiscalDateEnding", a.FiscalDateEnding),
			reportedEPS:      p.nullDecimal(a.FiscalDateEnding+" reportedEPS", a.ReportedEPS),
		})
	}
	for _, q := range x.Quarterly {
		e.quarterly = append(e.quarterly, QuarterlyEarning{
			fiscalDateEnding:   p.required("quarterlyEarnings fiscalDateEnding", q.FiscalDateEnding),
			reportedDate:       q.ReportedDate,
			reportedEPS:        p.nullDecimal(q.FiscalDateEnding+" reportedEPS", q.ReportedEPS),
			estimatedEPS:       p.nullDecimal(q.FiscalDateEnding+" estimatedEPS", q.EstimatedEPS),
			surprise:           p.nullDecimal(q.FiscalDateEnding+" surprise", q.Surprise),
			surprisePercentage: p.nullDecimal(q.FiscalDateEnding+" surprisePercentage", q.SurprisePercentage),
			reportTime:         q.ReportTime,
		})
	}
	if p.err != nil {
		return nil, p.err
	}
	sortNewestFirst(e.annual)
	sortNewestFirst(e.quarterly)
	return e, nil
}

// EarningBuilder requests EARNINGS.
type EarningBuilder struct {
	client *Client
	symbol string
}

// Earning returns a builder for the earnings history of symbol.
func (c *Client) Earning(symbol string) *EarningBuilder {
	return &EarningBuilder{client: c, symbol: symbol}
}

func (b *EarningBuilder) params() []Param {
	return []Param{{Key: "symbol", Value: b.symbol}}
}

// URL returns the request URL without sending anything.
func (b *EarningBuilder) URL() (string, error) {
	return b.client.buildURL(functionEarnings, b.params(), nil)
}

// JSON fetches and decodes the earnings.
func (b *EarningBuilder) JSON(ctx context.Context) (*Earning, error) {
	return fetch(ctx, b.client, functionEarnings, b.params(), nil, decodeEarning)
}
