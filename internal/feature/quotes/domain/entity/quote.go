// Package entity defines the domain models for the quotes feature.
package entity

import "github.com/shopspring/decimal"

// Quote is the latest price and volume of a stock (GLOBAL_QUOTE).
type Quote struct {
	Symbol           string
	Open             decimal.Decimal
	High             decimal.Decimal
	Low              decimal.Decimal
	Price            decimal.Decimal
	Volume           int64
	LatestTradingDay string
	PreviousClose    decimal.Decimal
	Change           decimal.Decimal
	// ChangePercent is in percent, e.g. 1.25 for "1.2500%".
	ChangePercent decimal.Decimal
}

// ExchangeRate is the realtime rate between two physical or digital currencies.
// Bid and Ask are nil when the API leaves them out.
type ExchangeRate struct {
	From          string
	FromName      string
	To            string
	ToName        string
	Rate          decimal.Decimal
	Bid           *decimal.Decimal
	Ask           *decimal.Decimal
	LastRefreshed string
	TimeZone      string
}

// Match is one SYMBOL_SEARCH result.
type Match struct {
	Symbol      string
	Name        string
	Type        string
	Region      string
	MarketOpen  string
	MarketClose string
	TimeZone    string
	Currency    string
	Score       decimal.Decimal
}
