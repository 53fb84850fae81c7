// Package dto defines data transfer objects for the quotes HTTP API.
// 価格は丸めずに JSON の数値として返します。
package dto

import "encoding/json"

type QuoteResponse struct {
	Symbol           string      `json:"symbol"`
	Open             json.Number `json:"open"`
	High             json.Number `json:"high"`
	Low              json.Number `json:"low"`
	Price            json.Number `json:"price"`
	Volume           int64       `json:"volume"`
	LatestTradingDay string      `json:"latest_trading_day"`
	PreviousClose    json.Number `json:"previous_close"`
	Change           json.Number `json:"change"`
	ChangePercent    json.Number `json:"change_percent"`
}

type ExchangeRateResponse struct {
	From          string       `json:"from"`
	FromName      string       `json:"from_name"`
	To            string       `json:"to"`
	ToName        string       `json:"to_name"`
	Rate          json.Number  `json:"rate"`
	Bid           *json.Number `json:"bid,omitempty"`
	Ask           *json.Number `json:"ask,omitempty"`
	LastRefreshed string       `json:"last_refreshed"`
	TimeZone      string       `json:"time_zone"`
}

type MatchResponse struct {
	Symbol      string      `json:"symbol"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Region      string      `json:"region"`
	MarketOpen  string      `json:"market_open"`
	MarketClose string      `json:"market_close"`
	TimeZone    string      `json:"time_zone"`
	Currency    string      `json:"currency"`
	Score       json.Number `json:"score"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
