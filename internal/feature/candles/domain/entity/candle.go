// Package entity defines the domain models for the candles feature.
package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Supported candle intervals.
const (
	IntervalDay   = "1day"
	IntervalWeek  = "1week"
	IntervalMonth = "1month"
)

// Intervals lists every interval that can be ingested and queried.
var Intervals = []string{IntervalDay, IntervalWeek, IntervalMonth}

// ValidInterval reports whether s is one of Intervals.
func ValidInterval(s string) bool {
	for _, iv := range Intervals {
		if iv == s {
			return true
		}
	}
	return false
}

// AssetKind selects which Alpha Vantage series family an asset is read from.
type AssetKind string

const (
	AssetStock  AssetKind = "stock"
	AssetForex  AssetKind = "forex"
	AssetCrypto AssetKind = "crypto"
)

var ErrInvalidAsset = errors.New("invalid asset")

// Asset is something candles can be ingested for. Market is the quote currency
// for forex and crypto assets and is empty for stocks.
type Asset struct {
	Kind   AssetKind
	Symbol string
	Market string
}

// Code is the key candles are stored under, e.g. "IBM", "EUR/USD" or "BTC/USD".
func (a Asset) Code() string {
	if a.Kind == AssetStock || a.Market == "" {
		return a.Symbol
	}
	return a.Symbol + "/" + a.Market
}

// Validate checks that the fields required by Kind are set.
func (a Asset) Validate() error {
	if strings.TrimSpace(a.Symbol) == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidAsset)
	}
	switch a.Kind {
	case AssetStock:
		return nil
	case AssetForex, AssetCrypto:
		if strings.TrimSpace(a.Market) == "" {
			return fmt.Errorf("%w: %s %s needs a market", ErrInvalidAsset, a.Kind, a.Symbol)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidAsset, a.Kind)
	}
}

// Candle represents OHLCV (Open, High, Low, Close, Volume) candlestick data
// for an asset at a specific time interval.
type Candle struct {
	Symbol   string    // Asset code (e.g., "IBM", "EUR/USD", "BTC/USD")
	Interval string    // Time interval (e.g., "1day", "1week", "1month")
	Time     time.Time // Timestamp for the start of this candle period
	Open     decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Close    decimal.Decimal
	Volume   decimal.Decimal // zero for forex pairs
}
