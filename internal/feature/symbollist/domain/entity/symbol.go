// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Kind is the asset class of a tracked symbol.
type Kind string

const (
	KindStock  Kind = "stock"
	KindForex  Kind = "forex"
	KindCrypto Kind = "crypto"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindStock, KindForex, KindCrypto:
		return true
	}
	return false
}

// Symbol is an entry of the watchlist the ingest job reads from.
//
// Code is the key candles are stored under: the ticker for stocks ("IBM")
// and "<Ticker>/<Market>" for forex and crypto pairs ("EUR/USD", "BTC/USD").
// Market is the quote currency of a pair and empty for stocks.
type Symbol struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"size:40;not null;uniqueIndex"`
	Kind      Kind      `gorm:"size:10;not null"`
	Ticker    string    `gorm:"size:20;not null"`
	Market    string    `gorm:"size:10;not null;default:''"`
	Name      string    `gorm:"size:255;not null"`
	Region    string    `gorm:"size:100;not null;default:''"`
	Currency  string    `gorm:"size:10;not null;default:''"`
	IsActive  bool      `gorm:"not null;default:true"`
	SortKey   int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// PairCode builds the code of a forex or crypto pair.
func PairCode(ticker, market string) string {
	return ticker + "/" + market
}
