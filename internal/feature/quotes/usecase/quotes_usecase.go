// Package usecase implements realtime lookups that are passed through to Alpha Vantage.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alpha_vantage/internal/feature/quotes/domain/entity"
)

// ErrInvalidInput は銘柄・通貨・キーワードが空の場合に返されます。
var ErrInvalidInput = errors.New("invalid input")

// QuoteProvider は最新の価格を取得する外部APIです。
type QuoteProvider interface {
	Quote(ctx context.Context, symbol string) (entity.Quote, error)
	ExchangeRate(ctx context.Context, from, to string) (entity.ExchangeRate, error)
	Search(ctx context.Context, keywords string) ([]entity.Match, error)
}

// QuotesUsecase は入力を正規化してプロバイダーに委譲します。保存はしません。
type QuotesUsecase struct {
	provider QuoteProvider
}

func NewQuotesUsecase(p QuoteProvider) *QuotesUsecase {
	return &QuotesUsecase{provider: p}
}

// GetQuote returns the latest quote of symbol.
func (u *QuotesUsecase) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return entity.Quote{}, fmt.Errorf("%w: symbol is required", ErrInvalidInput)
	}
	return u.provider.Quote(ctx, symbol)
}

// GetExchangeRate returns the rate from one currency to another, e.g. BTC to EUR.
func (u *QuotesUsecase) GetExchangeRate(ctx context.Context, from, to string) (entity.ExchangeRate, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" || to == "" {
		return entity.ExchangeRate{}, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	return u.provider.ExchangeRate(ctx, from, to)
}

// Search returns the best matching symbols for keywords in the order the API ranks them.
// キーワードは大文字化しません（会社名の検索にも使うため）。
func (u *QuotesUsecase) Search(ctx context.Context, keywords string) ([]entity.Match, error) {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return nil, fmt.Errorf("%w: keywords are required", ErrInvalidInput)
	}
	return u.provider.Search(ctx, keywords)
}
