// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"alpha_vantage/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for the watchlist.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	// Upsert は Code をキーに登録し、非アクティブな行は再度アクティブにします。
	Upsert(ctx context.Context, s *entity.Symbol) error
	// Deactivate は該当するアクティブな行がなければ false を返します。
	Deactivate(ctx context.Context, code string) (bool, error)
}

// SymbolResolver は銘柄・通貨ペアを外部APIで確認し、名称などを補完します。
type SymbolResolver interface {
	ResolveStock(ctx context.Context, ticker string) (entity.Symbol, error)
	ResolvePair(ctx context.Context, kind entity.Kind, from, to string) (entity.Symbol, error)
}

// AddInput is a request to track a symbol. Market is required for forex and crypto.
type AddInput struct {
	Kind   entity.Kind
	Symbol string
	Market string
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo     SymbolRepository
	resolver SymbolResolver
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository and resolver.
func NewSymbolUsecase(r SymbolRepository, resolver SymbolResolver) *SymbolUsecase {
	return &SymbolUsecase{repo: r, resolver: resolver}
}

// ListActiveSymbols returns all active symbols from the repository.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// Add resolves in against Alpha Vantage and stores it as active.
// 株式は SYMBOL_SEARCH の完全一致、通貨ペアは CURRENCY_EXCHANGE_RATE で確認します。
func (u *SymbolUsecase) Add(ctx context.Context, in AddInput) (entity.Symbol, error) {
	ticker := strings.ToUpper(strings.TrimSpace(in.Symbol))
	market := strings.ToUpper(strings.TrimSpace(in.Market))
	if ticker == "" {
		return entity.Symbol{}, fmt.Errorf("%w: empty symbol", ErrInvalidSymbol)
	}

	var (
		s   entity.Symbol
		err error
	)
	switch in.Kind {
	case entity.KindStock:
		s, err = u.resolver.ResolveStock(ctx, ticker)
	case entity.KindForex, entity.KindCrypto:
		if market == "" {
			return entity.Symbol{}, fmt.Errorf("%w: %s %s needs a market", ErrInvalidSymbol, in.Kind, ticker)
		}
		s, err = u.resolver.ResolvePair(ctx, in.Kind, ticker, market)
	default:
		return entity.Symbol{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidSymbol, in.Kind)
	}
	if err != nil {
		return entity.Symbol{}, err
	}

	s.IsActive = true
	if err := u.repo.Upsert(ctx, &s); err != nil {
		return entity.Symbol{}, fmt.Errorf("save %s: %w", s.Code, err)
	}
	slog.Info("symbol tracked", "code", s.Code, "kind", s.Kind)
	return s, nil
}

// Remove stops tracking code. Stored candles are kept.
func (u *SymbolUsecase) Remove(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return fmt.Errorf("%w: empty code", ErrInvalidSymbol)
	}
	ok, err := u.repo.Deactivate(ctx, code)
	if err != nil {
		return fmt.Errorf("deactivate %s: %w", code, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrSymbolNotFound, code)
	}
	slog.Info("symbol untracked", "code", code)
	return nil
}
