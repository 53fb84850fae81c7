package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	av "alpha_vantage/alphavantage"
	"alpha_vantage/internal/feature/symbollist/domain/entity"
	"alpha_vantage/internal/feature/symbollist/usecase"
)

// AlphaVantageResolver はウォッチリストに追加する銘柄をAlpha Vantageで確認します。
type AlphaVantageResolver struct {
	client *av.Client
}

var _ usecase.SymbolResolver = (*AlphaVantageResolver)(nil)

func NewAlphaVantageResolver(client *av.Client) *AlphaVantageResolver {
	return &AlphaVantageResolver{client: client}
}

// ResolveStock は SYMBOL_SEARCH の結果からティッカーが完全一致するものを探します。
// 部分一致しかない場合は ErrSymbolNotFound です。
func (r *AlphaVantageResolver) ResolveStock(ctx context.Context, ticker string) (entity.Symbol, error) {
	res, err := r.client.Search(ticker).JSON(ctx)
	if err != nil {
		return entity.Symbol{}, fmt.Errorf("search %s: %w", ticker, err)
	}
	for _, m := range res.Matches() {
		if !strings.EqualFold(m.Symbol(), ticker) {
			continue
		}
		return entity.Symbol{
			Code:     m.Symbol(),
			Kind:     entity.KindStock,
			Ticker:   m.Symbol(),
			Name:     m.Name(),
			Region:   m.Region(),
			Currency: m.Currency(),
		}, nil
	}
	return entity.Symbol{}, fmt.Errorf("%w: %s", usecase.ErrSymbolNotFound, ticker)
}

// ResolvePair は CURRENCY_EXCHANGE_RATE で通貨コードを確認し、通貨名を名称にします。
// 不明な通貨は "Error Message" で返されるため ErrSymbolNotFound として扱います。
func (r *AlphaVantageResolver) ResolvePair(ctx context.Context, kind entity.Kind, from, to string) (entity.Symbol, error) {
	x, err := r.client.Exchange(from, to).JSON(ctx)
	if err != nil {
		var ve *av.VendorError
		if errors.As(err, &ve) && ve.Kind == av.VendorErrorMessage {
			return entity.Symbol{}, fmt.Errorf("%w: %s/%s: %w", usecase.ErrSymbolNotFound, from, to, err)
		}
		return entity.Symbol{}, fmt.Errorf("exchange %s/%s: %w", from, to, err)
	}

	ticker, market := orDefault(x.CodeFrom(), from), orDefault(x.CodeTo(), to)
	name := ticker + " / " + market
	if x.NameFrom() != "" && x.NameTo() != "" {
		name = x.NameFrom() + " / " + x.NameTo()
	}
	return entity.Symbol{
		Code:     entity.PairCode(ticker, market),
		Kind:     kind,
		Ticker:   ticker,
		Market:   market,
		Name:     name,
		Currency: market,
	}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
