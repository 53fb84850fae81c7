package alphavantage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	av "alpha_vantage/alphavantage"
	"alpha_vantage/internal/feature/quotes/domain/entity"
	"alpha_vantage/internal/feature/quotes/usecase"
)

// AlphaVantageQuotes は GLOBAL_QUOTE / CURRENCY_EXCHANGE_RATE / SYMBOL_SEARCH を呼び出すQuoteProvider実装です。
type AlphaVantageQuotes struct {
	client *av.Client
}

var _ usecase.QuoteProvider = (*AlphaVantageQuotes)(nil)

func NewAlphaVantageQuotes(client *av.Client) *AlphaVantageQuotes {
	return &AlphaVantageQuotes{client: client}
}

func (q *AlphaVantageQuotes) Quote(ctx context.Context, symbol string) (entity.Quote, error) {
	g, err := q.client.Quote(symbol).JSON(ctx)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("quote %s: %w", symbol, err)
	}
	return entity.Quote{
		Symbol:           g.Symbol(),
		Open:             g.Open(),
		High:             g.High(),
		Low:              g.Low(),
		Price:            g.Price(),
		Volume:           g.Volume(),
		LatestTradingDay: g.LatestTradingDay(),
		PreviousClose:    g.PreviousClose(),
		Change:           g.Change(),
		ChangePercent:    g.ChangePercent(),
	}, nil
}

func (q *AlphaVantageQuotes) ExchangeRate(ctx context.Context, from, to string) (entity.ExchangeRate, error) {
	x, err := q.client.Exchange(from, to).JSON(ctx)
	if err != nil {
		return entity.ExchangeRate{}, fmt.Errorf("exchange %s/%s: %w", from, to, err)
	}
	return entity.ExchangeRate{
		From:          x.CodeFrom(),
		FromName:      x.NameFrom(),
		To:            x.CodeTo(),
		ToName:        x.NameTo(),
		Rate:          x.Rate(),
		Bid:           ptr(x.BidPrice()),
		Ask:           ptr(x.AskPrice()),
		LastRefreshed: x.LastRefreshed(),
		TimeZone:      x.TimeZone(),
	}, nil
}

func (q *AlphaVantageQuotes) Search(ctx context.Context, keywords string) ([]entity.Match, error) {
	s, err := q.client.Search(keywords).JSON(ctx)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", keywords, err)
	}
	out := make([]entity.Match, 0, len(s.Matches()))
	for _, m := range s.Matches() {
		out = append(out, entity.Match{
			Symbol:      m.Symbol(),
			Name:        m.Name(),
			Type:        m.Type(),
			Region:      m.Region(),
			MarketOpen:  m.MarketOpen(),
			MarketClose: m.MarketClose(),
			TimeZone:    m.TimeZone(),
			Currency:    m.Currency(),
			Score:       m.MatchScore(),
		})
	}
	return out, nil
}

func ptr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
