package alphavantage

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	av "alpha_vantage/alphavantage"
	"alpha_vantage/internal/feature/candles/domain/entity"
	"alpha_vantage/internal/feature/candles/usecase"
)

// compactSize は outputsize=compact で返される件数です。
const compactSize = 100

// AlphaVantageMarket はAlpha Vantageから株価・為替・暗号資産の時系列を取得するMarketRepository実装です。
type AlphaVantageMarket struct {
	client *av.Client
}

// AlphaVantageMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*AlphaVantageMarket)(nil)

// NewAlphaVantageMarket は client を使う AlphaVantageMarket を生成します。
func NewAlphaVantageMarket(client *av.Client) *AlphaVantageMarket {
	return &AlphaVantageMarket{client: client}
}

// GetTimeSeries は asset の種類に応じて TIME_SERIES_* / FX_* / DIGITAL_CURRENCY_* を呼び出し、
// 新しい順に最大 outputsize 件のローソク足を返します。
func (m *AlphaVantageMarket) GetTimeSeries(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
	size := av.OutputSizeCompact
	if outputsize > compactSize {
		size = av.OutputSizeFull
	}

	var (
		candles []entity.Candle
		err     error
	)
	switch asset.Kind {
	case entity.AssetStock:
		candles, err = m.stock(ctx, asset, interval, size)
	case entity.AssetForex:
		candles, err = m.forex(ctx, asset, interval, size)
	case entity.AssetCrypto:
		candles, err = m.crypto(ctx, asset, interval)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", entity.ErrInvalidAsset, asset.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", asset.Code(), interval, err)
	}
	if outputsize > 0 && len(candles) > outputsize {
		candles = candles[:outputsize]
	}
	return candles, nil
}

func (m *AlphaVantageMarket) stock(ctx context.Context, asset entity.Asset, interval string, size av.OutputSize) ([]entity.Candle, error) {
	b := m.client.StockTime(av.StockDaily, asset.Symbol)
	switch interval {
	case entity.IntervalDay:
		b.OutputSize(size)
	case entity.IntervalWeek:
		b = m.client.StockTime(av.StockWeekly, asset.Symbol)
	case entity.IntervalMonth:
		b = m.client.StockTime(av.StockMonthly, asset.Symbol)
	default:
		return nil, fmt.Errorf("%w: %q", usecase.ErrInvalidInterval, interval)
	}

	ts, err := b.JSON(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Candle, 0, len(ts.Entries()))
	for _, e := range ts.Entries() {
		tm, err := parseTime(e.Time())
		if err != nil {
			return nil, err
		}
		out = append(out, entity.Candle{
			Time:   tm,
			Open:   e.Open(),
			High:   e.High(),
			Low:    e.Low(),
			Close:  e.Close(),
			Volume: decimal.NewFromInt(e.Volume()),
		})
	}
	return out, nil
}

func (m *AlphaVantageMarket) forex(ctx context.Context, asset entity.Asset, interval string, size av.OutputSize) ([]entity.Candle, error) {
	b := m.client.Forex(av.ForexDaily, asset.Symbol, asset.Market)
	switch interval {
	case entity.IntervalDay:
		b.OutputSize(size)
	case entity.IntervalWeek:
		b = m.client.Forex(av.ForexWeekly, asset.Symbol, asset.Market)
	case entity.IntervalMonth:
		b = m.client.Forex(av.ForexMonthly, asset.Symbol, asset.Market)
	default:
		return nil, fmt.Errorf("%w: %q", usecase.ErrInvalidInterval, interval)
	}

	fx, err := b.JSON(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Candle, 0, len(fx.Entries()))
	for _, e := range fx.Entries() {
		tm, err := parseTime(e.Time())
		if err != nil {
			return nil, err
		}
		// 為替には出来高がない
		out = append(out, entity.Candle{
			Time:  tm,
			Open:  e.Open(),
			High:  e.High(),
			Low:   e.Low(),
			Close: e.Close(),
		})
	}
	return out, nil
}

func (m *AlphaVantageMarket) crypto(ctx context.Context, asset entity.Asset, interval string) ([]entity.Candle, error) {
	var fn av.CryptoFunction
	switch interval {
	case entity.IntervalDay:
		fn = av.CryptoDaily
	case entity.IntervalWeek:
		fn = av.CryptoWeekly
	case entity.IntervalMonth:
		fn = av.CryptoMonthly
	default:
		return nil, fmt.Errorf("%w: %q", usecase.ErrInvalidInterval, interval)
	}

	cr, err := m.client.Crypto(fn, asset.Symbol, asset.Market).JSON(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Candle, 0, len(cr.Entries()))
	for _, e := range cr.Entries() {
		tm, err := parseTime(e.Time())
		if err != nil {
			return nil, err
		}
		out = append(out, entity.Candle{
			Time:   tm,
			Open:   e.MarketOpen(),
			High:   e.MarketHigh(),
			Low:    e.MarketLow(),
			Close:  e.MarketClose(),
			Volume: e.Volume(),
		})
	}
	return out, nil
}

// parseTime は日足の "2006-01-02" と日中足の "2006-01-02 15:04:05" の両方を受け付けます。
func parseTime(s string) (time.Time, error) {
	tm, err := time.Parse(time.DateTime, s)
	if err != nil {
		tm, err = time.Parse(time.DateOnly, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
		}
	}
	return tm, nil
}
