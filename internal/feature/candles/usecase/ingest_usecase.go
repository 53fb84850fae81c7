package usecase

import (
	"context"
	"log/slog"
	"time"

	"alpha_vantage/internal/feature/candles/domain/entity"
	"alpha_vantage/internal/shared/ratelimiter"
)

const (
	// DefaultIngestOutputSize は既にデータがある場合の取得件数（Alpha Vantage の compact と同じ100件）。
	DefaultIngestOutputSize = 100
	// FullIngestOutputSize は初回取得時の件数。100件を超えると full で取得されます。
	FullIngestOutputSize = MaxOutputSize
)

// MarketRepository は株価・為替・暗号資産の時系列を取得するリポジトリのインターフェイスです。
// 外部 API の実装を抽象化します。
type MarketRepository interface {
	// GetTimeSeries は新しい順に最大 outputsize 件のローソク足を返します。
	GetTimeSeries(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error)
}

// IngestCandleRepository は取り込み時に使う書き込み側のリポジトリです。
type IngestCandleRepository interface {
	UpsertBatch(ctx context.Context, candles []entity.Candle) error
	LatestTime(ctx context.Context, symbol, interval string) (time.Time, bool, error)
}

// IngestFailure は1銘柄・1時間足の取り込み失敗です。
type IngestFailure struct {
	Symbol   string
	Interval string
	Err      error
}

// IngestReport は IngestAll の結果です。
type IngestReport struct {
	Succeeded int
	Candles   int
	Failed    []IngestFailure
}

// IngestUsecase は外部APIからデータを取得し、データベースに永続化するユースケースを定義します。
type IngestUsecase struct {
	market      MarketRepository
	candle      IngestCandleRepository
	rateLimiter ratelimiter.Limiter
	intervals   []string
	outputSize  int
}

// IngestOption は IngestUsecase の設定を変更します。
type IngestOption func(*IngestUsecase)

// WithIntervals は取り込む時間足を指定します。空の場合はすべての時間足。
func WithIntervals(intervals ...string) IngestOption {
	return func(iu *IngestUsecase) {
		if len(intervals) > 0 {
			iu.intervals = intervals
		}
	}
}

// WithOutputSize は差分取り込み時の取得件数を指定します。
func WithOutputSize(n int) IngestOption {
	return func(iu *IngestUsecase) {
		if n > 0 {
			iu.outputSize = n
		}
	}
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(market MarketRepository, candle IngestCandleRepository, rateLimiter ratelimiter.Limiter, opts ...IngestOption) *IngestUsecase {
	iu := &IngestUsecase{
		market:      market,
		candle:      candle,
		rateLimiter: rateLimiter,
		intervals:   entity.Intervals,
		outputSize:  DefaultIngestOutputSize,
	}
	for _, opt := range opts {
		opt(iu)
	}
	return iu
}

// ingestOne は指定された銘柄と時間足の時系列データを外部リポジトリから取得し、
// データベースに一括で挿入（または更新）します。未取得の銘柄は全履歴を取得します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, asset entity.Asset, interval string) (int, error) {
	code := asset.Code()
	size := iu.outputSize
	if _, ok, err := iu.candle.LatestTime(ctx, code, interval); err != nil {
		return 0, err
	} else if !ok {
		size = FullIngestOutputSize
	}

	cs, err := iu.market.GetTimeSeries(ctx, asset, interval, size)
	if err != nil {
		return 0, err
	}

	// 取得したデータに銘柄コードと時間足を設定
	for i := range cs {
		cs[i].Symbol = code
		cs[i].Interval = interval
	}
	if err := iu.candle.UpsertBatch(ctx, cs); err != nil {
		return 0, err
	}
	return len(cs), nil
}

// IngestAll は指定された全銘柄の時系列データを設定された時間足で取得し、データベースに永続化します。
// 1つの銘柄でエラーが発生しても処理を止めずに次へ進みます。ctx が終了した場合のみエラーを返します。
func (iu *IngestUsecase) IngestAll(ctx context.Context, assets []entity.Asset) (IngestReport, error) {
	var report IngestReport
	for _, a := range assets {
		if err := a.Validate(); err != nil {
			slog.Error("skip invalid asset", "symbol", a.Symbol, "error", err)
			report.Failed = append(report.Failed, IngestFailure{Symbol: a.Code(), Err: err})
			continue
		}
		for _, interval := range iu.intervals {
			if err := iu.rateLimiter.Wait(ctx); err != nil {
				return report, err
			}
			n, err := iu.ingestOne(ctx, a, interval)
			if err != nil {
				slog.Error("failed to ingest data", "symbol", a.Code(), "interval", interval, "error", err)
				report.Failed = append(report.Failed, IngestFailure{Symbol: a.Code(), Interval: interval, Err: err})
				continue
			}
			slog.Info("ingested", "symbol", a.Code(), "interval", interval, "candles", n)
			report.Succeeded++
			report.Candles += n
		}
	}
	return report, nil
}
