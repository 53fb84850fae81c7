package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alpha_vantage/internal/feature/candles/domain/entity"
	"alpha_vantage/internal/feature/candles/usecase"
)

type candleRepository struct {
	db *gorm.DB
}

var (
	_ usecase.CandleRepository       = (*candleRepository)(nil)
	_ usecase.IngestCandleRepository = (*candleRepository)(nil)
)

// NewCandleRepository は gorm（sqlite / postgres）上の CandleRepository を返します。
func NewCandleRepository(db *gorm.DB) *candleRepository {
	return &candleRepository{db: db}
}

// CandleModel は candles テーブルの行です。価格は decimal のまま保存します。
type CandleModel struct {
	ID       uint      `gorm:"primaryKey"`
	Symbol   string    `gorm:"size:32;not null;uniqueIndex:candle_sym_int_time,priority:1"`
	Interval string    `gorm:"size:16;not null;uniqueIndex:candle_sym_int_time,priority:2"`
	Time     time.Time `gorm:"not null;uniqueIndex:candle_sym_int_time,priority:3"`

	Open   decimal.Decimal `gorm:"type:decimal(24,8);not null"`
	High   decimal.Decimal `gorm:"type:decimal(24,8);not null"`
	Low    decimal.Decimal `gorm:"type:decimal(24,8);not null"`
	Close  decimal.Decimal `gorm:"type:decimal(24,8);not null"`
	Volume decimal.Decimal `gorm:"type:decimal(32,8);not null;default:0"`
}

func (CandleModel) TableName() string {
	return "candles"
}

func toModel(e entity.Candle) CandleModel {
	return CandleModel{
		Symbol:   e.Symbol,
		Interval: e.Interval,
		Time:     e.Time.UTC(),
		Open:     e.Open,
		High:     e.High,
		Low:      e.Low,
		Close:    e.Close,
		Volume:   e.Volume,
	}
}

func toEntity(m CandleModel) entity.Candle {
	return entity.Candle{
		Symbol:   m.Symbol,
		Interval: m.Interval,
		Time:     m.Time,
		Open:     m.Open,
		High:     m.High,
		Low:      m.Low,
		Close:    m.Close,
		Volume:   m.Volume,
	}
}

// UpsertBatch は (symbol, interval, time) が重複する行を上書きします。
func (r *candleRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	ms := make([]CandleModel, 0, len(candles))
	for _, e := range candles {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "interval"}, {Name: "time"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}).CreateInBatches(&ms, 500).Error
}

// Find は新しい順に最大 outputsize 件を返します。outputsize が0以下なら全件。
func (r *candleRepository) Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	var rows []CandleModel
	// interval は postgres の予約語なので構造体条件でクォートさせる
	q := r.db.WithContext(ctx).
		Where(&CandleModel{Symbol: symbol, Interval: interval}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "time"}, Desc: true})
	if outputsize > 0 {
		q = q.Limit(outputsize)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Candle, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// LatestTime は保存済みの最新時刻を返します。行がない場合は ok=false。
func (r *candleRepository) LatestTime(ctx context.Context, symbol, interval string) (time.Time, bool, error) {
	var m CandleModel
	err := r.db.WithContext(ctx).
		Where(&CandleModel{Symbol: symbol, Interval: interval}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "time"}, Desc: true}).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return m.Time, true, nil
}
