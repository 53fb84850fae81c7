// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alpha_vantage/internal/feature/symbollist/domain/entity"
	"alpha_vantage/internal/feature/symbollist/usecase"
)

// symbolRepository はSymbolRepositoryインターフェースのgorm実装です。
type symbolRepository struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolRepository)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolRepositoryの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolRepository {
	return &symbolRepository{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolRepository) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("id ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// Upsert は code をキーに銘柄を登録します。
// 新規の行は末尾の sort_key を採番し、既存の行は sort_key を保ったまま名称などを更新します。
func (r *symbolRepository) Upsert(ctx context.Context, s *entity.Symbol) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.SortKey == 0 {
			var last int
			if err := tx.Model(&entity.Symbol{}).
				Select("COALESCE(MAX(sort_key), 0)").
				Scan(&last).Error; err != nil {
				return err
			}
			s.SortKey = last + 1
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"kind", "ticker", "market", "name", "region", "currency", "is_active", "updated_at",
			}),
		}).Create(s).Error
	})
}

// Deactivate はアクティブな銘柄を非アクティブにします。対象がなければ false を返します。
func (r *symbolRepository) Deactivate(ctx context.Context, code string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("code = ? AND is_active = ?", code, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
