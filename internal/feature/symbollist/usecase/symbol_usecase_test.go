package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alpha_vantage/internal/feature/symbollist/domain/entity"
	"alpha_vantage/internal/feature/symbollist/usecase"
)

// mockSymbolRepository はSymbolRepositoryインターフェースのモック実装です。
type mockSymbolRepository struct {
	ListActiveFunc func(ctx context.Context) ([]entity.Symbol, error)
	UpsertFunc     func(ctx context.Context, s *entity.Symbol) error
	DeactivateFunc func(ctx context.Context, code string) (bool, error)

	upserted []entity.Symbol
}

func (m *mockSymbolRepository) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockSymbolRepository) Upsert(ctx context.Context, s *entity.Symbol) error {
	m.upserted = append(m.upserted, *s)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, s)
	}
	return nil
}

func (m *mockSymbolRepository) Deactivate(ctx context.Context, code string) (bool, error) {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, code)
	}
	return true, nil
}

// mockResolver はSymbolResolverのモック実装です。呼び出し引数を記録します。
type mockResolver struct {
	ResolveStockFunc func(ctx context.Context, ticker string) (entity.Symbol, error)
	ResolvePairFunc  func(ctx context.Context, kind entity.Kind, from, to string) (entity.Symbol, error)

	calls []string
}

func (m *mockResolver) ResolveStock(ctx context.Context, ticker string) (entity.Symbol, error) {
	m.calls = append(m.calls, "stock:"+ticker)
	if m.ResolveStockFunc != nil {
		return m.ResolveStockFunc(ctx, ticker)
	}
	return entity.Symbol{Code: ticker, Kind: entity.KindStock, Ticker: ticker, Name: ticker}, nil
}

func (m *mockResolver) ResolvePair(ctx context.Context, kind entity.Kind, from, to string) (entity.Symbol, error) {
	m.calls = append(m.calls, string(kind)+":"+from+"/"+to)
	if m.ResolvePairFunc != nil {
		return m.ResolvePairFunc(ctx, kind, from, to)
	}
	return entity.Symbol{Code: entity.PairCode(from, to), Kind: kind, Ticker: from, Market: to}, nil
}

// TestSymbolUsecase_ListActiveSymbols はListActiveSymbolsがリポジトリの結果をそのまま返すことを検証します。
func TestSymbolUsecase_ListActiveSymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		mockListActive  func(ctx context.Context) ([]entity.Symbol, error)
		expectedSymbols []entity.Symbol
		wantErr         bool
		errMsg          string
	}{
		{
			name: "success: returns list of active symbols",
			mockListActive: func(ctx context.Context) ([]entity.Symbol, error) {
				return []entity.Symbol{
					{ID: 1, Code: "IBM", Kind: entity.KindStock, Ticker: "IBM", Name: "International Business Machines Corp", IsActive: true, SortKey: 1},
					{ID: 2, Code: "EUR/USD", Kind: entity.KindForex, Ticker: "EUR", Market: "USD", Name: "Euro / United States Dollar", IsActive: true, SortKey: 2},
				}, nil
			},
			expectedSymbols: []entity.Symbol{
				{ID: 1, Code: "IBM", Kind: entity.KindStock, Ticker: "IBM", Name: "International Business Machines Corp", IsActive: true, SortKey: 1},
				{ID: 2, Code: "EUR/USD", Kind: entity.KindForex, Ticker: "EUR", Market: "USD", Name: "Euro / United States Dollar", IsActive: true, SortKey: 2},
			},
		},
		{
			name: "success: returns empty list when no active symbols",
			mockListActive: func(ctx context.Context) ([]entity.Symbol, error) {
				return []entity.Symbol{}, nil
			},
			expectedSymbols: []entity.Symbol{},
		},
		{
			name: "failure: repository returns error",
			mockListActive: func(ctx context.Context) ([]entity.Symbol, error) {
				return nil, errors.New("database connection failed")
			},
			wantErr: true,
			errMsg:  "database connection failed",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewSymbolUsecase(&mockSymbolRepository{ListActiveFunc: tt.mockListActive}, &mockResolver{})

			symbols, err := uc.ListActiveSymbols(context.Background())

			if tt.wantErr {
				assert.EqualError(t, err, tt.errMsg)
				assert.Nil(t, symbols)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSymbols, symbols)
		})
	}
}

// TestSymbolUsecase_Add は種別ごとの解決方法と入力の正規化を検証します。
func TestSymbolUsecase_Add(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        usecase.AddInput
		wantCall  string
		wantCode  string
		wantErrIs error
	}{
		{
			name:     "stock is searched by upper-cased ticker",
			in:       usecase.AddInput{Kind: entity.KindStock, Symbol: " ibm "},
			wantCall: "stock:IBM",
			wantCode: "IBM",
		},
		{
			name:     "forex pair",
			in:       usecase.AddInput{Kind: entity.KindForex, Symbol: "eur", Market: "usd"},
			wantCall: "forex:EUR/USD",
			wantCode: "EUR/USD",
		},
		{
			name:     "crypto pair",
			in:       usecase.AddInput{Kind: entity.KindCrypto, Symbol: "BTC", Market: "USD"},
			wantCall: "crypto:BTC/USD",
			wantCode: "BTC/USD",
		},
		{
			name:      "empty symbol",
			in:        usecase.AddInput{Kind: entity.KindStock, Symbol: "  "},
			wantErrIs: usecase.ErrInvalidSymbol,
		},
		{
			name:      "pair without market",
			in:        usecase.AddInput{Kind: entity.KindCrypto, Symbol: "BTC"},
			wantErrIs: usecase.ErrInvalidSymbol,
		},
		{
			name:      "unknown kind",
			in:        usecase.AddInput{Kind: "bond", Symbol: "US10Y"},
			wantErrIs: usecase.ErrInvalidSymbol,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockSymbolRepository{}
			resolver := &mockResolver{}
			uc := usecase.NewSymbolUsecase(repo, resolver)

			got, err := uc.Add(context.Background(), tt.in)

			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Empty(t, resolver.calls, "resolver must not be called for invalid input")
				assert.Empty(t, repo.upserted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{tt.wantCall}, resolver.calls)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.True(t, got.IsActive)
			require.Len(t, repo.upserted, 1)
			assert.Equal(t, tt.wantCode, repo.upserted[0].Code)
		})
	}
}

// TestSymbolUsecase_Add_ResolverError は解決に失敗した場合に保存されないことを検証します。
func TestSymbolUsecase_Add_ResolverError(t *testing.T) {
	t.Parallel()

	repo := &mockSymbolRepository{}
	resolver := &mockResolver{
		ResolveStockFunc: func(ctx context.Context, ticker string) (entity.Symbol, error) {
			return entity.Symbol{}, usecase.ErrSymbolNotFound
		},
	}
	uc := usecase.NewSymbolUsecase(repo, resolver)

	_, err := uc.Add(context.Background(), usecase.AddInput{Kind: entity.KindStock, Symbol: "NOPE"})

	assert.ErrorIs(t, err, usecase.ErrSymbolNotFound)
	assert.Empty(t, repo.upserted)
}

// TestSymbolUsecase_Add_RepositoryError は保存エラーがラップされて返されることを検証します。
func TestSymbolUsecase_Add_RepositoryError(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("disk full")
	repo := &mockSymbolRepository{
		UpsertFunc: func(ctx context.Context, s *entity.Symbol) error { return dbErr },
	}
	uc := usecase.NewSymbolUsecase(repo, &mockResolver{})

	_, err := uc.Add(context.Background(), usecase.AddInput{Kind: entity.KindStock, Symbol: "IBM"})

	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "save IBM")
}

// TestSymbolUsecase_Remove はRemoveの各種シナリオを検証します。
func TestSymbolUsecase_Remove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		code       string
		deactivate func(ctx context.Context, code string) (bool, error)
		wantCode   string
		wantErrIs  error
		wantErr    bool
	}{
		{
			name:     "success: code is normalized",
			code:     " eur/usd ",
			wantCode: "EUR/USD",
		},
		{
			name:      "failure: empty code",
			code:      " ",
			wantErrIs: usecase.ErrInvalidSymbol,
		},
		{
			name: "failure: not tracked",
			code: "IBM",
			deactivate: func(ctx context.Context, code string) (bool, error) {
				return false, nil
			},
			wantCode:  "IBM",
			wantErrIs: usecase.ErrSymbolNotFound,
		},
		{
			name: "failure: repository error",
			code: "IBM",
			deactivate: func(ctx context.Context, code string) (bool, error) {
				return false, errors.New("db down")
			},
			wantCode: "IBM",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotCode string
			repo := &mockSymbolRepository{
				DeactivateFunc: func(ctx context.Context, code string) (bool, error) {
					gotCode = code
					if tt.deactivate != nil {
						return tt.deactivate(ctx, code)
					}
					return true, nil
				},
			}
			uc := usecase.NewSymbolUsecase(repo, &mockResolver{})

			err := uc.Remove(context.Background(), tt.code)

			assert.Equal(t, tt.wantCode, gotCode)
			switch {
			case tt.wantErrIs != nil:
				assert.ErrorIs(t, err, tt.wantErrIs)
			case tt.wantErr:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, usecase.ErrSymbolNotFound)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

// TestSymbolUsecase_ListActiveSymbols_ContextCancellation はコンテキストがキャンセルされた場合にエラーが返されることを検証します。
func TestSymbolUsecase_ListActiveSymbols_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockRepo := &mockSymbolRepository{
		ListActiveFunc: func(ctx context.Context) ([]entity.Symbol, error) {
			return nil, ctx.Err()
		},
	}
	uc := usecase.NewSymbolUsecase(mockRepo, &mockResolver{})

	symbols, err := uc.ListActiveSymbols(ctx)

	assert.Nil(t, symbols)
	assert.ErrorIs(t, err, context.Canceled)
}
