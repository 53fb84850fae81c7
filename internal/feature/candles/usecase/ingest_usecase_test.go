package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"alpha_vantage/internal/feature/candles/domain/entity"
)

var (
	ErrMarketAPI = errors.New("market API error")
	ErrDB        = errors.New("database error")
)

// mockMarketRepository is a mock implementation of the MarketRepository interface.
type mockMarketRepository struct {
	GetTimeSeriesFunc  func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error)
	GetTimeSeriesCalls int
}

func (m *mockMarketRepository) GetTimeSeries(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
	m.GetTimeSeriesCalls++
	if m.GetTimeSeriesFunc != nil {
		return m.GetTimeSeriesFunc(ctx, asset, interval, outputsize)
	}
	return nil, errors.New("GetTimeSeriesFunc is not implemented")
}

// mockIngestRepository is a mock implementation of the IngestCandleRepository interface.
type mockIngestRepository struct {
	UpsertBatchFunc func(ctx context.Context, candles []entity.Candle) error
	LatestTimeFunc  func(ctx context.Context, symbol, interval string) (time.Time, bool, error)
}

func (m *mockIngestRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, candles)
	}
	return errors.New("UpsertBatchFunc is not implemented")
}

func (m *mockIngestRepository) LatestTime(ctx context.Context, symbol, interval string) (time.Time, bool, error) {
	if m.LatestTimeFunc != nil {
		return m.LatestTimeFunc(ctx, symbol, interval)
	}
	// 既存データあり
	return time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), true, nil
}

// mockRateLimiter is a mock implementation of the Limiter interface.
type mockRateLimiter struct {
	WaitCalls int
	Err       error
}

func (m *mockRateLimiter) Wait(ctx context.Context) error {
	m.WaitCalls++
	// For testing purposes, return immediately without waiting
	return m.Err
}

func testCandles() []entity.Candle {
	testTime := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	return []entity.Candle{
		{Time: testTime, Open: decimal.NewFromInt(100), High: decimal.NewFromInt(110), Low: decimal.NewFromInt(90), Close: decimal.NewFromInt(105)},
		{Time: testTime.AddDate(0, 0, -1), Open: decimal.NewFromInt(95), High: decimal.NewFromInt(105), Low: decimal.NewFromInt(85), Close: decimal.NewFromInt(100)},
	}
}

var (
	ibm    = entity.Asset{Kind: entity.AssetStock, Symbol: "IBM"}
	eurusd = entity.Asset{Kind: entity.AssetForex, Symbol: "EUR", Market: "USD"}
	btcusd = entity.Asset{Kind: entity.AssetCrypto, Symbol: "BTC", Market: "USD"}
)

func TestIngestUsecase_ingestOne(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name                  string
		asset                 entity.Asset
		interval              string
		hasData               bool
		mockGetTimeSeriesFunc func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error)
		mockUpsertBatchFunc   func(ctx context.Context, candles []entity.Candle) error
		expectedErr           error
		expectedOutputsize    int
		expectedSymbol        string
	}{
		{
			name:     "success: incremental fetch uses compact size",
			asset:    ibm,
			interval: "1day",
			hasData:  true,
			mockGetTimeSeriesFunc: func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
				return testCandles(), nil
			},
			mockUpsertBatchFunc: func(ctx context.Context, candles []entity.Candle) error { return nil },
			expectedOutputsize:  DefaultIngestOutputSize,
			expectedSymbol:      "IBM",
		},
		{
			name:     "success: first fetch uses full size",
			asset:    btcusd,
			interval: "1week",
			hasData:  false,
			mockGetTimeSeriesFunc: func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
				return testCandles(), nil
			},
			mockUpsertBatchFunc: func(ctx context.Context, candles []entity.Candle) error { return nil },
			expectedOutputsize:  FullIngestOutputSize,
			expectedSymbol:      "BTC/USD",
		},
		{
			name:     "error: MarketRepository returns error",
			asset:    eurusd,
			interval: "1week",
			hasData:  true,
			mockGetTimeSeriesFunc: func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
				return nil, ErrMarketAPI
			},
			mockUpsertBatchFunc: func(ctx context.Context, candles []entity.Candle) error {
				t.Error("UpsertBatch should not be called")
				return nil
			},
			expectedErr:        ErrMarketAPI,
			expectedOutputsize: DefaultIngestOutputSize,
		},
		{
			name:     "error: CandleRepository returns error",
			asset:    ibm,
			interval: "1month",
			hasData:  true,
			mockGetTimeSeriesFunc: func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
				return testCandles(), nil
			},
			mockUpsertBatchFunc: func(ctx context.Context, candles []entity.Candle) error { return ErrDB },
			expectedErr:         ErrDB,
			expectedOutputsize:  DefaultIngestOutputSize,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var captured []entity.Candle
			mockMarket := &mockMarketRepository{
				GetTimeSeriesFunc: func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
					if asset != tc.asset || interval != tc.interval || outputsize != tc.expectedOutputsize {
						t.Errorf("GetTimeSeries called with unexpected params: got asset=%v, interval=%s, outputsize=%d", asset, interval, outputsize)
					}
					return tc.mockGetTimeSeriesFunc(ctx, asset, interval, outputsize)
				},
			}
			mockRepo := &mockIngestRepository{
				UpsertBatchFunc: func(ctx context.Context, candles []entity.Candle) error {
					captured = candles
					return tc.mockUpsertBatchFunc(ctx, candles)
				},
				LatestTimeFunc: func(ctx context.Context, symbol, interval string) (time.Time, bool, error) {
					if symbol != tc.asset.Code() {
						t.Errorf("LatestTime called with %q, want %q", symbol, tc.asset.Code())
					}
					return time.Time{}, tc.hasData, nil
				},
			}

			uc := NewIngestUsecase(mockMarket, mockRepo, &mockRateLimiter{})
			n, err := uc.ingestOne(ctx, tc.asset, tc.interval)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n != 2 {
				t.Errorf("expected 2 candles, got %d", n)
			}
			for _, c := range captured {
				if c.Symbol != tc.expectedSymbol {
					t.Errorf("candle Symbol not set: got %s, want %s", c.Symbol, tc.expectedSymbol)
				}
				if c.Interval != tc.interval {
					t.Errorf("candle Interval not set: got %s, want %s", c.Interval, tc.interval)
				}
			}
		})
	}
}

func TestIngestUsecase_ingestOne_LatestTimeError(t *testing.T) {
	mockMarket := &mockMarketRepository{}
	mockRepo := &mockIngestRepository{
		LatestTimeFunc: func(ctx context.Context, symbol, interval string) (time.Time, bool, error) {
			return time.Time{}, false, ErrDB
		},
	}

	uc := NewIngestUsecase(mockMarket, mockRepo, &mockRateLimiter{})
	_, err := uc.ingestOne(context.Background(), ibm, "1day")

	if !errors.Is(err, ErrDB) {
		t.Fatalf("expected %v, got %v", ErrDB, err)
	}
	if mockMarket.GetTimeSeriesCalls != 0 {
		t.Errorf("GetTimeSeries should not be called, got %d calls", mockMarket.GetTimeSeriesCalls)
	}
}

func TestIngestUsecase_IngestAll(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name                       string
		assets                     []entity.Asset
		mockGetTimeSeriesFunc      func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error)
		mockUpsertBatchFunc        func(ctx context.Context, candles []entity.Candle) error
		expectedGetTimeSeriesCalls int
		expectedSucceeded          int
		expectedFailed             int
	}{
		{
			name:   "success: fetch all assets and intervals",
			assets: []entity.Asset{ibm, eurusd},
			mockGetTimeSeriesFunc: func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
				return testCandles(), nil
			},
			mockUpsertBatchFunc: func(ctx context.Context, candles []entity.Candle) error { return nil },
			// 2 assets × 3 intervals (1day, 1week, 1month) = 6 calls
			expectedGetTimeSeriesCalls: 6,
			expectedSucceeded:          6,
		},
		{
			name:   "success: empty asset list",
			assets: []entity.Asset{},
			mockGetTimeSeriesFunc: func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
				t.Error("GetTimeSeries should not be called")
				return nil, errors.New("should not be called")
			},
			mockUpsertBatchFunc: func(ctx context.Context, candles []entity.Candle) error {
				t.Error("UpsertBatch should not be called")
				return nil
			},
		},
		{
			name:   "success: continues processing even when some assets fail",
			assets: []entity.Asset{ibm, {Kind: entity.AssetStock, Symbol: "INVALID"}, btcusd},
			mockGetTimeSeriesFunc: func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
				if asset.Symbol == "INVALID" {
					return nil, ErrMarketAPI
				}
				return testCandles(), nil
			},
			mockUpsertBatchFunc:        func(ctx context.Context, candles []entity.Candle) error { return nil },
			expectedGetTimeSeriesCalls: 9,
			expectedSucceeded:          6,
			expectedFailed:             3,
		},
		{
			name:   "success: continues processing even when UpsertBatch fails",
			assets: []entity.Asset{ibm, eurusd},
			mockGetTimeSeriesFunc: func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
				return testCandles(), nil
			},
			mockUpsertBatchFunc: func(ctx context.Context, candles []entity.Candle) error {
				if candles[0].Symbol == "IBM" {
					return ErrDB
				}
				return nil
			},
			expectedGetTimeSeriesCalls: 6,
			expectedSucceeded:          3,
			expectedFailed:             3,
		},
		{
			name:   "success: invalid asset is skipped without calling the API",
			assets: []entity.Asset{{Kind: entity.AssetCrypto, Symbol: "ETH"}, ibm},
			mockGetTimeSeriesFunc: func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
				return testCandles(), nil
			},
			mockUpsertBatchFunc:        func(ctx context.Context, candles []entity.Candle) error { return nil },
			expectedGetTimeSeriesCalls: 3,
			expectedSucceeded:          3,
			expectedFailed:             1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockMarket := &mockMarketRepository{GetTimeSeriesFunc: tc.mockGetTimeSeriesFunc}
			mockRepo := &mockIngestRepository{UpsertBatchFunc: tc.mockUpsertBatchFunc}
			mockRL := &mockRateLimiter{}

			uc := NewIngestUsecase(mockMarket, mockRepo, mockRL)
			report, err := uc.IngestAll(ctx, tc.assets)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mockMarket.GetTimeSeriesCalls != tc.expectedGetTimeSeriesCalls {
				t.Errorf("GetTimeSeries was called %d times, expected %d", mockMarket.GetTimeSeriesCalls, tc.expectedGetTimeSeriesCalls)
			}
			if mockRL.WaitCalls != tc.expectedGetTimeSeriesCalls {
				t.Errorf("Wait was called %d times, expected %d", mockRL.WaitCalls, tc.expectedGetTimeSeriesCalls)
			}
			if report.Succeeded != tc.expectedSucceeded {
				t.Errorf("Succeeded = %d, expected %d", report.Succeeded, tc.expectedSucceeded)
			}
			if len(report.Failed) != tc.expectedFailed {
				t.Errorf("Failed = %d, expected %d", len(report.Failed), tc.expectedFailed)
			}
			if report.Candles != 2*tc.expectedSucceeded {
				t.Errorf("Candles = %d, expected %d", report.Candles, 2*tc.expectedSucceeded)
			}
		})
	}
}

func TestIngestUsecase_IngestAll_Intervals(t *testing.T) {
	var calledIntervals []string

	mockMarket := &mockMarketRepository{
		GetTimeSeriesFunc: func(ctx context.Context, asset entity.Asset, interval string, outputsize int) ([]entity.Candle, error) {
			calledIntervals = append(calledIntervals, interval)
			return testCandles(), nil
		},
	}
	mockRepo := &mockIngestRepository{
		UpsertBatchFunc: func(ctx context.Context, candles []entity.Candle) error { return nil },
	}

	uc := NewIngestUsecase(mockMarket, mockRepo, &mockRateLimiter{}, WithIntervals("1week", "1month"))
	if _, err := uc.IngestAll(context.Background(), []entity.Asset{ibm}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedIntervals := []string{"1week", "1month"}
	if len(calledIntervals) != len(expectedIntervals) {
		t.Fatalf("intervals count mismatch: got %d, want %d", len(calledIntervals), len(expectedIntervals))
	}
	for i, expected := range expectedIntervals {
		if calledIntervals[i] != expected {
			t.Errorf("interval[%d] mismatch: got %s, want %s", i, calledIntervals[i], expected)
		}
	}
}

func TestIngestUsecase_IngestAll_StopsWhenLimiterFails(t *testing.T) {
	mockMarket := &mockMarketRepository{}
	mockRepo := &mockIngestRepository{}
	mockRL := &mockRateLimiter{Err: context.Canceled}

	uc := NewIngestUsecase(mockMarket, mockRepo, mockRL)
	_, err := uc.IngestAll(context.Background(), []entity.Asset{ibm, eurusd})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mockRL.WaitCalls != 1 {
		t.Errorf("Wait was called %d times, expected 1", mockRL.WaitCalls)
	}
	if mockMarket.GetTimeSeriesCalls != 0 {
		t.Errorf("GetTimeSeries should not be called, got %d calls", mockMarket.GetTimeSeriesCalls)
	}
}

func TestWithOutputSize(t *testing.T) {
	uc := NewIngestUsecase(nil, nil, nil, WithOutputSize(30), WithOutputSize(0))
	if uc.outputSize != 30 {
		t.Errorf("outputSize = %d, expected 30", uc.outputSize)
	}
}
