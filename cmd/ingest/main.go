package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"alpha_vantage/internal/app/di"
	"alpha_vantage/internal/app/ingestjob"
	candlesadapters "alpha_vantage/internal/feature/candles/adapters"
	"alpha_vantage/internal/feature/candles/usecase"
	symbollistadapters "alpha_vantage/internal/feature/symbollist/adapters"
	symbolentity "alpha_vantage/internal/feature/symbollist/domain/entity"
	infradb "alpha_vantage/internal/platform/db"
	"alpha_vantage/internal/platform/externalapi/alphavantage"
	"alpha_vantage/internal/shared/ratelimiter"
)

func main() {
	jobPath := flag.String("job", "ingest.yaml", "path to the ingest job file")
	flag.Parse()

	job, err := ingestjob.Load(*jobPath)
	if err != nil {
		log.Fatal("failed to load ingest job: ", err)
	}

	db, err := infradb.Open(infradb.LoadConfigFromEnv(), &candlesadapters.CandleModel{}, &symbolentity.Symbol{})
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}

	// 待機は IngestUsecase 側で行うため、クライアントには limiter を付けない
	client, err := di.NewAlphaVantageClient(nil)
	if err != nil {
		log.Fatal("failed to configure alpha vantage: ", err)
	}
	marketRepo := alphavantage.NewAlphaVantageMarket(client)
	candleRepo := candlesadapters.NewCandleRepository(db)
	symbolRepo := symbollistadapters.NewSymbolRepository(db)
	limiter := ratelimiter.NewRateLimiter(job.RateLimit.Limit, job.RateLimit.Interval)
	uc := usecase.NewIngestUsecase(marketRepo, candleRepo, limiter,
		usecase.WithIntervals(job.Intervals...),
		usecase.WithOutputSize(job.OutputSize),
	)

	ctx, cancel := context.WithTimeout(context.Background(), job.Timeout)
	defer cancel()

	var watchlist []symbolentity.Symbol
	if job.Watchlist {
		if watchlist, err = symbolRepo.ListActive(ctx); err != nil {
			log.Fatal("failed to load symbols: ", err)
		}
	}
	assets := job.MergeAssets(watchlist)

	report, err := uc.IngestAll(ctx, assets)
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("ingest finished", "assets", len(assets), "succeeded", report.Succeeded,
		"candles", report.Candles, "failed", len(report.Failed))
	if len(report.Failed) > 0 {
		log.Fatalf("ingest finished with %d failures", len(report.Failed))
	}
	log.Println("ingest ok")
}
