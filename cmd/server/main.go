package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"alpha_vantage/internal/app/di"
	"alpha_vantage/internal/app/router"
	candlesadapters "alpha_vantage/internal/feature/candles/adapters"
	candleshandler "alpha_vantage/internal/feature/candles/transport/handler"
	candlesusecase "alpha_vantage/internal/feature/candles/usecase"
	quoteshandler "alpha_vantage/internal/feature/quotes/transport/handler"
	quotesusecase "alpha_vantage/internal/feature/quotes/usecase"
	symbollistadapters "alpha_vantage/internal/feature/symbollist/adapters"
	symbolentity "alpha_vantage/internal/feature/symbollist/domain/entity"
	symbollisthandler "alpha_vantage/internal/feature/symbollist/transport/handler"
	symbollistusecase "alpha_vantage/internal/feature/symbollist/usecase"
	infradb "alpha_vantage/internal/platform/db"
	"alpha_vantage/internal/platform/externalapi/alphavantage"
	healthhandler "alpha_vantage/internal/platform/http/handler"
	jwtmw "alpha_vantage/internal/platform/jwt"
	"alpha_vantage/internal/shared/ratelimiter"
)

func main() {
	// db
	db, err := infradb.Open(infradb.LoadConfigFromEnv(), &candlesadapters.CandleModel{}, &symbolentity.Symbol{})
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Println("[ERROR] Failed to close database:", err)
		}
	}()

	// Alpha Vantage（パススルー呼び出しも無料枠の上限に合わせる）
	limiter := ratelimiter.NewRateLimiter(envInt("ALPHA_VANTAGE_RATE_LIMIT", ratelimiter.DefaultLimit), ratelimiter.DefaultInterval)
	client, err := di.NewAlphaVantageClient(limiter)
	if err != nil {
		log.Fatal("failed to configure alpha vantage: ", err)
	}

	// Repository
	candleRepo := candlesadapters.NewCandleRepository(db)
	symbolRepo := symbollistadapters.NewSymbolRepository(db)

	// Usecase
	candlesUC := candlesusecase.NewCandlesUsecase(candleRepo)
	quotesUC := quotesusecase.NewQuotesUsecase(alphavantage.NewAlphaVantageQuotes(client))
	symbolUC := symbollistusecase.NewSymbolUsecase(symbolRepo, alphavantage.NewAlphaVantageResolver(client))

	// Handler
	r := router.NewRouter(router.Handlers{
		Health:  healthhandler.NewHealthHandler(sqlDB),
		Candles: candleshandler.NewCandlesHandler(candlesUC),
		Quotes:  quoteshandler.NewQuotesHandler(quotesUC),
		Symbols: symbollisthandler.NewSymbolHandler(symbolUC),
	}, router.Options{
		AllowOrigins: splitList(os.Getenv("CORS_ALLOW_ORIGINS")),
		JWTSecret:    os.Getenv(jwtmw.EnvKeyJWTSecret),
	})

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. POST/DELETE /symbols will answer 500.")
	}

	addr := ":" + envOr("PORT", "8080")
	slog.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid %s %q", key, v)
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
