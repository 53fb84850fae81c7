package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	candleshandler "alpha_vantage/internal/feature/candles/transport/handler"
	quoteshandler "alpha_vantage/internal/feature/quotes/transport/handler"
	symbollisthandler "alpha_vantage/internal/feature/symbollist/transport/handler"
	healthhandler "alpha_vantage/internal/platform/http/handler"
	jwtmw "alpha_vantage/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラーの一覧です。
type Handlers struct {
	Health  *healthhandler.HealthHandler
	Candles *candleshandler.CandlesHandler
	Quotes  *quoteshandler.QuotesHandler
	Symbols *symbollisthandler.SymbolHandler
}

// Options はルーターの設定です。
type Options struct {
	// AllowOrigins が空の場合 CORS ミドルウェアは付けません。
	AllowOrigins []string
	// JWTSecret はウォッチリスト更新用トークンの検証に使います。
	JWTSecret string
}

// NewRouter は全ルートを登録した gin.Engine を返します。
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.Default()

	if len(opts.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: opts.AllowOrigins,
			AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}))
	}

	// 導通確認用
	r.GET("/healthz", h.Health.Live)
	r.HEAD("/healthz", h.Health.Live)
	r.GET("/readyz", h.Health.Ready)

	// 保存済みのローソク足（為替・暗号資産はスラッシュを含む）
	r.GET("/candles/*code", h.Candles.GetCandlesHandler)

	// Alpha Vantage へのパススルー
	r.GET("/quote/:symbol", h.Quotes.Quote)
	r.GET("/exchange", h.Quotes.Exchange)
	r.GET("/search", h.Quotes.Search)

	// ウォッチリスト（更新はトークン必須）
	r.GET("/symbols", h.Symbols.List)
	write := r.Group("/")
	write.Use(jwtmw.RequireScope(opts.JWTSecret, jwtmw.ScopeWatchlistWrite))
	{
		write.POST("/symbols", h.Symbols.Add)
		write.DELETE("/symbols/*code", h.Symbols.Remove)
	}

	return r
}
