// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"alpha_vantage/internal/feature/candles/domain/entity"
	"alpha_vantage/internal/feature/candles/transport/http/dto"
	"alpha_vantage/internal/feature/candles/usecase"
)

// CandlesUsecase はローソク足データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CandlesUsecase interface {
	GetCandles(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
}

// CandlesHandler はローソク足データのHTTPリクエストを処理します。
type CandlesHandler struct {
	uc CandlesUsecase
}

// NewCandlesHandler は指定されたusecaseでCandlesHandlerの新しいインスタンスを生成します。
func NewCandlesHandler(uc CandlesUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc}
}

// GetCandlesHandler は銘柄コードと時間間隔を受け取り、ローソク足データをJSONで返します。
// 為替・暗号資産のコードはスラッシュを含むため、ワイルドカードで受け取ります。
//
// エンドポイント例:
// GET /candles/IBM?interval=1day&outputsize=200
// GET /candles/BTC/USD?interval=1week
func (h *CandlesHandler) GetCandlesHandler(c *gin.Context) {
	code := strings.Trim(c.Param("code"), "/")
	// 未指定の場合はデフォルト値を使用
	interval := c.DefaultQuery("interval", usecase.DefaultInterval)
	outputsize, _ := strconv.Atoi(c.DefaultQuery("outputsize", strconv.Itoa(usecase.DefaultOutputSize)))

	candles, err := h.uc.GetCandles(c.Request.Context(), code, interval, outputsize)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptySymbol) || errors.Is(err, usecase.ErrInvalidInterval) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("failed to get candles", "symbol", code, "interval", interval, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to get candles"})
		return
	}

	// データをフォーマット（日中足はないので日付のみ）
	out := make([]dto.CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, dto.CandleResponse{
			Time:   x.Time.UTC().Format("2006-01-02"),
			Open:   number(x.Open),
			High:   number(x.High),
			Low:    number(x.Low),
			Close:  number(x.Close),
			Volume: number(x.Volume),
		})
	}

	c.JSON(http.StatusOK, out)
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
