// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"alpha_vantage/internal/feature/quotes/domain/entity"
	"alpha_vantage/internal/feature/quotes/transport/http/dto"
	"alpha_vantage/internal/feature/quotes/usecase"
	"alpha_vantage/internal/shared/apierror"
)

// QuotesUsecase はリアルタイム参照のユースケースです。
type QuotesUsecase interface {
	GetQuote(ctx context.Context, symbol string) (entity.Quote, error)
	GetExchangeRate(ctx context.Context, from, to string) (entity.ExchangeRate, error)
	Search(ctx context.Context, keywords string) ([]entity.Match, error)
}

type QuotesHandler struct {
	uc QuotesUsecase
}

func NewQuotesHandler(uc QuotesUsecase) *QuotesHandler {
	return &QuotesHandler{uc: uc}
}

// Quote は GET /quote/:symbol です。
func (h *QuotesHandler) Quote(c *gin.Context) {
	q, err := h.uc.GetQuote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QuoteResponse{
		Symbol:           q.Symbol,
		Open:             number(q.Open),
		High:             number(q.High),
		Low:              number(q.Low),
		Price:            number(q.Price),
		Volume:           q.Volume,
		LatestTradingDay: q.LatestTradingDay,
		PreviousClose:    number(q.PreviousClose),
		Change:           number(q.Change),
		ChangePercent:    number(q.ChangePercent),
	})
}

// Exchange は GET /exchange?from=BTC&to=USD です。
func (h *QuotesHandler) Exchange(c *gin.Context) {
	x, err := h.uc.GetExchangeRate(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ExchangeRateResponse{
		From:          x.From,
		FromName:      x.FromName,
		To:            x.To,
		ToName:        x.ToName,
		Rate:          number(x.Rate),
		Bid:           optional(x.Bid),
		Ask:           optional(x.Ask),
		LastRefreshed: x.LastRefreshed,
		TimeZone:      x.TimeZone,
	})
}

// Search は GET /search?keywords=tesco です。一致なしは空配列です。
func (h *QuotesHandler) Search(c *gin.Context) {
	matches, err := h.uc.Search(c.Request.Context(), c.Query("keywords"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.MatchResponse{
			Symbol:      m.Symbol,
			Name:        m.Name,
			Type:        m.Type,
			Region:      m.Region,
			MarketOpen:  m.MarketOpen,
			MarketClose: m.MarketClose,
			TimeZone:    m.TimeZone,
			Currency:    m.Currency,
			Score:       number(m.Score),
		})
	}
	c.JSON(http.StatusOK, out)
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, usecase.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	apierror.Write(c, err)
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func optional(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := number(*d)
	return &n
}
