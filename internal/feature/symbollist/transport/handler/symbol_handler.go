package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"alpha_vantage/internal/feature/symbollist/domain/entity"
	"alpha_vantage/internal/feature/symbollist/transport/http/dto"
	"alpha_vantage/internal/feature/symbollist/usecase"
	"alpha_vantage/internal/shared/apierror"
)

// SymbolUsecase は銘柄情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
	Add(ctx context.Context, in usecase.AddInput) (entity.Symbol, error)
	Remove(ctx context.Context, code string) error
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は有効な銘柄の一覧を取得するAPIです。
// Usecaseでエラーが発生した場合は500 Internal Server Errorを返します。
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		slog.Error("failed to list symbols", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to list symbols"})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, toItem(s))
	}
	c.JSON(http.StatusOK, out)
}

// Add は銘柄をウォッチリストに追加します。
// - バリデーションエラー時は400
// - Alpha Vantageが認識しない銘柄は404
// - 上流のエラーは apierror の規則で変換
// - 成功時は201
func (h *SymbolHandler) Add(c *gin.Context) {
	var req dto.AddSymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("add symbol validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	s, err := h.uc.Add(c.Request.Context(), usecase.AddInput{
		Kind:   entity.Kind(req.Kind),
		Symbol: req.Symbol,
		Market: req.Market,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toItem(s))
}

// Remove は銘柄をウォッチリストから外します。保存済みのローソク足は残ります。
//
// エンドポイント例:
// DELETE /symbols/IBM
// DELETE /symbols/EUR/USD
func (h *SymbolHandler) Remove(c *gin.Context) {
	code := strings.Trim(c.Param("code"), "/")
	if err := h.uc.Remove(c.Request.Context(), code); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SymbolHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		apierror.Write(c, err)
	}
}

func toItem(s entity.Symbol) dto.SymbolItem {
	return dto.SymbolItem{
		Code:     s.Code,
		Kind:     string(s.Kind),
		Name:     s.Name,
		Market:   s.Market,
		Region:   s.Region,
		Currency: s.Currency,
	}
}
