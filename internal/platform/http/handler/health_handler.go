// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger は依存先（DBなど）の疎通確認を行います。
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler は /healthz と /readyz を処理します。
type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthHandler は HealthHandler を生成します。db が nil の場合、readiness は常に成功します。
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

// Live はプロセスが応答できるかだけを返します。
func (h *HealthHandler) Live(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	respond(c, http.StatusOK, gin.H{"status": "ok"})
}

// Ready は DB に到達できる場合のみ 200 を返します。
func (h *HealthHandler) Ready(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			respond(c, http.StatusServiceUnavailable, gin.H{"status": "unavailable", "db": err.Error()})
			return
		}
	}
	respond(c, http.StatusOK, gin.H{"status": "ok"})
}

// HEAD はボディなし、OPTIONS は 204
func respond(c *gin.Context, code int, body gin.H) {
	switch c.Request.Method {
	case http.MethodHead:
		c.Status(code)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(code, body)
	}
}
