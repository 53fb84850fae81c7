// Package apierror はAlpha Vantage クライアントのエラーをHTTPレスポンスに変換します。
package apierror

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	av "alpha_vantage/alphavantage"
)

// Response はエラー時のレスポンスDTOです。
type Response struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`   // config / transport / decode / vendor
	Vendor string `json:"vendor,omitempty"` // "Error Message" / "Note" / "Information"
}

// FromUpstream は err を KindOf で分類し、ステータスコードとレスポンスを返します。
//
//   - config: 400（リクエストは送信されていない）
//   - vendor: Note（呼び出し回数制限）は 429、それ以外は 502
//   - transport: タイムアウトは 504、上流の 429 はそのまま 429、それ以外は 502
//   - decode: 502
//   - その他: 500（内部エラーの詳細は返さない）
func FromUpstream(err error) (int, Response) {
	kind := av.KindOf(err)
	res := Response{Error: err.Error(), Kind: kind.String()}

	switch kind {
	case av.KindConfig:
		return http.StatusBadRequest, res
	case av.KindVendor:
		var ve *av.VendorError
		if errors.As(err, &ve) {
			res.Error = ve.Message
			res.Vendor = ve.Kind.String()
			if ve.Kind == av.VendorNote {
				return http.StatusTooManyRequests, res
			}
		}
		return http.StatusBadGateway, res
	case av.KindTransport:
		if errors.Is(err, av.ErrTimeout) {
			return http.StatusGatewayTimeout, res
		}
		var se *av.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusTooManyRequests {
			return http.StatusTooManyRequests, res
		}
		return http.StatusBadGateway, res
	case av.KindDecode:
		return http.StatusBadGateway, res
	default:
		return http.StatusInternalServerError, Response{Error: "internal error"}
	}
}

// Write はエラーをログに出力し、JSONで返します。
func Write(c *gin.Context, err error) {
	status, res := FromUpstream(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "status", status, "error", err)
	} else {
		slog.Warn("request rejected", "path", c.FullPath(), "status", status, "error", err)
	}
	c.JSON(status, res)
}
