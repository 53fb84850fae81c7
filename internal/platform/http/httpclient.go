package http

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は Alpha Vantage 呼び出し用に設定されたHTTPクライアントを作成します。
// alphavantage.Client にはこのクライアントを注入し、TLS・プロキシ・接続プールはここで管理します。
//
// 設定:
//   - Proxy: 環境変数（HTTPS_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout / KeepAlive: TCP接続のタイムアウトと維持期間
//   - MaxIdleConns / MaxIdleConnsPerHost: 同一ホストへの連続呼び出しで接続を再利用
//   - TLSClientConfig.MinVersion: minTLS が0の場合は TLS 1.2
//   - Client.Timeout: リクエスト全体のタイムアウト（呼び出し元から渡される）
func NewHTTPClient(timeout time.Duration, minTLS uint16) *http.Client {
	if minTLS == 0 {
		minTLS = tls.VersionTLS12
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
		TLSClientConfig:     &tls.Config{MinVersion: minTLS},
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

// ParseTLSVersion は "1.2" / "1.3" を tls.VersionTLS* に変換します。空文字は0を返します。
func ParseTLSVersion(s string) (uint16, bool) {
	switch s {
	case "":
		return 0, true
	case "1.2":
		return tls.VersionTLS12, true
	case "1.3":
		return tls.VersionTLS13, true
	default:
		return 0, false
	}
}
