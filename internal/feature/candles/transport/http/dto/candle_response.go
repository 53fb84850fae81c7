package dto

import "encoding/json"

// CandleResponse はロウソク足データのレスポンスDTOです。
// 価格は decimal の文字列表現をそのまま JSON の数値として出力します。
type CandleResponse struct {
	Time   string      `json:"time"`   // 日付
	Open   json.Number `json:"open"`   // 始値
	High   json.Number `json:"high"`   // 高値
	Low    json.Number `json:"low"`    // 安値
	Close  json.Number `json:"close"`  // 終値
	Volume json.Number `json:"volume"` // 出来高
}

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
