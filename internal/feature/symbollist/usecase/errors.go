package usecase

import "errors"

var (
	// ErrInvalidSymbol は追加リクエストの種別・銘柄・通貨が不正な場合に返されます。
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrSymbolNotFound はAlpha Vantageが銘柄を認識しない、またはウォッチリストに存在しない場合に返されます。
	ErrSymbolNotFound = errors.New("symbol not found")
)
