package entity

import (
	"errors"
	"testing"
)

func TestAsset_Code(t *testing.T) {
	t.Parallel()

	tests := []struct {
		asset Asset
		want  string
	}{
		{Asset{Kind: AssetStock, Symbol: "IBM"}, "IBM"},
		{Asset{Kind: AssetStock, Symbol: "IBM", Market: "USD"}, "IBM"},
		{Asset{Kind: AssetForex, Symbol: "EUR", Market: "USD"}, "EUR/USD"},
		{Asset{Kind: AssetCrypto, Symbol: "BTC", Market: "EUR"}, "BTC/EUR"},
	}
	for _, tt := range tests {
		tt := tt
		if got := tt.asset.Code(); got != tt.want {
			t.Errorf("Code() = %q, want %q", got, tt.want)
		}
	}
}

func TestAsset_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		asset   Asset
		wantErr bool
	}{
		{"stock", Asset{Kind: AssetStock, Symbol: "IBM"}, false},
		{"forex", Asset{Kind: AssetForex, Symbol: "EUR", Market: "USD"}, false},
		{"crypto without market", Asset{Kind: AssetCrypto, Symbol: "BTC"}, true},
		{"empty symbol", Asset{Kind: AssetStock, Symbol: " "}, true},
		{"unknown kind", Asset{Kind: "bond", Symbol: "US10Y"}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.asset.Validate()
			if tt.wantErr != (err != nil) {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAsset) {
				t.Errorf("expected ErrInvalidAsset, got %v", err)
			}
		})
	}
}

func TestValidInterval(t *testing.T) {
	t.Parallel()

	for _, iv := range []string{"1day", "1week", "1month"} {
		if !ValidInterval(iv) {
			t.Errorf("expected %q to be valid", iv)
		}
	}
	for _, iv := range []string{"", "1min", "daily"} {
		if ValidInterval(iv) {
			t.Errorf("expected %q to be invalid", iv)
		}
	}
}
