package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPositionBuySellValue(t *testing.T) {
	tests := []struct {
		name       string
		cash       int64
		price      int64
		wantShares int64
		wantCash   int64
	}{
		{"exact multiple", 1000, 10, 100, 0},
		{"remainder stays cash", 1000, 333, 3, 1},
		{"price above cash buys nothing", 100, 150, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := NewPosition(decimal.NewFromInt(tt.cash))
			price := decimal.NewFromInt(tt.price)

			bought := pos.Buy(price)
			if bought.Shares != tt.wantShares {
				t.Errorf("Buy() shares = %d, want %d", bought.Shares, tt.wantShares)
			}
			if !bought.Cash.Equal(decimal.NewFromInt(tt.wantCash)) {
				t.Errorf("Buy() cash = %s, want %d", bought.Cash, tt.wantCash)
			}
			// Buying never changes marked-to-market value at the buy price.
			if !bought.Value(price).Equal(pos.Value(price)) {
				t.Errorf("Buy() value = %s, want %s", bought.Value(price), pos.Value(price))
			}

			sold := bought.Sell(price)
			if sold.Shares != 0 {
				t.Errorf("Sell() shares = %d, want 0", sold.Shares)
			}
			if !sold.Cash.Equal(decimal.NewFromInt(tt.cash)) {
				t.Errorf("Sell() cash = %s, want %d", sold.Cash, tt.cash)
			}
		})
	}
}

func TestPositionValueMarksToMarket(t *testing.T) {
	pos := NewPosition(decimal.NewFromInt(1000)).Buy(decimal.NewFromInt(333))
	// 3 shares and 1 leftover: at 400 the position is worth 1201.
	got := pos.Value(decimal.NewFromInt(400))
	if !got.Equal(decimal.NewFromInt(1201)) {
		t.Errorf("Value() = %s, want 1201", got)
	}
}
