package types

import (
	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Transaction is an all-in trade on one day of a price series. Day is
// the index into the series the trade belongs to, not a calendar date.
// Transactions are derived during reconstruction and replay; they are
// never persisted.
type Transaction struct {
	Day   int
	Side  Side
	Price decimal.Decimal
}
