package engine

import (
	"github.com/shopspring/decimal"
)

// Position is the all-in/all-out simulator state: either all cash or
// all shares, never a sized partial position. Shares are whole units;
// buying floors cash/price and keeps the remainder as cash, so Value
// can briefly hold both a share count and leftover cash.
type Position struct {
	Cash   decimal.Decimal
	Shares int64
}

func NewPosition(cash decimal.Decimal) Position {
	return Position{Cash: cash}
}

func (p Position) Holding() bool {
	return p.Shares > 0
}

// Buy converts all cash into shares at price, floor division. Returns
// the position unchanged when no whole share is affordable.
func (p Position) Buy(price decimal.Decimal) Position {
	shares := p.Cash.Div(price).Floor().IntPart()
	if shares <= 0 {
		return p
	}
	cost := price.Mul(decimal.NewFromInt(shares))
	return Position{Cash: p.Cash.Sub(cost), Shares: p.Shares + shares}
}

// Sell liquidates every share at price.
func (p Position) Sell(price decimal.Decimal) Position {
	proceeds := price.Mul(decimal.NewFromInt(p.Shares))
	return Position{Cash: p.Cash.Add(proceeds), Shares: 0}
}

// Value marks the position to market at price.
func (p Position) Value(price decimal.Decimal) decimal.Decimal {
	if p.Shares == 0 {
		return p.Cash
	}
	return p.Cash.Add(price.Mul(decimal.NewFromInt(p.Shares)))
}
