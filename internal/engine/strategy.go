package engine

import (
	"errors"

	"tradesim/types"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidParameter = errors.New("invalid simulation parameter")
	ErrDuplicateTicker  = errors.New("duplicate ticker in simulation batch")
)

// DefaultInitialCapital is 10,000,000 currency units.
var DefaultInitialCapital = decimal.NewFromInt(10_000_000)

const DefaultSMAWindow = 5

// Strategy turns a price series into the daily portfolio value an
// all-in trading policy would have produced over it. Run is a pure
// function of the series and the strategy's construction parameters:
// no state survives between calls, so one instance can simulate many
// instruments concurrently.
//
// Degenerate inputs are not errors. An empty series yields an empty
// result; a series too short to trade on yields a flat series at the
// initial capital. Only invalid construction parameters make Run fail.
type Strategy interface {
	Name() string
	Run(series *types.PriceSeries) (types.PortfolioSeries, error)
}

// ValidateCapital rejects a non-positive initial capital before any
// simulation work starts.
func ValidateCapital(capital decimal.Decimal) error {
	if !capital.IsPositive() {
		return ErrInvalidParameter
	}
	return nil
}

// FlatSeries is the degenerate output: the initial capital repeated for
// every input day. Used when the input is too short to trade on or no
// profitable trade exists.
func FlatSeries(series *types.PriceSeries, capital decimal.Decimal) types.PortfolioSeries {
	out := types.PortfolioSeries{Ticker: series.Ticker}
	if series.Len() == 0 {
		return out
	}
	out.Points = make([]types.PortfolioPoint, series.Len())
	for i, p := range series.Points {
		out.Points[i] = types.PortfolioPoint{Date: p.Date, Value: capital}
	}
	return out
}
