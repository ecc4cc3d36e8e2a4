package dp

import (
	"tradesim/internal/engine"
	"tradesim/types"

	"github.com/shopspring/decimal"
)

// Single finds the one buy/sell pair maximizing price[sell] - price[buy]
// and executes only that pair. When prices never rise, it executes
// nothing and the portfolio stays flat at the initial capital, so the
// final value is never below it.
type Single struct {
	capital decimal.Decimal
	obs     engine.TradeObserver
}

func NewSingle(capital decimal.Decimal, obs engine.TradeObserver) (*Single, error) {
	if err := engine.ValidateCapital(capital); err != nil {
		return nil, err
	}
	if obs == nil {
		obs = engine.NopObserver{}
	}
	return &Single{capital: capital, obs: obs}, nil
}

func (s *Single) Name() string {
	return "dp-single"
}

func (s *Single) Run(series *types.PriceSeries) (types.PortfolioSeries, error) {
	n := series.Len()
	if n == 0 {
		return types.PortfolioSeries{Ticker: series.Ticker}, nil
	}
	if n < 2 {
		return engine.FlatSeries(series, s.capital), nil
	}

	// One pass: running minimum and the profit of selling today
	// against it. Only a strictly greater profit replaces the best
	// pair, which keeps the earliest optimal pair on ties.
	minPrice := series.Points[0].Close
	minDay := 0
	maxProfit := decimal.Zero
	buyDay, sellDay := -1, -1
	for i := 1; i < n; i++ {
		price := series.Points[i].Close
		if profit := price.Sub(minPrice); profit.GreaterThan(maxProfit) {
			maxProfit = profit
			buyDay = minDay
			sellDay = i
		}
		if price.LessThan(minPrice) {
			minPrice = price
			minDay = i
		}
	}

	if buyDay < 0 {
		s.obs.OnNoTrade(series.Ticker, "no profitable buy/sell pair")
		return engine.FlatSeries(series, s.capital), nil
	}

	txs := []types.Transaction{
		{Day: buyDay, Side: types.SideBuy, Price: series.Points[buyDay].Close},
		{Day: sellDay, Side: types.SideSell, Price: series.Points[sellDay].Close},
	}
	return replay(series, engine.NewPosition(s.capital), txs, s.obs), nil
}
