package sma

import (
	"tradesim/internal/engine"
	"tradesim/types"

	"github.com/shopspring/decimal"
)

// Strategy is a trend-following heuristic over a trailing simple moving
// average: go all-in when the close crosses above the SMA, liquidate
// when it crosses below. Ties do nothing, and no trading happens until
// the window has filled.
type Strategy struct {
	capital decimal.Decimal
	window  int
	obs     engine.TradeObserver
}

func New(capital decimal.Decimal, window int, obs engine.TradeObserver) (*Strategy, error) {
	if err := engine.ValidateCapital(capital); err != nil {
		return nil, err
	}
	if window < 1 {
		return nil, engine.ErrInvalidParameter
	}
	if obs == nil {
		obs = engine.NopObserver{}
	}
	return &Strategy{capital: capital, window: window, obs: obs}, nil
}

func (s *Strategy) Name() string {
	return "sma"
}

func (s *Strategy) Run(series *types.PriceSeries) (types.PortfolioSeries, error) {
	n := series.Len()
	if n == 0 {
		return types.PortfolioSeries{Ticker: series.Ticker}, nil
	}
	if n < 2 {
		return engine.FlatSeries(series, s.capital), nil
	}

	out := types.PortfolioSeries{
		Ticker: series.Ticker,
		Points: make([]types.PortfolioPoint, n),
	}
	pos := engine.NewPosition(s.capital)
	windowSize := decimal.NewFromInt(int64(s.window))
	windowSum := decimal.Zero

	for i, p := range series.Points {
		windowSum = windowSum.Add(p.Close)
		if i >= s.window {
			windowSum = windowSum.Sub(series.Points[i-s.window].Close)
		}

		// SMA undefined until the window fills; no trading, capital
		// reported unchanged.
		if i < s.window-1 {
			out.Points[i] = types.PortfolioPoint{Date: p.Date, Value: s.capital}
			continue
		}

		avg := windowSum.Div(windowSize)
		switch {
		case p.Close.GreaterThan(avg) && !pos.Holding():
			bought := pos.Buy(p.Close)
			if bought.Holding() {
				pos = bought
				s.obs.OnTrade(series.Ticker, p.Date, types.Transaction{Day: i, Side: types.SideBuy, Price: p.Close}, pos)
			}
		case p.Close.LessThan(avg) && pos.Holding():
			pos = pos.Sell(p.Close)
			s.obs.OnTrade(series.Ticker, p.Date, types.Transaction{Day: i, Side: types.SideSell, Price: p.Close}, pos)
		}
		out.Points[i] = types.PortfolioPoint{Date: p.Date, Value: pos.Value(p.Close)}
	}
	return out, nil
}
