// Package dp holds the dynamic-programming trade simulators: one that
// executes the single best buy/sell pair, and one that tabulates and
// replays an optimal sequence of repeated all-in transactions.
package dp

import (
	"tradesim/internal/engine"
	"tradesim/types"
)

// replay walks the series forward applying the given transactions on
// their designated days and records the daily marked-to-market value.
// Transactions must be in chronological order and alternate buy/sell.
// A position still open after the last day is force-liquidated at the
// final close so the reported final value is realized, not paper.
func replay(series *types.PriceSeries, pos engine.Position, txs []types.Transaction, obs engine.TradeObserver) types.PortfolioSeries {
	out := types.PortfolioSeries{
		Ticker: series.Ticker,
		Points: make([]types.PortfolioPoint, series.Len()),
	}
	next := 0
	for i, p := range series.Points {
		if next < len(txs) && txs[next].Day == i {
			tx := txs[next]
			switch tx.Side {
			case types.SideBuy:
				pos = pos.Buy(tx.Price)
			case types.SideSell:
				pos = pos.Sell(tx.Price)
			}
			obs.OnTrade(series.Ticker, p.Date, tx, pos)
			next++
		}
		out.Points[i] = types.PortfolioPoint{Date: p.Date, Value: pos.Value(p.Close)}
	}

	if pos.Holding() {
		last := series.Points[series.Len()-1]
		pos = pos.Sell(last.Close)
		obs.OnTrade(series.Ticker, last.Date, types.Transaction{
			Day:   series.Len() - 1,
			Side:  types.SideSell,
			Price: last.Close,
		}, pos)
		out.Points[series.Len()-1] = types.PortfolioPoint{Date: last.Date, Value: pos.Cash}
	}
	return out
}
