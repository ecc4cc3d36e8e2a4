package repository

import (
	"context"
	"errors"
	"time"

	"tradesim/types"

	"github.com/jackc/pgx/v5"
)

// GetDailyCloses loads the daily closing prices for an asset over
// [start, end) as a PriceSeries ready for simulation.
func (db *Database) GetDailyCloses(assetId int, ticker string, start, end time.Time, ctx context.Context) (*types.PriceSeries, error) {
	points, err := db.prices.DailyCloses(ctx, assetId, start, end)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoPrices
		}
		return nil, err
	}
	if len(points) == 0 {
		return nil, ErrNoPrices
	}
	series := types.NewPriceSeries(ticker, points)
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return series, nil
}
