package repository

import (
	"context"
	"time"

	"tradesim/types"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const assetByTickerSQL = `
SELECT id, ticker, name, type, created_at, modified_at
FROM assets
WHERE ticker = $1`

const dailyClosesSQL = `
SELECT bucket, close
FROM daily_closes
WHERE asset_id = $1 AND bucket >= $2 AND bucket < $3
ORDER BY bucket`

type pgxQueries struct {
	conn *pgxpool.Pool
}

func (q pgxQueries) AssetByTicker(ctx context.Context, ticker string) (types.Asset, error) {
	var a types.Asset
	row := q.conn.QueryRow(ctx, assetByTickerSQL, ticker)
	err := row.Scan(&a.Id, &a.Ticker, &a.Name, &a.Type, &a.CreatedAt, &a.ModifiedAt)
	if err != nil {
		return types.Asset{}, err
	}
	return a, nil
}

func (q pgxQueries) DailyCloses(ctx context.Context, assetID int, start, end time.Time) ([]types.PricePoint, error) {
	rows, err := q.conn.Query(ctx, dailyClosesSQL, assetID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []types.PricePoint
	for rows.Next() {
		var (
			bucket     time.Time
			closePrice decimal.Decimal
		)
		if err := rows.Scan(&bucket, &closePrice); err != nil {
			return nil, err
		}
		points = append(points, types.PricePoint{Date: bucket, Close: closePrice})
	}
	return points, rows.Err()
}
