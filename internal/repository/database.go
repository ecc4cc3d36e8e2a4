package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradesim/types"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Global error declarations.
var (
	ErrAssetNotFound = errors.New("not found in datasource")
	ErrNoPrices      = errors.New("no prices found in datasource")
)

type assetQuerier interface {
	AssetByTicker(ctx context.Context, ticker string) (types.Asset, error)
}

type priceQuerier interface {
	DailyCloses(ctx context.Context, assetID int, start, end time.Time) ([]types.PricePoint, error)
}

// Database holds the connection pool and the query layer behind small
// interfaces so tests can swap them out.
type Database struct {
	assets assetQuerier
	prices priceQuerier
	conn   *pgxpool.Pool
}

// NewDatabase creates a new Database instance and verifies connectivity.
func NewDatabase(dbURL string) (Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return Database{}, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return Database{}, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(context.Background()); err != nil {
		return Database{}, err
	}

	queries := pgxQueries{conn: conn}
	return Database{
		assets: queries,
		prices: queries,
		conn:   conn,
	}, nil
}

func (db *Database) Close() {
	if db.conn != nil {
		db.conn.Close()
	}
}
