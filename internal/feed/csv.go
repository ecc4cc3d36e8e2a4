// Package feed loads and stores per-ticker price series as CSV files,
// one file per instrument with a date,close row per trading day.
package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tradesim/types"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

type priceRow struct {
	Date  DateColumn      `csv:"date"`
	Close decimal.Decimal `csv:"close"`
}

// DateColumn marshals a bare 2006-01-02 date in and out of CSV.
type DateColumn struct {
	time.Time
}

func (d *DateColumn) UnmarshalCSV(field string) error {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(field))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DateColumn) MarshalCSV() (string, error) {
	return d.Time.Format("2006-01-02"), nil
}

// LoadFile reads one instrument's series from a CSV file; the ticker is
// the file name without extension.
func LoadFile(path string) (*types.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price file: %w", err)
	}
	defer f.Close()

	var rows []priceRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	points := make([]types.PricePoint, len(rows))
	for i, row := range rows {
		points[i] = types.PricePoint{Date: row.Date.Time, Close: row.Close}
	}

	ticker := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	series := types.NewPriceSeries(ticker, points)
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return series, nil
}

// LoadDir reads every *.csv under dir into a series per instrument.
func LoadDir(dir string) ([]*types.PriceSeries, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no price files found in %s", dir)
	}

	var all []*types.PriceSeries
	for _, path := range paths {
		series, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, series)
	}
	return all, nil
}

// WriteSeries persists a series in the same date,close shape LoadFile
// reads back.
func WriteSeries(dir string, series *types.PriceSeries) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, series.Ticker+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create price file: %w", err)
	}
	defer f.Close()

	rows := make([]priceRow, len(series.Points))
	for i, p := range series.Points {
		rows[i] = priceRow{Date: DateColumn{p.Date}, Close: p.Close}
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
