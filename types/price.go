package types

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveClose   = errors.New("closing price must be positive")
	ErrDatesNotIncreasing = errors.New("dates must be strictly increasing")
)

// PricePoint is one daily closing price.
type PricePoint struct {
	Date  time.Time
	Close decimal.Decimal
}

// PriceSeries is an ordered run of daily closes for one instrument.
// Dates are strictly increasing and closes positive. The series is
// loaded once and lent by reference to each simulator; nothing mutates
// it after Validate passes.
type PriceSeries struct {
	Ticker string
	Points []PricePoint
}

func NewPriceSeries(ticker string, points []PricePoint) *PriceSeries {
	return &PriceSeries{Ticker: ticker, Points: points}
}

func (s *PriceSeries) Len() int {
	return len(s.Points)
}

func (s *PriceSeries) Validate() error {
	for i, p := range s.Points {
		if !p.Close.IsPositive() {
			return ErrNonPositiveClose
		}
		if i > 0 && !p.Date.After(s.Points[i-1].Date) {
			return ErrDatesNotIncreasing
		}
	}
	return nil
}

// PortfolioPoint is the marked-to-market value of the position on one day.
type PortfolioPoint struct {
	Date  time.Time
	Value decimal.Decimal
}

// PortfolioSeries aligns 1:1 with the input PriceSeries: same length,
// same dates.
type PortfolioSeries struct {
	Ticker string
	Points []PortfolioPoint
}

// Final returns the last portfolio value, or zero for an empty series.
func (s PortfolioSeries) Final() decimal.Decimal {
	if len(s.Points) == 0 {
		return decimal.Zero
	}
	return s.Points[len(s.Points)-1].Value
}
