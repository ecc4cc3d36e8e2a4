package engine

import (
	"fmt"
	"io"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Summary condenses one instrument's portfolio series for reporting.
type Summary struct {
	Ticker         string
	InitialCapital decimal.Decimal
	FinalValue     decimal.Decimal
	TotalReturnPct decimal.Decimal
	MaxDrawdownPct float64
	Volatility     float64 // stddev of daily returns
	Err            error
}

// BuildSummaries flattens a batch result into per-ticker summaries,
// sorted by ticker for stable reporting.
func BuildSummaries(results map[string]Result, capital decimal.Decimal) []Summary {
	summaries := make([]Summary, 0, len(results))
	for ticker, res := range results {
		if res.Err != nil {
			summaries = append(summaries, Summary{Ticker: ticker, InitialCapital: capital, Err: res.Err})
			continue
		}
		summaries = append(summaries, summarize(ticker, res, capital))
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Ticker < summaries[j].Ticker })
	return summaries
}

func summarize(ticker string, res Result, capital decimal.Decimal) Summary {
	s := Summary{
		Ticker:         ticker,
		InitialCapital: capital,
		FinalValue:     capital,
	}
	if len(res.Series.Points) == 0 {
		return s
	}
	s.FinalValue = res.Series.Final()
	s.TotalReturnPct = s.FinalValue.Sub(capital).Div(capital).Mul(oneHundred)

	values := make([]float64, len(res.Series.Points))
	for i, p := range res.Series.Points {
		values[i], _ = p.Value.Float64()
	}
	s.MaxDrawdownPct = maxDrawdownPct(values)

	returns := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		if values[i-1] != 0 {
			returns = append(returns, values[i]/values[i-1]-1)
		}
	}
	if len(returns) > 1 {
		// Population stddev matches how the series is a complete run,
		// not a sample from one.
		if sd, err := stats.StandardDeviationPopulation(returns); err == nil {
			s.Volatility = sd
		}
	}
	return s
}

func maxDrawdownPct(values []float64) float64 {
	var peak, maxDD float64
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (peak - v) / peak * 100
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// PrintSummaries writes the overall batch summary, one line per
// instrument, mirroring what operators expect at the end of a run.
func PrintSummaries(w io.Writer, summaries []Summary) {
	fmt.Fprintln(w, "===== Simulation Summary =====")
	for _, s := range summaries {
		if s.Err != nil {
			fmt.Fprintf(w, "%s: FAILED: %v\n", s.Ticker, s.Err)
			continue
		}
		fmt.Fprintf(w, "%s: Final Value: %s, Return: %s%%, Max Drawdown: %.2f%%\n",
			s.Ticker,
			s.FinalValue.StringFixed(2),
			s.TotalReturnPct.StringFixed(2),
			s.MaxDrawdownPct,
		)
	}
}
