package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteSummaryCSVFile writes the batch summary to a CSV file at path.
func WriteSummaryCSVFile(path string, summaries []Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary file: %w", err)
	}
	defer f.Close()

	return WriteSummaryCSV(f, summaries)
}

// WriteSummaryCSV writes summaries to any io.Writer as CSV. Pass
// os.Stdout for debugging, or a file.
func WriteSummaryCSV(w io.Writer, summaries []Summary) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"ticker",
		"initial_capital",
		"final_value",
		"total_return_pct",
		"max_drawdown_pct",
		"volatility",
		"error",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, s := range summaries {
		errText := ""
		if s.Err != nil {
			errText = s.Err.Error()
		}
		record := []string{
			s.Ticker,
			s.InitialCapital.String(),
			s.FinalValue.String(),
			s.TotalReturnPct.StringFixed(4),
			strconv.FormatFloat(s.MaxDrawdownPct, 'f', 4, 64),
			strconv.FormatFloat(s.Volatility, 'f', 6, 64),
			errText,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
