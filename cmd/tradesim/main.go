package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"tradesim/internal/config"
	"tradesim/internal/engine"
	"tradesim/internal/feed"
	"tradesim/internal/repository"
	"tradesim/strategies/dp"
	"tradesim/strategies/sma"
	"tradesim/types"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tradesim",
		Short: "Simulate trading strategies over historical daily closes",
	}
	root.AddCommand(runCmd())
	return root
}

func runCmd() *cobra.Command {
	var (
		strategyName string
		tickers      []string
		capitalFlag  float64
		smaWindow    int
		source       string
		dataDir      string
		startFlag    string
		endFlag      string
		workers      int
		outFile      string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a strategy over every loaded instrument and print the summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if dataDir == "" {
				dataDir = cfg.DataDir
			}

			capital := decimal.NewFromFloat(capitalFlag)
			var obs engine.TradeObserver = engine.NopObserver{}
			if verbose {
				obs = engine.NewLogObserver()
			}

			strat, err := buildStrategy(strategyName, capital, smaWindow, obs)
			if err != nil {
				return err
			}

			feeds, err := loadFeeds(cmd, source, dataDir, cfg.DatabaseURL, tickers, startFlag, endFlag)
			if err != nil {
				return err
			}

			runner := engine.NewRunner(strat, workers, true)
			results, err := runner.Run(cmd.Context(), feeds)
			if err != nil {
				return err
			}

			summaries := engine.BuildSummaries(results, capital)
			fmt.Println()
			engine.PrintSummaries(os.Stdout, summaries)

			if outFile != "" {
				if err := engine.WriteSummaryCSVFile(outFile, summaries); err != nil {
					return err
				}
				fmt.Printf("Summary written to %s\n", outFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&strategyName, "strategy", "s", "sma", "strategy: sma, dp-single or dp-multi")
	cmd.Flags().StringSliceVarP(&tickers, "tickers", "t", nil, "tickers to simulate (default: every CSV in the data dir)")
	cmd.Flags().Float64VarP(&capitalFlag, "capital", "c", 10_000_000, "initial capital per instrument")
	cmd.Flags().IntVarP(&smaWindow, "sma-window", "w", engine.DefaultSMAWindow, "SMA window in days (sma strategy only)")
	cmd.Flags().StringVar(&source, "source", "csv", "price source: csv or db")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of per-ticker CSV files")
	cmd.Flags().StringVar(&startFlag, "start", "", "start date YYYY-MM-DD (db source)")
	cmd.Flags().StringVar(&endFlag, "end", "", "end date YYYY-MM-DD (db source)")
	cmd.Flags().IntVarP(&workers, "parallel", "p", 1, "number of parallel workers")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write summary CSV to this path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each trade")
	return cmd
}

func buildStrategy(name string, capital decimal.Decimal, window int, obs engine.TradeObserver) (engine.Strategy, error) {
	switch name {
	case "sma":
		return sma.New(capital, window, obs)
	case "dp-single":
		return dp.NewSingle(capital, obs)
	case "dp-multi":
		return dp.NewMulti(capital, obs)
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

func loadFeeds(cmd *cobra.Command, source, dataDir, dbURL string, tickers []string, startFlag, endFlag string) ([]*types.PriceSeries, error) {
	switch source {
	case "csv":
		feeds, err := feed.LoadDir(dataDir)
		if err != nil {
			return nil, err
		}
		return filterFeeds(feeds, tickers), nil
	case "db":
		return loadFromDatabase(cmd, dbURL, tickers, startFlag, endFlag)
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}
}

func loadFromDatabase(cmd *cobra.Command, dbURL string, tickers []string, startFlag, endFlag string) ([]*types.PriceSeries, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("--tickers is required with --source db")
	}
	start, end, err := parseRange(startFlag, endFlag)
	if err != nil {
		return nil, err
	}

	db, err := repository.NewDatabase(dbURL)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx := cmd.Context()
	var feeds []*types.PriceSeries
	for _, ticker := range tickers {
		asset, err := db.GetAssetByTicker(ticker, ctx)
		if err != nil {
			return nil, err
		}
		series, err := db.GetDailyCloses(asset.Id, asset.Ticker, start, end, ctx)
		if err != nil {
			return nil, err
		}
		feeds = append(feeds, series)
	}
	return feeds, nil
}

func parseRange(startFlag, endFlag string) (time.Time, time.Time, error) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(-3, 0, 0)
	var err error
	if startFlag != "" {
		if start, err = time.Parse("2006-01-02", startFlag); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --start: %w", err)
		}
	}
	if endFlag != "" {
		if end, err = time.Parse("2006-01-02", endFlag); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --end: %w", err)
		}
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("--start must be before --end")
	}
	return start, end, nil
}

func filterFeeds(feeds []*types.PriceSeries, tickers []string) []*types.PriceSeries {
	if len(tickers) == 0 {
		return feeds
	}
	want := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		want[strings.ToUpper(t)] = true
	}
	var out []*types.PriceSeries
	for _, f := range feeds {
		if want[strings.ToUpper(f.Ticker)] {
			out = append(out, f)
		}
	}
	return out
}
