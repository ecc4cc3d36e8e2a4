package engine

import (
	"context"
	"fmt"
	"sync"

	"tradesim/types"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of simulating one instrument. A failed
// instrument carries its error here instead of aborting the batch.
type Result struct {
	Ticker string
	Series types.PortfolioSeries
	Err    error
}

// Runner maps a batch of price series through one strategy. Instruments
// are independent, so the fan-out needs no coordination beyond
// collecting results by ticker.
type Runner struct {
	strat    Strategy
	workers  int
	progress bool
}

// NewRunner builds a runner. workers <= 1 runs the batch sequentially;
// anything higher bounds the parallel fan-out.
func NewRunner(strat Strategy, workers int, showProgress bool) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{strat: strat, workers: workers, progress: showProgress}
}

func (r *Runner) Run(ctx context.Context, feeds []*types.PriceSeries) (map[string]Result, error) {
	results := make(map[string]Result, len(feeds))
	for _, feed := range feeds {
		if _, ok := results[feed.Ticker]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTicker, feed.Ticker)
		}
		results[feed.Ticker] = Result{}
	}

	var bar *progressbar.ProgressBar
	if r.progress {
		bar = initProgressBar(len(feeds))
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, feed := range feeds {
		feed := feed
		g.Go(func() error {
			res := r.simulate(ctx, feed)
			mu.Lock()
			results[feed.Ticker] = res
			mu.Unlock()
			if bar != nil {
				bar.Add(1)
			}
			// Per-instrument failures stay in the Result so the rest
			// of the batch still completes.
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) simulate(ctx context.Context, feed *types.PriceSeries) Result {
	res := Result{Ticker: feed.Ticker}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	if err := feed.Validate(); err != nil {
		res.Err = fmt.Errorf("validate %s: %w", feed.Ticker, err)
		return res
	}
	series, err := r.strat.Run(feed)
	if err != nil {
		res.Err = fmt.Errorf("simulate %s: %w", feed.Ticker, err)
		return res
	}
	res.Series = series
	return res
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Simulating instruments..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
