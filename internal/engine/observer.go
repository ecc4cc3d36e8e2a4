package engine

import (
	"fmt"
	"os"
	"strings"
	"time"

	"tradesim/types"

	"go.uber.org/zap"
)

// TradeObserver receives trade events as a simulation replays them.
// Observers are side channels: nothing they do can influence the
// computed portfolio values.
type TradeObserver interface {
	OnTrade(ticker string, date time.Time, tx types.Transaction, after Position)
	OnNoTrade(ticker string, reason string)
}

// NopObserver discards all events. The default for library callers.
type NopObserver struct{}

func (NopObserver) OnTrade(string, time.Time, types.Transaction, Position) {}
func (NopObserver) OnNoTrade(string, string)                               {}

// LogObserver writes structured trade events through zap. It replaces
// the ad hoc printing that trading loops tend to grow.
type LogObserver struct {
	log *zap.SugaredLogger
}

func NewLogObserver() *LogObserver {
	return &LogObserver{log: newLogger()}
}

func (o *LogObserver) OnTrade(ticker string, date time.Time, tx types.Transaction, after Position) {
	o.log.Infow("trade",
		"ticker", ticker,
		"date", date.Format("2006-01-02"),
		"side", string(tx.Side),
		"price", tx.Price.String(),
		"shares", after.Shares,
		"cash", after.Cash.StringFixed(2),
	)
}

func (o *LogObserver) OnNoTrade(ticker string, reason string) {
	o.log.Debugw("no trade", "ticker", ticker, "reason", reason)
}

func newLogger() *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	if strings.ToLower(os.Getenv("TRADESIM_ENV")) == "dev" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}
	return logger.Sugar()
}
