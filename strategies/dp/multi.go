package dp

import (
	"tradesim/internal/engine"
	"tradesim/types"

	"github.com/shopspring/decimal"
)

// reconstructionTolerance bounds how far a tabulated value may sit from
// the transition that explains it before the backward walk rejects the
// match. Exact equality is unsafe: the tabulation carries holdings
// forward through price-ratio division while the replay deals in whole
// shares, so the two agree only approximately. Tunable.
var reconstructionTolerance = decimal.NewFromFloat(1e-9)

// Multi tabulates the best achievable value per day in each of two
// states, all-cash and all-in, then walks the table backward to recover
// the transaction sequence that achieves the optimum and replays it.
type Multi struct {
	capital decimal.Decimal
	obs     engine.TradeObserver
}

func NewMulti(capital decimal.Decimal, obs engine.TradeObserver) (*Multi, error) {
	if err := engine.ValidateCapital(capital); err != nil {
		return nil, err
	}
	if obs == nil {
		obs = engine.NopObserver{}
	}
	return &Multi{capital: capital, obs: obs}, nil
}

func (m *Multi) Name() string {
	return "dp-multi"
}

func (m *Multi) Run(series *types.PriceSeries) (types.PortfolioSeries, error) {
	n := series.Len()
	if n == 0 {
		return types.PortfolioSeries{Ticker: series.Ticker}, nil
	}
	if n < 2 {
		return engine.FlatSeries(series, m.capital), nil
	}

	cash, hold := m.tabulate(series)
	txs := reconstruct(series, cash, hold)
	if len(txs) == 0 {
		m.obs.OnNoTrade(series.Ticker, "optimal policy is to stay in cash")
		return engine.FlatSeries(series, m.capital), nil
	}
	return replay(series, engine.NewPosition(m.capital), txs, m.obs), nil
}

// tabulate fills the two state arrays. The price-ratio term values a
// carried holding mark-to-market without forcing a sell/rebuy each day;
// it implies fractional reinvestment, which the whole-share replay
// later reconciles through the tolerance.
func (m *Multi) tabulate(series *types.PriceSeries) (cash, hold []decimal.Decimal) {
	n := series.Len()
	cash = make([]decimal.Decimal, n)
	hold = make([]decimal.Decimal, n)
	cash[0] = m.capital
	hold[0] = decimal.Zero // no position exists before the first trade

	for i := 1; i < n; i++ {
		ratio := series.Points[i].Close.Div(series.Points[i-1].Close)
		carried := hold[i-1].Mul(ratio)
		cash[i] = decimal.Max(cash[i-1], carried)
		hold[i] = decimal.Max(carried, cash[i-1])
	}
	return cash, hold
}

// reconstruct walks the tabulated values backward from the last day,
// emitting a transaction whenever a state is explained by a buy or sell
// transition rather than a carry-over. The terminal state favors cash
// on ties: ending liquid is never worse. The collected transactions
// come out newest first and are reversed before returning.
func reconstruct(series *types.PriceSeries, cash, hold []decimal.Decimal) []types.Transaction {
	n := series.Len()
	holding := hold[n-1].GreaterThan(cash[n-1])

	var txs []types.Transaction
	for i := n - 1; i >= 1; i-- {
		price := series.Points[i].Close
		ratio := price.Div(series.Points[i-1].Close)
		if holding {
			// Bought today with yesterday's cash?
			if withinTolerance(hold[i], cash[i-1]) {
				txs = append(txs, types.Transaction{Day: i, Side: types.SideBuy, Price: price})
				holding = false
			}
		} else {
			// Sold today what was carried from yesterday?
			if withinTolerance(cash[i], hold[i-1].Mul(ratio)) && hold[i-1].IsPositive() {
				txs = append(txs, types.Transaction{Day: i, Side: types.SideSell, Price: price})
				holding = true
			}
		}
	}

	for l, r := 0, len(txs)-1; l < r; l, r = l+1, r-1 {
		txs[l], txs[r] = txs[r], txs[l]
	}
	return txs
}

func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(reconstructionTolerance)
}
