package dp

import (
	"testing"

	"tradesim/internal/engine"
	"tradesim/types"

	"github.com/shopspring/decimal"
)

func TestMulti_RepeatedCycles(t *testing.T) {
	// Two profitable swings: 5 -> 14 and 3 -> 12. The tabulated optimum
	// is 11200 under fractional reinvestment; the whole-share replay
	// lands at 11197 (remainder cash of 1 after the 2800/3 buy).
	capital := decimal.NewFromInt(1000)
	obs := &recordingObserver{}
	strat, err := NewMulti(capital, obs)
	if err != nil {
		t.Fatal(err)
	}
	got, err := strat.Run(mockSeries(10, 5, 14, 3, 12))
	if err != nil {
		t.Fatal(err)
	}

	wantValues := []int64{1000, 1000, 2800, 2800, 11197}
	for i, want := range wantValues {
		if !got.Points[i].Value.Equal(decimal.NewFromInt(want)) {
			t.Errorf("day %d value = %s, want %d", i, got.Points[i].Value, want)
		}
	}

	wantDays := []int{1, 2, 3, 4}
	wantSides := []types.Side{types.SideBuy, types.SideSell, types.SideBuy, types.SideSell}
	if len(obs.trades) != 4 {
		t.Fatalf("got %d trades, want 4: %+v", len(obs.trades), obs.trades)
	}
	for i, tx := range obs.trades {
		if tx.Day != wantDays[i] || tx.Side != wantSides[i] {
			t.Errorf("trade %d = %+v, want day %d %s", i, tx, wantDays[i], wantSides[i])
		}
	}
}

func TestMulti_SingleRise(t *testing.T) {
	capital := decimal.NewFromInt(1000)
	strat, err := NewMulti(capital, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := strat.Run(mockSeries(1, 2, 4))
	if err != nil {
		t.Fatal(err)
	}
	// Buy on day 1 at 2 (500 shares), sell on day 2 at 4.
	wantValues := []int64{1000, 1000, 2000}
	for i, want := range wantValues {
		if !got.Points[i].Value.Equal(decimal.NewFromInt(want)) {
			t.Errorf("day %d value = %s, want %d", i, got.Points[i].Value, want)
		}
	}
}

func TestMulti_DecreasingPricesStayInCash(t *testing.T) {
	capital := decimal.NewFromInt(1000)
	obs := &recordingObserver{}
	strat, err := NewMulti(capital, obs)
	if err != nil {
		t.Fatal(err)
	}
	got, err := strat.Run(mockSeries(100, 90, 80, 70))
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range got.Points {
		if !p.Value.Equal(capital) {
			t.Errorf("day %d value = %s, want %s", i, p.Value, capital)
		}
	}
	if len(obs.trades) != 0 {
		t.Errorf("expected no trades, got %+v", obs.trades)
	}
	if len(obs.noTrades) != 1 {
		t.Errorf("expected one no-trade event, got %d", len(obs.noTrades))
	}
}

func TestMulti_TransactionsAlternate(t *testing.T) {
	capital := decimal.NewFromInt(100_000)
	obs := &recordingObserver{}
	strat, err := NewMulti(capital, obs)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := strat.Run(mockSeries(8, 4, 10, 2, 6, 3, 9, 1, 5)); err != nil {
		t.Fatal(err)
	}
	if len(obs.trades) == 0 {
		t.Fatal("expected trades on a zigzag series")
	}
	for i, tx := range obs.trades {
		want := types.SideBuy
		if i%2 == 1 {
			want = types.SideSell
		}
		if tx.Side != want {
			t.Errorf("trade %d side = %s, want %s", i, tx.Side, want)
		}
		if i > 0 && obs.trades[i-1].Day >= tx.Day {
			t.Errorf("trade %d day %d not after previous day %d", i, tx.Day, obs.trades[i-1].Day)
		}
	}
}

func TestMulti_DegenerateInputs(t *testing.T) {
	capital := decimal.NewFromInt(1000)
	strat, err := NewMulti(capital, nil)
	if err != nil {
		t.Fatal(err)
	}

	got, err := strat.Run(mockSeries())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Points) != 0 {
		t.Errorf("empty input should yield empty output, got %d points", len(got.Points))
	}

	got, err = strat.Run(mockSeries(42))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Points) != 1 || !got.Points[0].Value.Equal(capital) {
		t.Errorf("single-point input should stay flat, got %+v", got.Points)
	}
}

func TestMulti_Idempotent(t *testing.T) {
	strat, err := NewMulti(decimal.NewFromInt(1000), nil)
	if err != nil {
		t.Fatal(err)
	}
	series := mockSeries(8, 4, 10, 2, 6, 3, 9)
	first, _ := strat.Run(series)
	second, _ := strat.Run(series)
	for i := range first.Points {
		if !first.Points[i].Value.Equal(second.Points[i].Value) {
			t.Errorf("day %d differs between runs", i)
		}
	}
}

func TestReplay_ForceLiquidatesOpenPosition(t *testing.T) {
	// A dangling buy leaves the position open past the last day; the
	// replay must realize it at the final close.
	series := mockSeries(10, 20, 30)
	obs := &recordingObserver{}
	txs := []types.Transaction{{Day: 1, Side: types.SideBuy, Price: decimal.NewFromInt(20)}}

	got := replay(series, engine.NewPosition(decimal.NewFromInt(1000)), txs, obs)

	wantValues := []int64{1000, 1000, 1500}
	for i, want := range wantValues {
		if !got.Points[i].Value.Equal(decimal.NewFromInt(want)) {
			t.Errorf("day %d value = %s, want %d", i, got.Points[i].Value, want)
		}
	}
	last := obs.trades[len(obs.trades)-1]
	if last.Side != types.SideSell || last.Day != 2 {
		t.Errorf("expected forced sell on day 2, got %+v", last)
	}
}
