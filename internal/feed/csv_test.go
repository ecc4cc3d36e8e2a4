package feed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tradesim/types"

	"github.com/shopspring/decimal"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "BBCA.csv", "date,close\n2024-01-02,9850\n2024-01-03,9925.5\n")

	series, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if series.Ticker != "BBCA" {
		t.Errorf("ticker = %s, want BBCA", series.Ticker)
	}
	if series.Len() != 2 {
		t.Fatalf("got %d points, want 2", series.Len())
	}
	if !series.Points[0].Date.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first date = %s", series.Points[0].Date)
	}
	if !series.Points[1].Close.Equal(decimal.NewFromFloat(9925.5)) {
		t.Errorf("second close = %s, want 9925.5", series.Points[1].Close)
	}
}

func TestLoadFile_RejectsBadSeries(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"dates not increasing", "date,close\n2024-01-03,100\n2024-01-02,110\n", types.ErrDatesNotIncreasing},
		{"non-positive close", "date,close\n2024-01-02,0\n", types.ErrNonPositiveClose},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".csv", tt.content)
			_, err := LoadFile(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "AAA.csv", "date,close\n2024-01-02,10\n")
	writeFile(t, dir, "BBB.csv", "date,close\n2024-01-02,20\n")

	feeds, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(feeds) != 2 {
		t.Fatalf("got %d feeds, want 2", len(feeds))
	}
}

func TestLoadDir_EmptyDirFails(t *testing.T) {
	if _, err := LoadDir(t.TempDir()); err == nil {
		t.Error("expected error for directory without price files")
	}
}

func TestWriteSeriesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	series := types.NewPriceSeries("AAA", []types.PricePoint{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: decimal.NewFromInt(100)},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Close: decimal.RequireFromString("101.25")},
	})
	if err := WriteSeries(dir, series); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(filepath.Join(dir, "AAA.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != series.Len() {
		t.Fatalf("got %d points, want %d", got.Len(), series.Len())
	}
	for i := range series.Points {
		if !got.Points[i].Date.Equal(series.Points[i].Date) {
			t.Errorf("point %d date = %s, want %s", i, got.Points[i].Date, series.Points[i].Date)
		}
		if !got.Points[i].Close.Equal(series.Points[i].Close) {
			t.Errorf("point %d close = %s, want %s", i, got.Points[i].Close, series.Points[i].Close)
		}
	}
}
