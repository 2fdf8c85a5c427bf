package storage

import (
	"fmt"
	"testing"
	"time"

	"oms/pkg/oms"
	"oms/pkg/oms/book"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := OpenJournal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func sampleTrade(id string, symbol string, at time.Time) *oms.Trade {
	return &oms.Trade{
		TradeID:    id,
		Symbol:     symbol,
		Side:       book.Buy,
		Amount:     22,
		TotalPrice: 442,
		ExecutedAt: at,
		Fills: []oms.Fill{
			{OrderID: 1, FilledAmount: 20, FillPrice: 20},
			{OrderID: 4, FilledAmount: 2, FillPrice: 21},
		},
	}
}

func TestAppendAndRecent(t *testing.T) {
	j := openTestJournal(t)
	base := time.Unix(1700000000, 0).UTC()

	if err := j.Append(sampleTrade("t1", "JPM", base)); err != nil {
		t.Fatal(err)
	}
	if err := j.Append(sampleTrade("t2", "JPM", base.Add(time.Second))); err != nil {
		t.Fatal(err)
	}

	trades, err := j.Recent("JPM", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 2 {
		t.Fatalf("got %d trades", len(trades))
	}
	// Newest first.
	if trades[0].TradeID != "t2" || trades[1].TradeID != "t1" {
		t.Fatalf("ordering: %s, %s", trades[0].TradeID, trades[1].TradeID)
	}

	got := trades[1]
	if got.Symbol != "JPM" || got.TotalPrice != 442 || len(got.Fills) != 2 {
		t.Fatalf("round trip: %+v", got)
	}
	if got.Fills[0].OrderID != 1 || got.Fills[1].FillPrice != 21 {
		t.Fatalf("fills: %+v", got.Fills)
	}
	if !got.ExecutedAt.Equal(base) {
		t.Fatalf("executed_at: %v", got.ExecutedAt)
	}
}

func TestRecentSymbolIsolation(t *testing.T) {
	j := openTestJournal(t)
	base := time.Unix(1700000000, 0).UTC()

	if err := j.Append(sampleTrade("t1", "JPM", base)); err != nil {
		t.Fatal(err)
	}
	if err := j.Append(sampleTrade("t2", "GOOG", base)); err != nil {
		t.Fatal(err)
	}

	trades, err := j.Recent("JPM", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 1 || trades[0].Symbol != "JPM" {
		t.Fatalf("isolation: %+v", trades)
	}

	trades, err = j.Recent("XYZ", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 0 {
		t.Fatalf("unknown symbol: %+v", trades)
	}
}

func TestRecentLimit(t *testing.T) {
	j := openTestJournal(t)
	base := time.Unix(1700000000, 0).UTC()

	for i := 0; i < 5; i++ {
		tr := sampleTrade(fmt.Sprintf("t%d", i), "JPM", base.Add(time.Duration(i)*time.Second))
		if err := j.Append(tr); err != nil {
			t.Fatal(err)
		}
	}

	trades, err := j.Recent("JPM", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 3 {
		t.Fatalf("got %d, want 3", len(trades))
	}
	if trades[0].TradeID != "t4" || trades[2].TradeID != "t2" {
		t.Fatalf("window: %s..%s", trades[0].TradeID, trades[2].TradeID)
	}
}
