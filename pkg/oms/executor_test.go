package oms

import (
	"errors"
	"testing"
	"time"

	"oms/pkg/oms/book"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestExecutor() *TradeExecutor {
	return NewTradeExecutor(fixedClock{t: time.Unix(1700000000, 0).UTC()})
}

func TestExecuteConservation(t *testing.T) {
	ex := newTestExecutor()
	b := fixtureBook(t)

	trade, removed, err := ex.Execute(b, book.Buy, 22)
	if err != nil {
		t.Fatal(err)
	}

	if trade.Amount != 22 || trade.TotalPrice != 442 {
		t.Fatalf("trade: amount=%d total=%d", trade.Amount, trade.TotalPrice)
	}
	var filled, total int64
	for _, f := range trade.Fills {
		filled += f.FilledAmount
		total += f.FilledAmount * f.FillPrice
	}
	if filled != trade.Amount || total != trade.TotalPrice {
		t.Fatalf("conservation broken: filled=%d total=%d", filled, total)
	}

	// Resting amount on the consumed side drops by exactly the request.
	if b.Resting(book.Buy) != 30-22 {
		t.Fatalf("resting after trade: %d", b.Resting(book.Buy))
	}
	// 20@20 fully consumed, 10@21 reduced to 8 in place.
	if len(removed) != 1 || removed[0] != 1 {
		t.Fatalf("removed ids: %v", removed)
	}
	o, ok := b.Get(4)
	if !ok || o.Amount != 8 || o.Price != 21 {
		t.Fatalf("partially filled order: %+v", o)
	}
	if trade.ExecutedAt != time.Unix(1700000000, 0).UTC() {
		t.Fatalf("executed_at: %v", trade.ExecutedAt)
	}
	if trade.TradeID == "" {
		t.Fatal("missing trade id")
	}
}

func TestExecuteFillOrdering(t *testing.T) {
	ex := newTestExecutor()
	b := book.New("JPM")
	// Two orders at the same best price: FIFO decides consumption order.
	for _, o := range []*book.Order{
		{ID: 7, Side: book.Buy, Amount: 5, Price: 20},
		{ID: 8, Side: book.Buy, Amount: 5, Price: 20},
		{ID: 9, Side: book.Buy, Amount: 5, Price: 21},
	} {
		if err := b.Insert(o); err != nil {
			t.Fatal(err)
		}
	}

	trade, _, err := ex.Execute(b, book.Buy, 12)
	if err != nil {
		t.Fatal(err)
	}
	wantIDs := []int64{7, 8, 9}
	if len(trade.Fills) != 3 {
		t.Fatalf("got %d fills, want 3", len(trade.Fills))
	}
	for i, f := range trade.Fills {
		if f.OrderID != wantIDs[i] {
			t.Errorf("fill %d: got id %d, want %d", i, f.OrderID, wantIDs[i])
		}
	}
	if trade.Fills[2].FilledAmount != 2 {
		t.Fatalf("last fill partial amount: %d", trade.Fills[2].FilledAmount)
	}
}

func TestExecuteExactFillRemovesOrder(t *testing.T) {
	ex := newTestExecutor()
	b := book.New("JPM")
	if err := b.Insert(&book.Order{ID: 1, Side: book.Buy, Amount: 20, Price: 20}); err != nil {
		t.Fatal(err)
	}

	trade, removed, err := ex.Execute(b, book.Buy, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(trade.Fills) != 1 {
		t.Fatalf("got %d fills, want 1", len(trade.Fills))
	}
	if len(removed) != 1 || removed[0] != 1 {
		t.Fatalf("removed: %v", removed)
	}
	if b.Len() != 0 || b.Resting(book.Buy) != 0 {
		t.Fatalf("book not empty after exact fill: len=%d", b.Len())
	}
}

// Insufficient liquidity must leave the book order-for-order identical.
func TestExecuteAllOrNothing(t *testing.T) {
	ex := newTestExecutor()
	b := fixtureBook(t)

	_, removed, err := ex.Execute(b, book.Buy, 31)
	if !errors.Is(err, ErrInsufficientLiquidity) {
		t.Fatalf("got %v, want ErrInsufficientLiquidity", err)
	}
	if removed != nil {
		t.Fatalf("orders removed on failed trade: %v", removed)
	}

	if b.Len() != 2 || b.Resting(book.Buy) != 30 {
		t.Fatalf("book mutated: len=%d resting=%d", b.Len(), b.Resting(book.Buy))
	}
	wantAmounts := map[int64]int64{1: 20, 4: 10}
	for id, want := range wantAmounts {
		o, ok := b.Get(id)
		if !ok || o.Amount != want {
			t.Fatalf("order %d changed: %+v", id, o)
		}
	}
}
