package oms

import (
	"errors"
	"testing"

	"oms/pkg/oms/book"
)

func fixtureBook(t *testing.T) *book.Book {
	t.Helper()
	b := book.New("JPM")
	for _, o := range []*book.Order{
		{ID: 1, Symbol: "JPM", Side: book.Buy, Amount: 20, Price: 20},
		{ID: 4, Symbol: "JPM", Side: book.Buy, Amount: 10, Price: 21},
	} {
		if err := b.Insert(o); err != nil {
			t.Fatalf("fixture insert: %v", err)
		}
	}
	return b
}

// Worked values from the interface's own examples: resting BUY 20@20 and
// 10@21, priced cheapest first.
func TestCalculateWorkedExamples(t *testing.T) {
	var pricer PriceCalculator
	b := fixtureBook(t)

	tests := []struct {
		amount int64
		want   int64
	}{
		{10, 200},
		{20, 400},
		{22, 442}, // 20*20 + 2*21
		{30, 610}, // full book
	}
	for _, tt := range tests {
		got, err := pricer.Calculate(b, book.Buy, tt.amount)
		if err != nil {
			t.Fatalf("amount=%d: %v", tt.amount, err)
		}
		if got != tt.want {
			t.Errorf("amount=%d: got %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestCalculateSellSide(t *testing.T) {
	var pricer PriceCalculator
	b := book.New("GOOG")
	for _, o := range []*book.Order{
		{ID: 1, Side: book.Sell, Amount: 10, Price: 100},
		{ID: 2, Side: book.Sell, Amount: 10, Price: 110},
	} {
		if err := b.Insert(o); err != nil {
			t.Fatal(err)
		}
	}

	// Sells aggregate from the highest price first.
	got, err := pricer.Calculate(b, book.Sell, 15)
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(10*110 + 5*100); got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestCalculateInsufficientLiquidity(t *testing.T) {
	var pricer PriceCalculator
	b := fixtureBook(t)

	_, err := pricer.Calculate(b, book.Buy, 31)
	if !errors.Is(err, ErrInsufficientLiquidity) {
		t.Fatalf("got %v, want ErrInsufficientLiquidity", err)
	}
	// Empty counter side behaves the same way.
	if _, err := pricer.Calculate(b, book.Sell, 1); !errors.Is(err, ErrInsufficientLiquidity) {
		t.Fatalf("empty side: got %v", err)
	}
}

// Pricing is idempotent and side-effect free.
func TestCalculateDoesNotMutate(t *testing.T) {
	var pricer PriceCalculator
	b := fixtureBook(t)

	first, err := pricer.Calculate(b, book.Buy, 22)
	if err != nil {
		t.Fatal(err)
	}
	second, err := pricer.Calculate(b, book.Buy, 22)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("not idempotent: %d then %d", first, second)
	}
	if b.Resting(book.Buy) != 30 || b.Len() != 2 {
		t.Fatalf("book mutated: resting=%d len=%d", b.Resting(book.Buy), b.Len())
	}
	if o, _ := b.Get(1); o.Amount != 20 {
		t.Fatalf("order amount changed: %d", o.Amount)
	}
}
