package oms

import (
	"fmt"

	"oms/pkg/oms/book"
)

// PriceCalculator computes the aggregate cost of filling a hypothetical
// order against resting liquidity, without mutating the book.
//
// It walks the requested side in priority order (best available price for
// the requester first), taking min(remaining, order.Amount) units at each
// order's price until the request is satisfied. Arithmetic is exact:
// integer quantities times integer prices, no rounding at this layer.
type PriceCalculator struct{}

// Calculate prices amount units against b's resting liquidity on side.
// Fails with ErrInsufficientLiquidity when the walk would exhaust the side;
// no partial price is returned. The caller holds at least the book's read
// lock for the duration.
func (PriceCalculator) Calculate(b *book.Book, side book.Side, amount int64) (int64, error) {
	if b.Resting(side) < amount {
		return 0, fmt.Errorf("%w: %s %s wants %d, resting %d",
			ErrInsufficientLiquidity, b.Symbol(), side, amount, b.Resting(side))
	}

	var total int64
	remaining := amount
	for o := range b.Orders(side) {
		if remaining <= 0 {
			break
		}
		take := min(remaining, o.Amount)
		total += take * o.Price
		remaining -= take
	}
	return total, nil
}
