package oms

import (
	"fmt"

	"github.com/google/uuid"

	"oms/pkg/oms/book"
	"oms/pkg/util"
)

// TradeExecutor consumes resting liquidity in price-time priority.
//
// Execution is all-or-nothing: the fill plan is computed over the book
// before anything is mutated, so on ErrInsufficientLiquidity the book is
// left untouched. The walk order is identical to PriceCalculator's, which
// keeps a quote and the trade that follows it consistent.
type TradeExecutor struct {
	clock util.Clock
}

func NewTradeExecutor(clock util.Clock) *TradeExecutor {
	return &TradeExecutor{clock: clock}
}

// Execute fills amount units against b on side, shrinking partially consumed
// orders in place (price is immutable, so queue position is preserved) and
// removing fully consumed ones. Returns the trade and the ids of orders that
// left the book. The caller holds the book's write lock.
func (e *TradeExecutor) Execute(b *book.Book, side book.Side, amount int64) (*Trade, []int64, error) {
	if b.Resting(side) < amount {
		return nil, nil, fmt.Errorf("%w: %s %s wants %d, resting %d",
			ErrInsufficientLiquidity, b.Symbol(), side, amount, b.Resting(side))
	}

	// Plan pass: one Fill per resting order touched, in consumption order.
	var (
		fills []Fill
		total int64
	)
	remaining := amount
	for o := range b.Orders(side) {
		if remaining <= 0 {
			break
		}
		take := min(remaining, o.Amount)
		fills = append(fills, Fill{OrderID: o.ID, FilledAmount: take, FillPrice: o.Price})
		total += take * o.Price
		remaining -= take
	}

	// Apply pass: the pre-check guarantees every fill succeeds.
	var removed []int64
	for _, f := range fills {
		gone, err := b.Reduce(f.OrderID, f.FilledAmount)
		if err != nil {
			return nil, removed, fmt.Errorf("apply fill id=%d: %w", f.OrderID, err)
		}
		if gone {
			removed = append(removed, f.OrderID)
		}
	}

	return &Trade{
		TradeID:    uuid.NewString(),
		Symbol:     b.Symbol(),
		Side:       side,
		Amount:     amount,
		TotalPrice: total,
		ExecutedAt: e.clock.Now(),
		Fills:      fills,
	}, removed, nil
}
