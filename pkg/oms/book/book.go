// Package book implements the per-symbol limit order book.
//
// Each side of the book is a red-black tree of price levels with a FIFO
// queue at each level, plus a hash index from order id to its queue node.
// That gives O(log P) insertion, O(1) lookup and cancellation, and an
// in-order traversal that yields orders in price-time priority without
// copying or re-sorting.
//
// Priority order is "best available price for the requester" on the side
// being consumed: the buy side walks lowest price first, the sell side walks
// highest price first; equal-price orders are consumed in arrival order.
//
// The Book itself is not synchronized. Callers serialize access per symbol;
// the registry in pkg/oms holds one RWMutex per book.
package book

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrInvalidOrder rejects orders with a non-positive amount or a
	// negative price.
	ErrInvalidOrder = errors.New("invalid order")
	// ErrDuplicateOrder rejects an order id that is already resting.
	ErrDuplicateOrder = errors.New("duplicate order")
	// ErrNotFound reports an order id with no resting order.
	ErrNotFound = errors.New("order not found")
)

// Level summarizes the resting amount at one price, best price first.
type Level struct {
	Price  int64 `json:"price"`
	Amount int64 `json:"amount"`
	Orders int   `json:"orders"`
}

// Book holds all resting orders for a single symbol.
type Book struct {
	symbol  string
	buys    *tree // ascending: cheapest resting buy is consumed first
	sells   *tree // descending: priciest resting sell is consumed first
	index   map[int64]*node
	resting [2]int64 // total remaining amount per side
}

// New creates an empty book for a symbol.
func New(symbol string) *Book {
	return &Book{
		symbol: symbol,
		buys:   newTree(false),
		sells:  newTree(true),
		index:  make(map[int64]*node),
	}
}

func (b *Book) Symbol() string { return b.symbol }

// Len reports the number of resting orders across both sides.
func (b *Book) Len() int { return len(b.index) }

// Resting reports the total remaining amount on one side. Used for the O(1)
// liquidity pre-check before pricing or execution.
func (b *Book) Resting(side Side) int64 { return b.resting[side] }

func (b *Book) side(s Side) *tree {
	if s == Buy {
		return b.buys
	}
	return b.sells
}

// Insert adds an order to its side of the book, keeping the sort invariant,
// and records it in the id index. O(log P) in the number of price levels.
func (b *Book) Insert(o *Order) error {
	if o.Amount <= 0 || o.Price < 0 {
		return fmt.Errorf("%w: amount=%d price=%d", ErrInvalidOrder, o.Amount, o.Price)
	}
	if _, exists := b.index[o.ID]; exists {
		return fmt.Errorf("%w: id=%d", ErrDuplicateOrder, o.ID)
	}

	t := b.side(o.Side)
	lvl := t.lookup(o.Price)
	if lvl == nil {
		lvl = newLevel(o.Price)
		t.insert(lvl)
	}
	b.index[o.ID] = lvl.push(o)
	b.resting[o.Side] += o.Amount
	return nil
}

// Remove deletes an order from its queue and the index, dropping the price
// level when it empties. Returns the removed order.
func (b *Book) Remove(id int64) (*Order, error) {
	n, ok := b.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}
	o := n.order
	lvl := n.level

	lvl.unlink(n)
	delete(b.index, id)
	b.resting[o.Side] -= o.Amount
	if lvl.empty() {
		b.side(o.Side).remove(lvl.price)
	}
	return o, nil
}

// Get returns the resting order with the given id. O(1).
func (b *Book) Get(id int64) (*Order, bool) {
	n, ok := b.index[id]
	if !ok {
		return nil, false
	}
	return n.order, true
}

// Reduce shrinks an order's remaining amount by qty, removing the order
// entirely once it reaches zero. The price does not change, so the order
// keeps its queue position on a partial fill. Returns true when the order
// was fully consumed and removed.
func (b *Book) Reduce(id int64, qty int64) (bool, error) {
	n, ok := b.index[id]
	if !ok {
		return false, fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}
	o := n.order
	if qty <= 0 || qty > o.Amount {
		return false, fmt.Errorf("%w: reduce %d by %d", ErrInvalidOrder, o.Amount, qty)
	}

	if qty == o.Amount {
		if _, err := b.Remove(id); err != nil {
			return false, err
		}
		o.Amount = 0
		return true, nil
	}

	o.Amount -= qty
	n.level.amount -= qty
	b.resting[o.Side] -= qty
	return false, nil
}

// Orders yields the resting orders of one side in priority order: best price
// for the requester first, then arrival order within a price. The sequence
// is lazy and restartable; each range walks the book's current state.
func (b *Book) Orders(side Side) iter.Seq[*Order] {
	t := b.side(side)
	return func(yield func(*Order) bool) {
		t.walk(func(lvl *level) bool {
			for n := lvl.head; n != nil; n = n.next {
				if !yield(n.order) {
					return false
				}
			}
			return true
		})
	}
}

// Levels aggregates one side into price levels, priority order first.
func (b *Book) Levels(side Side) []Level {
	t := b.side(side)
	out := make([]Level, 0, t.len())
	t.walk(func(lvl *level) bool {
		out = append(out, Level{Price: lvl.price, Amount: lvl.amount, Orders: lvl.count})
		return true
	})
	return out
}
