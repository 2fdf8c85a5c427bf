// Package oms is the order management core: a registry of per-symbol order
// books behind a facade of four operations (add, remove, price, trade).
// The HTTP layer in pkg/api is a thin adapter over this package.
package oms

import (
	"fmt"

	"go.uber.org/zap"

	"oms/pkg/oms/book"
	"oms/pkg/util"
)

// Manager composes the registry, price calculator and trade executor behind
// the public facade. Construct one per process (or per test); there is no
// ambient singleton.
type Manager struct {
	registry *Registry
	pricer   PriceCalculator
	executor *TradeExecutor
	log      *zap.SugaredLogger

	// OnTrade, when set, observes every successful trade (journal append,
	// WebSocket broadcast). Called outside the book lock.
	OnTrade func(*Trade)
	// OnBookChange observes every committed book mutation.
	OnBookChange func(symbol string)
}

func NewManager(log *zap.SugaredLogger, clock util.Clock) *Manager {
	if clock == nil {
		clock = util.RealClock{}
	}
	return &Manager{
		registry: NewRegistry(),
		executor: NewTradeExecutor(clock),
		log:      log,
	}
}

// AddOrder creates a resting order and inserts it into the symbol's book,
// creating the book on first reference.
func (m *Manager) AddOrder(id int64, symbol string, side book.Side, amount, price int64) error {
	if amount <= 0 || price < 0 {
		return fmt.Errorf("%w: amount=%d price=%d", ErrInvalidOrder, amount, price)
	}
	if err := m.registry.reserve(id, symbol); err != nil {
		return err
	}

	h := m.registry.getOrCreate(symbol)
	o := &book.Order{ID: id, Symbol: symbol, Side: side, Amount: amount, Price: price}

	h.mu.Lock()
	err := h.book.Insert(o)
	h.mu.Unlock()
	if err != nil {
		m.registry.release(id)
		return err
	}

	m.log.Infow("order_added", "id", id, "symbol", symbol, "side", side.String(),
		"amount", amount, "price", price)
	m.notifyBook(symbol)
	return nil
}

// RemoveOrder removes a resting order from whichever book holds it.
func (m *Manager) RemoveOrder(id int64) error {
	symbol, ok := m.registry.owner(id)
	if !ok {
		return fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}
	h, ok := m.registry.lookup(symbol)
	if !ok {
		m.registry.release(id)
		return fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}

	h.mu.Lock()
	_, err := h.book.Remove(id)
	h.mu.Unlock()

	m.registry.release(id)
	if err != nil {
		return err
	}

	m.log.Infow("order_removed", "id", id, "symbol", symbol)
	m.notifyBook(symbol)
	return nil
}

// CalculatePrice quotes the total cost of filling amount units on side,
// leaving the book untouched. Safe to run concurrently with other reads.
func (m *Manager) CalculatePrice(symbol string, side book.Side, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount=%d", ErrInvalidRequest, amount)
	}
	h, ok := m.registry.lookup(symbol)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return m.pricer.Calculate(h.book, side, amount)
}

// PlaceTrade executes amount units against the symbol's book. Either the
// full amount fills and the mutation commits, or the book is unchanged.
func (m *Manager) PlaceTrade(symbol string, side book.Side, amount int64) (*Trade, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount=%d", ErrInvalidRequest, amount)
	}
	h, ok := m.registry.lookup(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	h.mu.Lock()
	trade, removed, err := m.executor.Execute(h.book, side, amount)
	h.mu.Unlock()

	if len(removed) > 0 {
		m.registry.release(removed...)
	}
	if err != nil {
		return nil, err
	}

	m.log.Infow("trade_executed", "trade_id", trade.TradeID, "symbol", symbol,
		"side", side.String(), "amount", amount, "total_price", trade.TotalPrice,
		"fills", len(trade.Fills))
	if m.OnTrade != nil {
		m.OnTrade(trade)
	}
	m.notifyBook(symbol)
	return trade, nil
}

// BookDepth returns the aggregated price levels of both sides, priority
// order first on each. The second return is false for an unknown symbol.
func (m *Manager) BookDepth(symbol string) (buys, sells []book.Level, ok bool) {
	h, found := m.registry.lookup(symbol)
	if !found {
		return nil, nil, false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.book.Levels(book.Buy), h.book.Levels(book.Sell), true
}

// BookOrders copies one side's resting orders in priority order, for the
// order book view endpoint.
func (m *Manager) BookOrders(symbol string, side book.Side) []book.Order {
	h, found := m.registry.lookup(symbol)
	if !found {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []book.Order
	for o := range h.book.Orders(side) {
		out = append(out, *o)
	}
	return out
}

// Symbols lists every symbol with an order book.
func (m *Manager) Symbols() []string { return m.registry.Symbols() }

func (m *Manager) notifyBook(symbol string) {
	if m.OnBookChange != nil {
		m.OnBookChange(symbol)
	}
}
