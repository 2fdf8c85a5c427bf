package oms

import (
	"fmt"
	"sync"

	"oms/pkg/oms/book"
)

// bookHandle pairs a book with its per-symbol lock. Mutating operations take
// the write lock for the whole walk-and-mutate; price queries take the read
// lock. Books for different symbols never share a lock, so operations on
// different symbols proceed independently.
type bookHandle struct {
	mu   sync.RWMutex
	book *book.Book
}

// Registry owns every order book, keyed by symbol, and the process-wide
// order-id index used to resolve RemoveOrder and reject duplicate ids.
// It is an explicit owned structure, not a singleton: tests instantiate
// isolated registries.
type Registry struct {
	mu     sync.RWMutex
	books  map[string]*bookHandle
	owners map[int64]string // order id -> symbol holding it
}

func NewRegistry() *Registry {
	return &Registry{
		books:  make(map[string]*bookHandle),
		owners: make(map[int64]string),
	}
}

// lookup returns the handle for a symbol without creating one.
func (r *Registry) lookup(symbol string) (*bookHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.books[symbol]
	return h, ok
}

// getOrCreate resolves the handle for a symbol, creating the book lazily on
// first reference.
func (r *Registry) getOrCreate(symbol string) *bookHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.books[symbol]
	if !ok {
		h = &bookHandle{book: book.New(symbol)}
		r.books[symbol] = h
	}
	return h
}

// reserve claims an order id for a symbol. Ids are unique across the whole
// system, not just per book.
func (r *Registry) reserve(id int64, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.owners[id]; exists {
		return fmt.Errorf("%w: id=%d", ErrDuplicateOrder, id)
	}
	r.owners[id] = symbol
	return nil
}

// owner resolves the symbol currently holding an order id.
func (r *Registry) owner(id int64) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sym, ok := r.owners[id]
	return sym, ok
}

// release drops id claims after removal or full consumption.
func (r *Registry) release(ids ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.owners, id)
	}
}

// Symbols lists every symbol with a book, for the depth/observability
// endpoints.
func (r *Registry) Symbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.books))
	for sym := range r.books {
		out = append(out, sym)
	}
	return out
}
