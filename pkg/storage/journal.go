// Package storage persists an append-only trade journal in Pebble.
//
// The journal is audit history for the trades endpoint only. Order books are
// never restored from it: book state does not survive a restart.
package storage

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/pebble"

	"oms/pkg/oms"
)

type Journal struct {
	db *pebble.DB
}

func OpenJournal(path string) (*Journal, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error { return j.db.Close() }

// Append records an executed trade. NoSync: the journal is audit data, a
// lost tail on crash is acceptable and trades must not wait on fsync.
func (j *Journal) Append(t *oms.Trade) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("marshal trade: %w", err)
	}
	key := tradeKey(t.Symbol, t.ExecutedAt.UnixMilli(), t.TradeID)
	if err := j.db.Set(key, data, pebble.NoSync); err != nil {
		return fmt.Errorf("append trade: %w", err)
	}
	return nil
}

// Recent returns up to limit trades for a symbol, newest first.
func (j *Journal) Recent(symbol string, limit int) ([]oms.Trade, error) {
	prefix := tradePrefix(symbol)
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("journal scan: %w", err)
	}
	defer iter.Close()

	trades := make([]oms.Trade, 0, limit)
	for valid := iter.Last(); valid && len(trades) < limit; valid = iter.Prev() {
		var t oms.Trade
		if err := json.Unmarshal(iter.Value(), &t); err != nil {
			continue // skip unreadable entries
		}
		trades = append(trades, t)
	}
	return trades, nil
}
