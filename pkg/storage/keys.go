package storage

import "fmt"

// Journal key schema:
//
//	trade:<symbol>:<padded-ts>:<trade-id> → Trade (JSON)
//
// The timestamp is zero-padded to 20 digits so a prefix scan over one symbol
// iterates trades in execution order.
const prefixTrade = "trade:"

func tradeKey(symbol string, unixMilli int64, tradeID string) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d:%s", prefixTrade, symbol, unixMilli, tradeID))
}

func tradePrefix(symbol string) []byte {
	return []byte(fmt.Sprintf("%s%s:", prefixTrade, symbol))
}

// keyUpperBound returns the exclusive upper bound for a prefix scan.
func keyUpperBound(prefix []byte) []byte {
	bound := make([]byte, len(prefix))
	copy(bound, prefix)
	bound[len(bound)-1]++
	return bound
}
