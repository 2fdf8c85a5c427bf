package book

import (
	"fmt"
	"strings"
)

// Side indicates the direction of an order.
type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// MarshalJSON encodes a Side as its wire string ("BUY"/"SELL").
func (s Side) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes the wire string form.
func (s *Side) UnmarshalJSON(data []byte) error {
	v, err := ParseSide(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSide converts the wire representation ("BUY"/"SELL") to a Side.
func ParseSide(v string) (Side, error) {
	switch v {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return 0, fmt.Errorf("invalid side %q", v)
	}
}

// Order is a resting order in a book.
//
// Amount is the remaining quantity and shrinks as trades consume the order;
// it never goes negative. ID and Price are immutable once the order is
// inserted. Prices and amounts are integers (cents / whole units), so all
// aggregation stays in exact integer arithmetic.
type Order struct {
	ID     int64
	Symbol string
	Side   Side
	Amount int64
	Price  int64
}
