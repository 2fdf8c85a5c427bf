package book

// node is an entry in the doubly-linked order queue at a price level.
// The linked list gives O(1) removal from anywhere in the queue, which
// keeps cancellation cheap regardless of queue position.
type node struct {
	order *Order
	prev  *node
	next  *node
	level *level
}

// level holds every resting order at one price, in arrival order.
// Head is the oldest order and is consumed first (time priority).
type level struct {
	price  int64
	head   *node
	tail   *node
	count  int
	amount int64 // sum of remaining amounts at this price
}

func newLevel(price int64) *level {
	return &level{price: price}
}

func (l *level) empty() bool { return l.count == 0 }

// push appends an order at the back of the queue and returns its node.
func (l *level) push(o *Order) *node {
	n := &node{order: o, level: l}
	if l.tail == nil {
		l.head = n
	} else {
		n.prev = l.tail
		l.tail.next = n
	}
	l.tail = n
	l.count++
	l.amount += o.Amount
	return n
}

// unlink removes a node from the queue in O(1).
func (l *level) unlink(n *node) {
	l.amount -= n.order.Amount
	l.count--

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}

	n.prev = nil
	n.next = nil
	n.level = nil
}
