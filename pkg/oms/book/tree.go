package book

// Red-black tree of price levels.
//
// Each side of a book keeps its levels in one of these trees: insertion and
// deletion of a price level are O(log P) in the number of distinct prices,
// and an in-order walk visits levels in consumption-priority order without
// any re-sort. A book side with the descending flag set walks highest price
// first (the sell side, where the best price for the requester is the
// highest one).

type treeColor bool

const (
	colorRed   treeColor = true
	colorBlack treeColor = false
)

type treeNode struct {
	price  int64
	level  *level
	color  treeColor
	left   *treeNode
	right  *treeNode
	parent *treeNode
}

type tree struct {
	root       *treeNode
	size       int
	descending bool
}

func newTree(descending bool) *tree {
	return &tree{descending: descending}
}

func (t *tree) len() int { return t.size }

// lookup finds the level at a price, or nil.
func (t *tree) lookup(price int64) *level {
	cur := t.root
	for cur != nil {
		switch {
		case price < cur.price:
			cur = cur.left
		case price > cur.price:
			cur = cur.right
		default:
			return cur.level
		}
	}
	return nil
}

// insert adds a level keyed by its price. The price must not already be
// present; callers look up first and reuse the existing level.
func (t *tree) insert(l *level) {
	n := &treeNode{price: l.price, level: l, color: colorRed}

	if t.root == nil {
		n.color = colorBlack
		t.root = n
		t.size = 1
		return
	}

	var parent *treeNode
	cur := t.root
	for cur != nil {
		parent = cur
		if l.price < cur.price {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	n.parent = parent
	if l.price < parent.price {
		parent.left = n
	} else {
		parent.right = n
	}
	t.size++
	t.insertFixup(n)
}

// remove deletes the level at a price, if present.
func (t *tree) remove(price int64) {
	n := t.node(price)
	if n == nil {
		return
	}
	t.size--
	t.removeNode(n)
}

// walk visits levels in priority order (ascending, or descending when the
// tree is flagged so) until fn returns false.
func (t *tree) walk(fn func(*level) bool) {
	if t.descending {
		t.walkDesc(t.root, fn)
	} else {
		t.walkAsc(t.root, fn)
	}
}

func (t *tree) walkAsc(n *treeNode, fn func(*level) bool) bool {
	if n == nil {
		return true
	}
	if !t.walkAsc(n.left, fn) {
		return false
	}
	if !fn(n.level) {
		return false
	}
	return t.walkAsc(n.right, fn)
}

func (t *tree) walkDesc(n *treeNode, fn func(*level) bool) bool {
	if n == nil {
		return true
	}
	if !t.walkDesc(n.right, fn) {
		return false
	}
	if !fn(n.level) {
		return false
	}
	return t.walkDesc(n.left, fn)
}

func (t *tree) node(price int64) *treeNode {
	cur := t.root
	for cur != nil {
		switch {
		case price < cur.price:
			cur = cur.left
		case price > cur.price:
			cur = cur.right
		default:
			return cur
		}
	}
	return nil
}

func (t *tree) rotateLeft(x *treeNode) {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		t.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (t *tree) rotateRight(x *treeNode) {
	y := x.left
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		t.root = y
	case x == x.parent.right:
		x.parent.right = y
	default:
		x.parent.left = y
	}
	y.right = x
	x.parent = y
}

func (t *tree) insertFixup(z *treeNode) {
	for z.parent != nil && z.parent.color == colorRed {
		grand := z.parent.parent
		if z.parent == grand.left {
			uncle := grand.right
			if uncle != nil && uncle.color == colorRed {
				z.parent.color = colorBlack
				uncle.color = colorBlack
				grand.color = colorRed
				z = grand
			} else {
				if z == z.parent.right {
					z = z.parent
					t.rotateLeft(z)
				}
				z.parent.color = colorBlack
				z.parent.parent.color = colorRed
				t.rotateRight(z.parent.parent)
			}
		} else {
			uncle := grand.left
			if uncle != nil && uncle.color == colorRed {
				z.parent.color = colorBlack
				uncle.color = colorBlack
				grand.color = colorRed
				z = grand
			} else {
				if z == z.parent.left {
					z = z.parent
					t.rotateRight(z)
				}
				z.parent.color = colorBlack
				z.parent.parent.color = colorRed
				t.rotateLeft(z.parent.parent)
			}
		}
	}
	t.root.color = colorBlack
}

// transplant replaces the subtree rooted at u with the one rooted at v.
func (t *tree) transplant(u, v *treeNode) {
	switch {
	case u.parent == nil:
		t.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	if v != nil {
		v.parent = u.parent
	}
}

func (t *tree) removeNode(z *treeNode) {
	var x, xParent *treeNode
	y := z
	removedColor := y.color

	switch {
	case z.left == nil:
		x = z.right
		xParent = z.parent
		t.transplant(z, z.right)
	case z.right == nil:
		x = z.left
		xParent = z.parent
		t.transplant(z, z.left)
	default:
		y = z.right
		for y.left != nil {
			y = y.left
		}
		removedColor = y.color
		x = y.right
		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	if removedColor == colorBlack {
		t.removeFixup(x, xParent)
	}
}

func (t *tree) removeFixup(x, xParent *treeNode) {
	for x != t.root && (x == nil || x.color == colorBlack) {
		if xParent == nil {
			break
		}
		if x == xParent.left {
			sib := xParent.right
			if sib != nil && sib.color == colorRed {
				sib.color = colorBlack
				xParent.color = colorRed
				t.rotateLeft(xParent)
				sib = xParent.right
			}
			if sib == nil || ((sib.left == nil || sib.left.color == colorBlack) &&
				(sib.right == nil || sib.right.color == colorBlack)) {
				if sib != nil {
					sib.color = colorRed
				}
				x = xParent
				xParent = x.parent
			} else {
				if sib.right == nil || sib.right.color == colorBlack {
					if sib.left != nil {
						sib.left.color = colorBlack
					}
					sib.color = colorRed
					t.rotateRight(sib)
					sib = xParent.right
				}
				sib.color = xParent.color
				xParent.color = colorBlack
				if sib.right != nil {
					sib.right.color = colorBlack
				}
				t.rotateLeft(xParent)
				x = t.root
			}
		} else {
			sib := xParent.left
			if sib != nil && sib.color == colorRed {
				sib.color = colorBlack
				xParent.color = colorRed
				t.rotateRight(xParent)
				sib = xParent.left
			}
			if sib == nil || ((sib.right == nil || sib.right.color == colorBlack) &&
				(sib.left == nil || sib.left.color == colorBlack)) {
				if sib != nil {
					sib.color = colorRed
				}
				x = xParent
				xParent = x.parent
			} else {
				if sib.left == nil || sib.left.color == colorBlack {
					if sib.right != nil {
						sib.right.color = colorBlack
					}
					sib.color = colorRed
					t.rotateLeft(sib)
					sib = xParent.left
				}
				sib.color = xParent.color
				xParent.color = colorBlack
				if sib.left != nil {
					sib.left.color = colorBlack
				}
				t.rotateRight(xParent)
				x = t.root
			}
		}
	}
	if x != nil {
		x.color = colorBlack
	}
}
