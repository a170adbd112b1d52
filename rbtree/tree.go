package rbtree

// Weighted ties a tree item to its extent. For a piece table the weight of an
// item is the length of a piece.
type Weighted interface {
	Weight() uint64
}

// Ref addresses a node of a tree. Refs stay valid until the node is removed;
// afterwards the slot may be reused by a later insertion.
type Ref int32

// None is the Ref of no node. Used as an argument to InsertAfter/InsertBefore
// it denotes the front resp. the end of the sequence.
const None Ref = 0

type node[I Weighted] struct {
	item                I
	left, right, parent Ref
	size                uint64 // summed weight of the subtree
	red                 bool
	used                bool
}

// Tree is an order-statistics red-black tree over weighted items.
//
// A tree created by
//
//	Tree[I]{}
//
// is a valid, empty tree. Trees are not safe for concurrent use.
type Tree[I Weighted] struct {
	nodes []node[I] // nodes[0] is the sentinel
	free  []Ref
	root  Ref
	count int
}

// New creates an empty tree.
func New[I Weighted]() *Tree[I] {
	return &Tree[I]{nodes: make([]node[I], 1, 16)}
}

// IsEmpty reports whether the tree has no items.
func (t *Tree[I]) IsEmpty() bool {
	return t == nil || t.root == None
}

// Len returns the number of items in the tree.
func (t *Tree[I]) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// Size returns the summed weight of all items, i.e. the subtree size of the root.
func (t *Tree[I]) Size() uint64 {
	if t == nil {
		return 0
	}
	return t.sizeOf(t.root)
}

// Height returns the number of nodes on the longest root-to-leaf path.
// It walks the whole tree and is meant for diagnostics.
func (t *Tree[I]) Height() int {
	if t.IsEmpty() {
		return 0
	}
	var h func(Ref) int
	h = func(x Ref) int {
		if x == None {
			return 0
		}
		return 1 + max(h(t.nodes[x].left), h(t.nodes[x].right))
	}
	return h(t.root)
}

// Root returns the root node, or None for an empty tree.
func (t *Tree[I]) Root() Ref {
	if t == nil {
		return None
	}
	return t.root
}

// Item returns the item stored at r.
func (t *Tree[I]) Item(r Ref) (I, error) {
	if !t.valid(r) {
		var zero I
		return zero, ErrInvalidRef
	}
	return t.nodes[r].item, nil
}

// NodeView is a read-only copy of a node's links and augmentation.
type NodeView struct {
	Left, Right, Parent Ref
	Size                uint64
	Red                 bool
}

// View returns the links, subtree size and color of node r (for debugging output).
func (t *Tree[I]) View(r Ref) NodeView {
	if !t.valid(r) {
		return NodeView{}
	}
	nd := &t.nodes[r]
	return NodeView{Left: nd.left, Right: nd.right, Parent: nd.parent, Size: nd.size, Red: nd.red}
}

// Locate finds the item covering position pos, together with the position the
// item starts at.
//
// The start position is accumulated from left-subtree sizes while descending.
// If pos falls on the boundary between two items, the item starting at pos is
// returned. For pos == Size() the last item is returned; callers detect this
// end-of-sequence case by comparing pos with Size().
func (t *Tree[I]) Locate(pos uint64) (Ref, uint64, error) {
	if t.IsEmpty() {
		return None, 0, ErrEmptyTree
	}
	total := t.Size()
	if pos > total {
		return None, 0, ErrIndexOutOfBounds
	}
	if pos == total {
		last := t.Last()
		return last, total - t.nodes[last].item.Weight(), nil
	}
	x, acc := t.root, uint64(0)
	for x != None {
		nd := &t.nodes[x]
		ls := t.sizeOf(nd.left)
		w := nd.item.Weight()
		switch {
		case pos < acc+ls:
			x = nd.left
		case pos < acc+ls+w:
			return x, acc + ls, nil
		default:
			acc += ls + w
			x = nd.right
		}
	}
	panic("rbtree.Locate: subtree sizes inconsistent")
}

// Offset returns the position at which the item at r starts.
func (t *Tree[I]) Offset(r Ref) (uint64, error) {
	if !t.valid(r) {
		return 0, ErrInvalidRef
	}
	pos := t.sizeOf(t.nodes[r].left)
	for x := r; t.nodes[x].parent != None; x = t.nodes[x].parent {
		p := t.nodes[x].parent
		if t.nodes[p].right == x {
			pos += t.sizeOf(t.nodes[p].left) + t.nodes[p].item.Weight()
		}
	}
	return pos, nil
}

// First returns the first item's node in sequence order, or None.
func (t *Tree[I]) First() Ref {
	if t.IsEmpty() {
		return None
	}
	return t.min(t.root)
}

// Last returns the last item's node in sequence order, or None.
func (t *Tree[I]) Last() Ref {
	if t.IsEmpty() {
		return None
	}
	return t.max(t.root)
}

// Next returns the in-order successor of r, or None.
func (t *Tree[I]) Next(r Ref) Ref {
	if !t.valid(r) {
		return None
	}
	if right := t.nodes[r].right; right != None {
		return t.min(right)
	}
	p := t.nodes[r].parent
	for p != None && r == t.nodes[p].right {
		r, p = p, t.nodes[p].parent
	}
	return p
}

// Prev returns the in-order predecessor of r, or None.
func (t *Tree[I]) Prev(r Ref) Ref {
	if !t.valid(r) {
		return None
	}
	if left := t.nodes[r].left; left != None {
		return t.max(left)
	}
	p := t.nodes[r].parent
	for p != None && r == t.nodes[p].left {
		r, p = p, t.nodes[p].parent
	}
	return p
}

// --- Helpers ---------------------------------------------------------------

func (t *Tree[I]) valid(r Ref) bool {
	return t != nil && r > None && int(r) < len(t.nodes) && t.nodes[r].used
}

func (t *Tree[I]) isRed(r Ref) bool {
	return r != None && t.nodes[r].red
}

func (t *Tree[I]) sizeOf(r Ref) uint64 {
	if r == None {
		return 0
	}
	return t.nodes[r].size
}

func (t *Tree[I]) min(x Ref) Ref {
	for t.nodes[x].left != None {
		x = t.nodes[x].left
	}
	return x
}

func (t *Tree[I]) max(x Ref) Ref {
	for t.nodes[x].right != None {
		x = t.nodes[x].right
	}
	return x
}

// recompute sets the subtree size of x from its children and reports whether
// the value changed.
func (t *Tree[I]) recompute(x Ref) bool {
	nd := &t.nodes[x]
	s := nd.item.Weight() + t.sizeOf(nd.left) + t.sizeOf(nd.right)
	if s == nd.size {
		return false
	}
	nd.size = s
	return true
}
