package rbtree

// InsertAfter links item immediately after the item at r in sequence order
// and returns the new node. InsertAfter(None, item) inserts at the front.
func (t *Tree[I]) InsertAfter(r Ref, item I) (Ref, error) {
	if r != None && !t.valid(r) {
		return None, ErrInvalidRef
	}
	z := t.alloc(item)
	switch {
	case t.root == None:
		t.attach(z, None, false)
	case r == None:
		t.attach(z, t.min(t.root), true)
	case t.nodes[r].right == None:
		t.attach(z, r, false)
	default:
		t.attach(z, t.min(t.nodes[r].right), true)
	}
	return z, nil
}

// InsertBefore links item immediately before the item at r in sequence order
// and returns the new node. InsertBefore(None, item) appends at the end.
func (t *Tree[I]) InsertBefore(r Ref, item I) (Ref, error) {
	if r != None && !t.valid(r) {
		return None, ErrInvalidRef
	}
	z := t.alloc(item)
	switch {
	case t.root == None:
		t.attach(z, None, false)
	case r == None:
		t.attach(z, t.max(t.root), false)
	case t.nodes[r].left == None:
		t.attach(z, r, true)
	default:
		t.attach(z, t.max(t.nodes[r].left), false)
	}
	return z, nil
}

// Update replaces the item at r. If the weight changes, subtree sizes are
// recomputed upwards until a node's size does not change any more.
func (t *Tree[I]) Update(r Ref, item I) error {
	if !t.valid(r) {
		return ErrInvalidRef
	}
	t.nodes[r].item = item
	for x := r; x != None && t.recompute(x); {
		x = t.nodes[x].parent
	}
	return nil
}

// Remove unlinks the item at r. The Ref must not be used afterwards.
func (t *Tree[I]) Remove(z Ref) error {
	if !t.valid(z) {
		return ErrInvalidRef
	}
	y, yRed := z, t.nodes[z].red
	var x, from Ref
	switch {
	case t.nodes[z].left == None:
		x, from = t.nodes[z].right, t.nodes[z].parent
		t.transplant(z, x)
	case t.nodes[z].right == None:
		x, from = t.nodes[z].left, t.nodes[z].parent
		t.transplant(z, x)
	default: // splice in the successor
		y = t.min(t.nodes[z].right)
		yRed = t.nodes[y].red
		x = t.nodes[y].right
		if t.nodes[y].parent == z {
			t.nodes[x].parent = y // x may be the sentinel
			from = y
		} else {
			from = t.nodes[y].parent
			t.transplant(y, x)
			t.nodes[y].right = t.nodes[z].right
			t.nodes[t.nodes[y].right].parent = y
		}
		t.transplant(z, y)
		t.nodes[y].left = t.nodes[z].left
		t.nodes[t.nodes[y].left].parent = y
		t.nodes[y].red = t.nodes[z].red
	}
	// sizes have to be exact before the fix-up rotates
	t.resizePath(from)
	if !yRed {
		t.removeFixup(x)
	}
	t.release(z)
	return nil
}

// --- Insertion -------------------------------------------------------------

func (t *Tree[I]) alloc(item I) Ref {
	if len(t.nodes) == 0 {
		t.nodes = make([]node[I], 1, 16)
	}
	nd := node[I]{item: item, size: item.Weight(), red: true, used: true}
	if k := len(t.free); k > 0 {
		r := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[r] = nd
		return r
	}
	assert(len(t.nodes) < 1<<31-1, "rbtree: node arena exhausted")
	t.nodes = append(t.nodes, nd)
	return Ref(len(t.nodes) - 1)
}

func (t *Tree[I]) release(z Ref) {
	t.nodes[z] = node[I]{}
	t.count--
	if t.count == 0 {
		t.nodes = t.nodes[:1]
		t.nodes[None] = node[I]{}
		t.free = t.free[:0]
		t.root = None
		return
	}
	t.free = append(t.free, z)
}

// attach links a fresh red node z as a child of parent and restores the
// red-black properties.
func (t *Tree[I]) attach(z, parent Ref, asLeft bool) {
	t.nodes[z].parent = parent
	switch {
	case parent == None:
		t.root = z
	case asLeft:
		t.nodes[parent].left = z
	default:
		t.nodes[parent].right = z
	}
	t.count++
	t.resizePath(parent)
	t.insertFixup(z)
}

func (t *Tree[I]) insertFixup(z Ref) {
	for t.isRed(t.nodes[z].parent) {
		p := t.nodes[z].parent
		g := t.nodes[p].parent // p is red, so it is not the root
		if p == t.nodes[g].left {
			if u := t.nodes[g].right; t.isRed(u) {
				t.nodes[p].red, t.nodes[u].red, t.nodes[g].red = false, false, true
				z = g
				continue
			}
			if z == t.nodes[p].right {
				z = p
				t.rotateLeft(z)
				p = t.nodes[z].parent
			}
			t.nodes[p].red, t.nodes[g].red = false, true
			t.rotateRight(g)
		} else {
			if u := t.nodes[g].left; t.isRed(u) {
				t.nodes[p].red, t.nodes[u].red, t.nodes[g].red = false, false, true
				z = g
				continue
			}
			if z == t.nodes[p].left {
				z = p
				t.rotateRight(z)
				p = t.nodes[z].parent
			}
			t.nodes[p].red, t.nodes[g].red = false, true
			t.rotateLeft(g)
		}
	}
	t.nodes[t.root].red = false
}

// --- Deletion --------------------------------------------------------------

// transplant replaces the subtree rooted at u by the subtree rooted at v.
// v's parent link is set even if v is the sentinel.
func (t *Tree[I]) transplant(u, v Ref) {
	p := t.nodes[u].parent
	switch {
	case p == None:
		t.root = v
	case u == t.nodes[p].left:
		t.nodes[p].left = v
	default:
		t.nodes[p].right = v
	}
	t.nodes[v].parent = p
}

func (t *Tree[I]) removeFixup(x Ref) {
	for x != t.root && !t.isRed(x) {
		p := t.nodes[x].parent
		if x == t.nodes[p].left {
			w := t.nodes[p].right
			if t.isRed(w) {
				t.nodes[w].red, t.nodes[p].red = false, true
				t.rotateLeft(p)
				w = t.nodes[p].right
			}
			if !t.isRed(t.nodes[w].left) && !t.isRed(t.nodes[w].right) {
				t.nodes[w].red = true
				x = p
				continue
			}
			if !t.isRed(t.nodes[w].right) {
				t.nodes[t.nodes[w].left].red, t.nodes[w].red = false, true
				t.rotateRight(w)
				w = t.nodes[p].right
			}
			t.nodes[w].red, t.nodes[p].red = t.nodes[p].red, false
			t.nodes[t.nodes[w].right].red = false
			t.rotateLeft(p)
			x = t.root
		} else {
			w := t.nodes[p].left
			if t.isRed(w) {
				t.nodes[w].red, t.nodes[p].red = false, true
				t.rotateRight(p)
				w = t.nodes[p].left
			}
			if !t.isRed(t.nodes[w].left) && !t.isRed(t.nodes[w].right) {
				t.nodes[w].red = true
				x = p
				continue
			}
			if !t.isRed(t.nodes[w].left) {
				t.nodes[t.nodes[w].right].red, t.nodes[w].red = false, true
				t.rotateLeft(w)
				w = t.nodes[p].left
			}
			t.nodes[w].red, t.nodes[p].red = t.nodes[p].red, false
			t.nodes[t.nodes[w].left].red = false
			t.rotateRight(p)
			x = t.root
		}
	}
	t.nodes[x].red = false
}

// --- Rotations and size maintenance ----------------------------------------

// rotateLeft lifts x's right child y into x's position. Only x and y change
// children, so only their subtree sizes are recomputed (x first, as it is
// now a child of y).
func (t *Tree[I]) rotateLeft(x Ref) {
	y := t.nodes[x].right
	t.nodes[x].right = t.nodes[y].left
	if l := t.nodes[y].left; l != None {
		t.nodes[l].parent = x
	}
	t.replaceChild(t.nodes[x].parent, x, y)
	t.nodes[y].left = x
	t.nodes[x].parent = y
	t.recompute(x)
	t.recompute(y)
}

func (t *Tree[I]) rotateRight(x Ref) {
	y := t.nodes[x].left
	t.nodes[x].left = t.nodes[y].right
	if r := t.nodes[y].right; r != None {
		t.nodes[r].parent = x
	}
	t.replaceChild(t.nodes[x].parent, x, y)
	t.nodes[y].right = x
	t.nodes[x].parent = y
	t.recompute(x)
	t.recompute(y)
}

func (t *Tree[I]) replaceChild(p, old, repl Ref) {
	t.nodes[repl].parent = p
	switch {
	case p == None:
		t.root = repl
	case t.nodes[p].left == old:
		t.nodes[p].left = repl
	default:
		t.nodes[p].right = repl
	}
}

// resizePath recomputes subtree sizes from x up to the root. After a
// structural change a node's size may coincidentally stay the same while an
// ancestor's does not, so the walk does not stop early.
func (t *Tree[I]) resizePath(x Ref) {
	for ; x != None; x = t.nodes[x].parent {
		t.recompute(x)
	}
}
