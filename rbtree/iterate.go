package rbtree

import "iter"

// Walk visits, in sequence order, every item overlapping the position range
// [from, to), together with its node and start position. Subtrees entirely
// outside the range are skipped by their sizes, so a walk touching k items
// costs O(log n + k).
//
// Iteration stops early if fn returns false. fn must not modify the tree.
func (t *Tree[I]) Walk(from, to uint64, fn func(r Ref, item I, start uint64) bool) {
	if t.IsEmpty() || fn == nil || from >= to {
		return
	}
	t.walk(t.root, 0, from, to, fn)
}

func (t *Tree[I]) walk(x Ref, base, from, to uint64, fn func(Ref, I, uint64) bool) bool {
	if x == None || base >= to || base+t.nodes[x].size <= from {
		return true
	}
	if !t.walk(t.nodes[x].left, base, from, to, fn) {
		return false
	}
	start := base + t.sizeOf(t.nodes[x].left)
	w := t.nodes[x].item.Weight()
	if start < to && start+w > from {
		if !fn(x, t.nodes[x].item, start) {
			return false
		}
	}
	return t.walk(t.nodes[x].right, start+w, from, to, fn)
}

// All returns an iterator over all items in sequence order.
func (t *Tree[I]) All() iter.Seq[I] {
	return func(yield func(I) bool) {
		for r := t.First(); r != None; r = t.Next(r) {
			if !yield(t.nodes[r].item) {
				return
			}
		}
	}
}

// Refs returns an iterator over all nodes in sequence order.
func (t *Tree[I]) Refs() iter.Seq2[Ref, I] {
	return func(yield func(Ref, I) bool) {
		for r := t.First(); r != None; r = t.Next(r) {
			if !yield(r, t.nodes[r].item) {
				return
			}
		}
	}
}
