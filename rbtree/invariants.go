package rbtree

import "fmt"

// Check validates the structural invariants of the tree:
//   - the root is black and has no parent,
//   - no red node has a red child,
//   - every path from a node to an empty leaf position has the same number
//     of black nodes,
//   - every child links back to its parent,
//   - every node's size equals its weight plus the sizes of its children,
//   - no item has weight 0 (positions would be ambiguous).
//
// This checker is intentionally strict and walks the whole tree. It should be
// used in tests.
func (t *Tree[I]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvariant)
	}
	if t.root == None {
		if t.count != 0 {
			return fmt.Errorf("%w: empty tree reports %d items", ErrInvariant, t.count)
		}
		return nil
	}
	if t.nodes[t.root].parent != None {
		return fmt.Errorf("%w: root %d has a parent", ErrInvariant, t.root)
	}
	if t.isRed(t.root) {
		return fmt.Errorf("%w: root %d is red", ErrInvariant, t.root)
	}
	if t.nodes[None].red || t.nodes[None].size != 0 {
		return fmt.Errorf("%w: sentinel modified", ErrInvariant)
	}
	n, _, err := t.checkNode(t.root)
	if err != nil {
		return err
	}
	if n != t.count {
		return fmt.Errorf("%w: item count mismatch (%d != %d)", ErrInvariant, n, t.count)
	}
	return nil
}

func (t *Tree[I]) checkNode(x Ref) (count int, blackHeight int, err error) {
	if x == None {
		return 0, 1, nil
	}
	nd := &t.nodes[x]
	if !nd.used {
		return 0, 0, fmt.Errorf("%w: node %d is linked but released", ErrInvariant, x)
	}
	w := nd.item.Weight()
	if w == 0 {
		return 0, 0, fmt.Errorf("%w: node %d has weight 0", ErrInvariant, x)
	}
	if nd.red && (t.isRed(nd.left) || t.isRed(nd.right)) {
		return 0, 0, fmt.Errorf("%w: red node %d has a red child", ErrInvariant, x)
	}
	for _, c := range [2]Ref{nd.left, nd.right} {
		if c != None && t.nodes[c].parent != x {
			return 0, 0, fmt.Errorf("%w: child %d does not link back to parent %d", ErrInvariant, c, x)
		}
	}
	lc, lbh, err := t.checkNode(nd.left)
	if err != nil {
		return 0, 0, err
	}
	rc, rbh, err := t.checkNode(nd.right)
	if err != nil {
		return 0, 0, err
	}
	if lbh != rbh {
		return 0, 0, fmt.Errorf("%w: black-height differs below node %d (%d != %d)", ErrInvariant, x, lbh, rbh)
	}
	if want := w + t.sizeOf(nd.left) + t.sizeOf(nd.right); nd.size != want {
		return 0, 0, fmt.Errorf("%w: node %d has size %d, children imply %d", ErrInvariant, x, nd.size, want)
	}
	if !nd.red {
		lbh++
	}
	return lc + rc + 1, lbh, nil
}
