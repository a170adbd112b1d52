/*
Package rbtree provides an order-statistics red-black tree for sequences of
weighted items.

The package is intentionally not a map/set container. Items are not ordered by
a key; their order is the in-order sequence of the tree, and a position is the
sum of item weights to the left of an item. Every node carries the summed
weight of its subtree, which lets the tree find the item covering a position,
and link or unlink items next to each other, in O(log n).

Implementation notes:
  - nodes live in an arena and are addressed by Ref; Ref 0 is the sentinel
    (black, weight 0), so rotations and deletion fix-ups are pure index
    reassignments,
  - subtree sizes are recomputed locally from a node's children, after every
    rotation and along the path touched by an insertion or deletion,
  - Check audits colors, black-heights, parent links and subtree sizes and
    should be used in tests.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package rbtree

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
