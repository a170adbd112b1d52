package rbtree

import "errors"

var (
	// ErrIndexOutOfBounds signals an invalid position.
	ErrIndexOutOfBounds = errors.New("rbtree: index out of bounds")
	// ErrEmptyTree signals a positional query on a tree without items.
	ErrEmptyTree = errors.New("rbtree: tree is empty")
	// ErrInvalidRef signals a Ref which does not address a live node.
	ErrInvalidRef = errors.New("rbtree: invalid node reference")
	// ErrInvariant signals a violated structural invariant, as reported by Check.
	ErrInvariant = errors.New("rbtree: invariant violated")
)
