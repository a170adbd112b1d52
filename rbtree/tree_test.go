package rbtree

import (
	"errors"
	"testing"
)

type span struct {
	name string
	w    uint64
}

func (s span) Weight() uint64 { return s.w }

func names(tree *Tree[span]) []string {
	var out []string
	for s := range tree.All() {
		out = append(out, s.name)
	}
	return out
}

func assertNames(t *testing.T, tree *Tree[span], want ...string) {
	t.Helper()
	got := names(tree)
	if len(got) != len(want) {
		t.Fatalf("sequence = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", got, want)
		}
	}
}

func mustCheck(t *testing.T, tree *Tree[span]) {
	t.Helper()
	if err := tree.Check(); err != nil {
		t.Fatalf("tree check failed: %v", err)
	}
}

func TestEmptyTree(t *testing.T) {
	tree := New[span]()
	mustCheck(t, tree)
	if !tree.IsEmpty() || tree.Len() != 0 || tree.Size() != 0 || tree.Height() != 0 {
		t.Fatalf("unexpected empty tree state len=%d size=%d", tree.Len(), tree.Size())
	}
	if _, _, err := tree.Locate(0); !errors.Is(err, ErrEmptyTree) {
		t.Fatalf("expected ErrEmptyTree, got %v", err)
	}
	if tree.First() != None || tree.Last() != None {
		t.Fatalf("expected no first/last node in empty tree")
	}
}

func TestZeroValueTreeIsUsable(t *testing.T) {
	var tree Tree[span]
	if _, err := tree.InsertAfter(None, span{"a", 1}); err != nil {
		t.Fatalf("insert into zero tree failed: %v", err)
	}
	mustCheck(t, &tree)
	assertNames(t, &tree, "a")
}

func TestInsertAfterAndBefore(t *testing.T) {
	tree := New[span]()
	b, _ := tree.InsertAfter(None, span{"b", 2})
	d, _ := tree.InsertAfter(b, span{"d", 3})
	if _, err := tree.InsertBefore(d, span{"c", 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.InsertAfter(None, span{"a", 4}); err != nil {
		t.Fatal(err)
	}
	if _, err := tree.InsertBefore(None, span{"e", 5}); err != nil {
		t.Fatal(err)
	}
	mustCheck(t, tree)
	assertNames(t, tree, "a", "b", "c", "d", "e")
	if tree.Size() != 15 || tree.Len() != 5 {
		t.Fatalf("size=%d len=%d, want 15/5", tree.Size(), tree.Len())
	}
}

func TestLocateBoundaries(t *testing.T) {
	tree := New[span]()
	var last Ref
	for _, s := range []span{{"a", 3}, {"b", 1}, {"c", 4}} {
		last, _ = tree.InsertBefore(None, s)
	}
	cases := []struct {
		pos   uint64
		name  string
		start uint64
	}{
		{0, "a", 0}, {2, "a", 0}, {3, "b", 3}, {4, "c", 4}, {7, "c", 4}, {8, "c", 4},
	}
	for _, c := range cases {
		r, start, err := tree.Locate(c.pos)
		if err != nil {
			t.Fatalf("Locate(%d): %v", c.pos, err)
		}
		item, _ := tree.Item(r)
		if item.name != c.name || start != c.start {
			t.Errorf("Locate(%d) = %s@%d, want %s@%d", c.pos, item.name, start, c.name, c.start)
		}
	}
	if r, _, _ := tree.Locate(8); r != last {
		t.Errorf("Locate(end) should return the last node")
	}
	if _, _, err := tree.Locate(9); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestOffsetNextPrev(t *testing.T) {
	tree := New[span]()
	var refs []Ref
	for i := 0; i < 50; i++ {
		r, _ := tree.InsertBefore(None, span{"x", uint64(i%3 + 1)})
		refs = append(refs, r)
	}
	mustCheck(t, tree)
	var pos uint64
	for i, r := range refs {
		off, err := tree.Offset(r)
		if err != nil || off != pos {
			t.Fatalf("Offset(#%d) = %d, %v, want %d", i, off, err, pos)
		}
		item, _ := tree.Item(r)
		pos += item.w
		if i > 0 && tree.Prev(r) != refs[i-1] {
			t.Fatalf("Prev(#%d) broken", i)
		}
		if i < len(refs)-1 && tree.Next(r) != refs[i+1] {
			t.Fatalf("Next(#%d) broken", i)
		}
	}
	if tree.Next(refs[len(refs)-1]) != None || tree.Prev(refs[0]) != None {
		t.Fatalf("expected None beyond the ends")
	}
}

func TestUpdateResizes(t *testing.T) {
	tree := New[span]()
	var refs []Ref
	for i := 0; i < 20; i++ {
		r, _ := tree.InsertBefore(None, span{"x", 1})
		refs = append(refs, r)
	}
	if err := tree.Update(refs[7], span{"y", 10}); err != nil {
		t.Fatal(err)
	}
	mustCheck(t, tree)
	if tree.Size() != 29 {
		t.Fatalf("size = %d, want 29", tree.Size())
	}
	r, start, _ := tree.Locate(12)
	if r != refs[7] || start != 7 {
		t.Fatalf("Locate(12) = %d@%d, want %d@7", r, start, refs[7])
	}
}

func TestRemove(t *testing.T) {
	tree := New[span]()
	var refs []Ref
	for i := 0; i < 5; i++ {
		r, _ := tree.InsertBefore(None, span{string(rune('a' + i)), 1})
		refs = append(refs, r)
	}
	if err := tree.Remove(refs[2]); err != nil {
		t.Fatal(err)
	}
	mustCheck(t, tree)
	assertNames(t, tree, "a", "b", "d", "e")
	if err := tree.Remove(refs[2]); !errors.Is(err, ErrInvalidRef) {
		t.Fatalf("expected ErrInvalidRef for released node, got %v", err)
	}
	for _, i := range []int{0, 4, 1, 3} {
		if err := tree.Remove(refs[i]); err != nil {
			t.Fatal(err)
		}
		mustCheck(t, tree)
	}
	if !tree.IsEmpty() || tree.Size() != 0 {
		t.Fatalf("expected empty tree")
	}
}

func TestWalkRange(t *testing.T) {
	tree := New[span]()
	for i := 0; i < 10; i++ {
		tree.InsertBefore(None, span{string(rune('a' + i)), 2})
	}
	var got []string
	var starts []uint64
	tree.Walk(3, 8, func(_ Ref, s span, start uint64) bool {
		got = append(got, s.name)
		starts = append(starts, start)
		return true
	})
	want := []string{"b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("walk got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] || starts[i] != uint64(2+2*i) {
			t.Fatalf("walk got %v @ %v", got, starts)
		}
	}
	n := 0
	tree.Walk(0, 20, func(Ref, span, uint64) bool {
		n++
		return n < 3
	})
	if n != 3 {
		t.Fatalf("walk did not stop early, n=%d", n)
	}
}

func TestCheckDetectsCorruption(t *testing.T) {
	tree := New[span]()
	for i := 0; i < 8; i++ {
		tree.InsertBefore(None, span{"x", 1})
	}
	tree.nodes[tree.root].size++
	if err := tree.Check(); !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected size corruption to be detected, got %v", err)
	}
	tree.nodes[tree.root].size--
	tree.nodes[tree.root].red = true
	if err := tree.Check(); !errors.Is(err, ErrInvariant) {
		t.Fatalf("expected red root to be detected, got %v", err)
	}
}
