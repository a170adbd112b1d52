package rbtree

import (
	"math"
	"math/rand"
	"testing"
)

// How to run:
//   - Deterministic randomized property test:
//     go test ./rbtree -run TestRandomizedProperty -count=1
//   - Fuzz test:
//     go test ./rbtree -run '^$' -fuzz FuzzTree -fuzztime=10s

type modelEntry struct {
	ref Ref
	w   uint64
}

func assertTreeMatchesModel(t *testing.T, tree *Tree[span], model []modelEntry) {
	t.Helper()
	if err := tree.Check(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if tree.Len() != len(model) {
		t.Fatalf("len=%d, model has %d entries", tree.Len(), len(model))
	}
	var total uint64
	i := 0
	for r, item := range tree.Refs() {
		if r != model[i].ref || item.w != model[i].w {
			t.Fatalf("entry %d: got ref %d w=%d, want ref %d w=%d", i, r, item.w, model[i].ref, model[i].w)
		}
		total += item.w
		i++
	}
	if tree.Size() != total {
		t.Fatalf("size=%d, sum of weights=%d", tree.Size(), total)
	}
	if n := len(model); n > 0 {
		limit := 2 * int(math.Ceil(math.Log2(float64(n+1))))
		if h := tree.Height(); h > limit {
			t.Fatalf("height %d exceeds 2·log2(n+1) = %d for n=%d", h, limit, n)
		}
	}
}

func applyRandomOp(t *testing.T, r *rand.Rand, tree *Tree[span], model []modelEntry) []modelEntry {
	t.Helper()
	w := uint64(r.Intn(5) + 1)
	switch op := r.Intn(10); {
	case op < 5 || len(model) == 0:
		i := r.Intn(len(model) + 1)
		var ref Ref
		var err error
		if i == len(model) {
			ref, err = tree.InsertBefore(None, span{"n", w})
		} else {
			ref, err = tree.InsertBefore(model[i].ref, span{"n", w})
		}
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		model = append(model, modelEntry{})
		copy(model[i+1:], model[i:])
		model[i] = modelEntry{ref: ref, w: w}
	case op < 8:
		i := r.Intn(len(model))
		if err := tree.Remove(model[i].ref); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		model = append(model[:i], model[i+1:]...)
	default:
		i := r.Intn(len(model))
		if err := tree.Update(model[i].ref, span{"u", w}); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		model[i].w = w
	}
	return model
}

func TestRandomizedProperty(t *testing.T) {
	r := rand.New(rand.NewSource(20201))
	tree := New[span]()
	var model []modelEntry
	for step := 0; step < 3000; step++ {
		model = applyRandomOp(t, r, tree, model)
		assertTreeMatchesModel(t, tree, model)
		if len(model) > 0 {
			pos := uint64(r.Int63n(int64(tree.Size())))
			ref, start, err := tree.Locate(pos)
			if err != nil {
				t.Fatalf("Locate(%d): %v", pos, err)
			}
			item, _ := tree.Item(ref)
			if pos < start || pos >= start+item.w {
				t.Fatalf("Locate(%d) returned item [%d,%d)", pos, start, start+item.w)
			}
			if off, _ := tree.Offset(ref); off != start {
				t.Fatalf("Offset=%d, Locate start=%d", off, start)
			}
		}
	}
}

func FuzzTree(f *testing.F) {
	f.Add(int64(1), 64)
	f.Add(int64(42), 300)
	f.Fuzz(func(t *testing.T, seed int64, steps int) {
		if steps < 0 || steps > 2000 {
			t.Skip()
		}
		r := rand.New(rand.NewSource(seed))
		tree := New[span]()
		var model []modelEntry
		for range steps {
			model = applyRandomOp(t, r, tree, model)
		}
		assertTreeMatchesModel(t, tree, model)
	})
}
