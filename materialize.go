package piecetable

import (
	"io"

	"github.com/npillmayer/piecetable/rbtree"
)

// ExtractRange returns a copy of the bytes in [start, end). Only pieces
// overlapping the range are visited; subtrees outside of it are skipped.
//
// The result never aliases buffer memory and stays valid across later edits.
func (doc *Document) ExtractRange(start, end uint64) ([]byte, error) {
	if start > end || end > doc.Len() {
		return nil, ErrOutOfRange
	}
	out := make([]byte, 0, end-start)
	doc.tree.Walk(start, end, func(_ rbtree.Ref, p Piece, pstart uint64) bool {
		b := doc.buf.bytes(p)
		lo, hi := uint64(0), p.Length
		if start > pstart {
			lo = start - pstart
		}
		if end < pstart+p.Length {
			hi = end - pstart
		}
		out = append(out, b[lo:hi]...)
		return true
	})
	assert(uint64(len(out)) == end-start, "ExtractRange: pieces do not cover the range")
	return out, nil
}

// ExtractAll returns a copy of the complete document, e.g. for saving it.
func (doc *Document) ExtractAll() []byte {
	out, err := doc.ExtractRange(0, doc.Len())
	assert(err == nil, "ExtractAll: full range rejected")
	return out
}

// WriteTo writes the flat concatenation of all pieces to w.
// It implements io.WriterTo.
func (doc *Document) WriteTo(w io.Writer) (int64, error) {
	var n int64
	var err error
	doc.tree.Walk(0, doc.Len(), func(_ rbtree.Ref, p Piece, _ uint64) bool {
		var k int
		k, err = w.Write(doc.buf.bytes(p))
		n += int64(k)
		return err == nil
	})
	return n, err
}
