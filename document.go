package piecetable

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/npillmayer/piecetable/rbtree"
)

// Document is the text storage of one editing session: the two character
// buffers, the piece tree over them, and the line index.
//
// A document created by
//
//	&Document{}
//
// is valid and behaves like an empty document. Methods that take or return
// positions use byte offsets.
//
//	Operation        |   Document
//	-----------------+------------------
//	InsertChar       |   O(log n)
//	DeleteChar       |   O(log n)
//	ExtractRange     |   O(log n + k)
//	Row/col lookup   |   O(distance to the current line)
//
// n is the number of pieces, k the number of pieces touched.
//
// Documents are not safe for concurrent use; a document is owned by a single
// editing session, which calls one operation at a time.
type Document struct {
	buf   store
	tree  rbtree.Tree[Piece]
	lines lineIndex
}

// New creates an empty document.
func New() *Document {
	return Open(nil)
}

// Open creates a document from the bytes of a file. The bytes are copied and
// become the read-only original buffer.
func Open(text []byte) *Document {
	doc := &Document{}
	doc.buf.original = bytes.Clone(text)
	if len(text) > 0 {
		_, err := doc.tree.InsertAfter(rbtree.None, Piece{Source: Original, Length: uint64(len(text))})
		assert(err == nil, "Open: cannot insert initial piece")
	}
	doc.lines = newLineIndex(text)
	T().Debugf("opened document of %d bytes, %d lines", len(text), doc.lines.count)
	return doc
}

// Len returns the total length of the document in bytes.
func (doc *Document) Len() uint64 {
	return doc.tree.Size()
}

// IsVoid reports whether the document has no bytes.
func (doc *Document) IsVoid() bool {
	return doc.tree.IsEmpty()
}

// PieceCount returns the number of pieces the document is composed of.
func (doc *Document) PieceCount() int {
	return doc.tree.Len()
}

// Pieces returns an iterator over all pieces in document order.
func (doc *Document) Pieces() iter.Seq[Piece] {
	return doc.tree.All()
}

// TreeHeight returns the height of the piece tree. It is at most
// 2·log2(PieceCount()+1).
func (doc *Document) TreeHeight() int {
	return doc.tree.Height()
}

// LineCount returns the number of lines, which is 1 + the number of newline
// characters in the document.
func (doc *Document) LineCount() int {
	doc.ensureLines()
	return doc.lines.count
}

// Close releases all pieces, buffers and line marks. A closed document
// behaves like an empty one.
func (doc *Document) Close() {
	*doc = Document{}
}

// String returns the complete document as a Go string. This allocates a copy of
// all the bytes of the document.
func (doc *Document) String() string {
	return string(doc.ExtractAll())
}

// Check validates the invariants of a document: the piece tree invariants,
// piece spans within their buffers, the document length, and the line index
// against the newlines of the text. It walks the whole document and should be
// used in tests.
func (doc *Document) Check() error {
	if err := doc.tree.Check(); err != nil {
		return err
	}
	var total uint64
	for p := range doc.tree.All() {
		if p.End() > doc.buf.size(p.Source) {
			return fmt.Errorf("%w: piece %s exceeds its buffer of %d bytes",
				ErrCorrupted, p, doc.buf.size(p.Source))
		}
		total += p.Length
	}
	if total != doc.Len() {
		return fmt.Errorf("%w: pieces sum to %d, tree reports %d", ErrCorrupted, total, doc.Len())
	}
	doc.ensureLines()
	text := doc.ExtractAll()
	if n := bytes.Count(text, []byte{'\n'}) + 1; n != doc.lines.count {
		return fmt.Errorf("%w: %d line marks for %d lines", ErrCorrupted, doc.lines.count, n)
	}
	var off uint64
	for i, start := range doc.lines.starts() {
		if start != off {
			return fmt.Errorf("%w: line %d starts at %d, text implies %d", ErrCorrupted, i, start, off)
		}
		if k := bytes.IndexByte(text[off:], '\n'); k >= 0 {
			off += uint64(k) + 1
		}
	}
	return nil
}

// ensureLines initializes the line index of a zero-value document.
func (doc *Document) ensureLines() {
	if doc.lines.head == nil {
		doc.lines = newLineIndex(nil)
	}
}
