package piecetable

import (
	"errors"

	"github.com/npillmayer/piecetable/rbtree"
)

// location is the result of locating a document offset in the piece tree.
type location struct {
	ref   rbtree.Ref
	piece Piece
	start uint64 // document offset the piece starts at
	atEnd bool   // the offset is the end of the document
}

// locate finds the piece covering document offset pos. On a piece boundary
// the piece starting at pos is returned; for pos == Len() the last piece is
// returned with atEnd set.
func (doc *Document) locate(pos uint64) (location, error) {
	ref, start, err := doc.tree.Locate(pos)
	if err != nil {
		if errors.Is(err, rbtree.ErrEmptyTree) {
			return location{}, ErrEmptyDocument
		}
		return location{}, ErrOutOfRange
	}
	p, err := doc.tree.Item(ref)
	assert(err == nil, "locate: tree returned a stale reference")
	return location{ref: ref, piece: p, start: start, atEnd: pos == doc.Len()}, nil
}

// InsertChar inserts byte ch at document offset pos, 0 ≤ pos ≤ Len().
//
// Inserting at the end of the document right after the previously typed
// byte extends the last piece instead of creating a new one. Inserting on a
// piece boundary creates a new piece; inserting inside a piece splits it.
// If the offset is invalid, the document is left unchanged.
func (doc *Document) InsertChar(pos uint64, ch byte) error {
	if pos > doc.Len() {
		T().Debugf("insert at %d rejected, document length is %d", pos, doc.Len())
		return ErrOutOfRange
	}
	doc.ensureLines()
	addedEnd := doc.buf.append(ch)
	fresh := Piece{Source: Added, Start: addedEnd - 1, Length: 1}
	loc, err := doc.locate(pos)
	switch {
	case errors.Is(err, ErrEmptyDocument):
		_, err = doc.tree.InsertAfter(rbtree.None, fresh)
	case err != nil:
		panic("InsertChar: offset validated but not locatable")
	case loc.atEnd:
		if p := loc.piece; p.Source == Added && p.End() == addedEnd-1 {
			p.Length++ // coalesce with the previously typed byte
			err = doc.tree.Update(loc.ref, p)
		} else {
			_, err = doc.tree.InsertAfter(loc.ref, fresh)
		}
	case pos == loc.start:
		_, err = doc.tree.InsertBefore(loc.ref, fresh)
	default:
		err = doc.splitInsert(loc, pos-loc.start, fresh)
	}
	assert(err == nil, "InsertChar: piece tree rejected a live reference")
	doc.lines.insert(pos, ch)
	return nil
}

// splitInsert splits the piece at loc k bytes into it and links fresh
// between the two halves. The node of the split piece keeps the front half.
func (doc *Document) splitInsert(loc location, k uint64, fresh Piece) error {
	p := loc.piece
	back := Piece{Source: p.Source, Start: p.Start, Length: k}
	front := Piece{Source: p.Source, Start: p.Start + k, Length: p.Length - k}
	T().Debugf("split %s into %s | %s | %s", p, back, fresh, front)
	if err := doc.tree.Update(loc.ref, back); err != nil {
		return err
	}
	mid, err := doc.tree.InsertAfter(loc.ref, fresh)
	if err != nil {
		return err
	}
	_, err = doc.tree.InsertAfter(mid, front)
	return err
}

// DeleteChar deletes the byte immediately before document offset pos, i.e.
// it has the semantics of a backspace key at cursor position pos.
//
// It returns ErrAtDocumentStart for pos == 0 and ErrOutOfRange for
// pos > Len(); in both cases the document is left unchanged.
func (doc *Document) DeleteChar(pos uint64) error {
	if pos == 0 {
		return ErrAtDocumentStart
	}
	if pos > doc.Len() {
		T().Debugf("delete at %d rejected, document length is %d", pos, doc.Len())
		return ErrOutOfRange
	}
	doc.ensureLines()
	off := pos - 1
	loc, err := doc.locate(off)
	assert(err == nil, "DeleteChar: offset validated but not locatable")
	p := loc.piece
	k := off - loc.start
	ch := doc.buf.at(p, k)
	switch {
	case p.Length == 1:
		err = doc.tree.Remove(loc.ref)
	case k == p.Length-1:
		p.Length--
		err = doc.tree.Update(loc.ref, p)
	case k == 0:
		p.Start++
		p.Length--
		err = doc.tree.Update(loc.ref, p)
	default:
		back := Piece{Source: p.Source, Start: p.Start, Length: k}
		front := Piece{Source: p.Source, Start: p.Start + k + 1, Length: p.Length - k - 1}
		T().Debugf("split %s into %s | %s", p, back, front)
		if err = doc.tree.Update(loc.ref, back); err == nil {
			_, err = doc.tree.InsertAfter(loc.ref, front)
		}
	}
	assert(err == nil, "DeleteChar: piece tree rejected a live reference")
	doc.lines.remove(off, ch)
	return nil
}

// Insert inserts text at document offset pos, byte by byte. Typing at the
// end of the document therefore coalesces into a single piece.
func (doc *Document) Insert(pos uint64, text []byte) error {
	if pos > doc.Len() {
		return ErrOutOfRange
	}
	for i, b := range text {
		if err := doc.InsertChar(pos+uint64(i), b); err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes the n bytes before document offset pos, as n backspaces at pos
// would do. The document is left unchanged if [pos-n, pos) is not a valid range.
func (doc *Document) Delete(pos, n uint64) error {
	if pos > doc.Len() {
		return ErrOutOfRange
	}
	if n > pos {
		return ErrAtDocumentStart
	}
	for i := range n {
		if err := doc.DeleteChar(pos - i); err != nil {
			return err
		}
	}
	return nil
}
