/*
Package session couples a piece table document with a cursor, as an editor
front end uses it.

A Session translates key strokes (typing, backspace, cursor motion) into
document operations and keeps the cursor's offset and row/column coordinates
in sync. Observers, for example a renderer, subscribe to a session and receive
every applied edit and every cursor move as a message. Rejected operations
neither change the document nor publish anything.

A session, like its document, is meant to be driven by a single goroutine.
Subscribers may live on other goroutines.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package session

import (
	"context"

	"github.com/guiguan/caster"
	"github.com/npillmayer/piecetable"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'piecetable'
func tracer() tracing.Trace {
	return tracing.Select("piecetable")
}

// Position is a cursor position, both as a document offset and as
// row/column coordinates. Columns count bytes.
type Position struct {
	Offset uint64
	Row    int
	Col    uint64
}

// Direction is a cursor motion.
type Direction int8

// Cursor motions. Left and Right stay within the current line; Up and Down
// keep the column, clamped to the length of the target line.
const (
	Left Direction = iota
	Right
	Up
	Down
	Home // start of line
	End  // end of line, in front of the newline
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	case Home:
		return "home"
	case End:
		return "end"
	}
	return "<unknown direction>"
}

// EditKind tells insertions from deletions.
type EditKind int8

const (
	Inserted EditKind = iota
	Deleted
)

// Edit is published for every applied edit. Offset is the document offset of
// the inserted or deleted byte.
type Edit struct {
	Kind   EditKind
	Offset uint64
	Char   byte
}

// Moved is published whenever the cursor changes position by a motion.
type Moved struct {
	Position
}

// Session is an editing session over a document.
type Session struct {
	doc    *piecetable.Document
	cursor Position
	cast   *caster.Caster
}

// New creates a session for doc, with the cursor at the start of the
// document.
func New(doc *piecetable.Document) *Session {
	if doc == nil {
		doc = piecetable.New()
	}
	return &Session{
		doc:  doc,
		cast: caster.New(nil),
	}
}

// Document returns the document the session edits.
func (s *Session) Document() *piecetable.Document {
	return s.doc
}

// Cursor returns the current cursor position.
func (s *Session) Cursor() Position {
	return s.cursor
}

// Subscribe returns a channel receiving Edit and Moved messages, buffered
// with the given capacity. Publishing never waits for subscribers: a
// subscriber whose buffer is full loses the message. The subscription ends
// when ctx is done or the session is closed; the channel is closed then.
func (s *Session) Subscribe(ctx context.Context, capacity uint) (<-chan interface{}, bool) {
	return s.cast.Sub(ctx, capacity)
}

// Close ends all subscriptions. The document stays usable.
func (s *Session) Close() {
	s.cast.Close()
}

// Type inserts ch at the cursor and advances the cursor behind it.
func (s *Session) Type(ch byte) error {
	off := s.cursor.Offset
	if err := s.doc.InsertChar(off, ch); err != nil {
		return err
	}
	if ch == '\n' {
		s.cursor = Position{Offset: off + 1, Row: s.cursor.Row + 1}
	} else {
		s.cursor.Offset++
		s.cursor.Col++
	}
	s.publish(Edit{Kind: Inserted, Offset: off, Char: ch})
	return nil
}

// Backspace deletes the byte in front of the cursor and moves the cursor
// back onto its offset.
func (s *Session) Backspace() error {
	off := s.cursor.Offset
	var ch byte
	if off > 0 {
		b, err := s.doc.ExtractRange(off-1, off)
		if err != nil {
			return err
		}
		ch = b[0]
	}
	if err := s.doc.DeleteChar(off); err != nil {
		return err
	}
	if err := s.sync(off - 1); err != nil {
		return err
	}
	s.publish(Edit{Kind: Deleted, Offset: off - 1, Char: ch})
	return nil
}

// Move moves the cursor. It reports whether the cursor changed position;
// a motion against a border of the line or document is a no-op.
func (s *Session) Move(dir Direction) (bool, error) {
	cur := s.cursor
	length, err := s.doc.LineLength(cur.Row)
	if err != nil {
		return false, err
	}
	target := cur
	switch dir {
	case Left:
		if cur.Col > 0 {
			target.Col--
		}
	case Right:
		if cur.Col < length {
			target.Col++
		}
	case Up:
		if cur.Row > 0 {
			target.Row--
		}
	case Down:
		if cur.Row+1 < s.doc.LineCount() {
			target.Row++
		}
	case Home:
		target.Col = 0
	case End:
		target.Col = length
	}
	if target.Row == cur.Row && target.Col == cur.Col {
		return false, nil
	}
	off, err := s.doc.RowColToOffset(target.Row, target.Col)
	if err != nil {
		return false, err
	}
	if err = s.sync(off); err != nil {
		return false, err
	}
	tracer().Debugf("cursor %s to %d:%d", dir, s.cursor.Row, s.cursor.Col)
	s.publish(Moved{s.cursor})
	return true, nil
}

// MoveTo places the cursor at a document offset.
func (s *Session) MoveTo(off uint64) error {
	if err := s.sync(off); err != nil {
		return err
	}
	s.publish(Moved{s.cursor})
	return nil
}

// publish broadcasts msg to all subscribers without blocking on full buffers.
func (s *Session) publish(msg interface{}) {
	if !s.cast.TryPub(msg) {
		tracer().Debugf("session message %T not delivered to every subscriber", msg)
	}
}

// sync sets the cursor to offset off and recomputes its coordinates.
func (s *Session) sync(off uint64) error {
	row, col, err := s.doc.OffsetToRowCol(off)
	if err != nil {
		return err
	}
	s.cursor = Position{Offset: off, Row: row, Col: col}
	return nil
}
