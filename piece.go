package piecetable

import "fmt"

// Source names the buffer a piece refers to.
type Source uint8

const (
	// Original is the read-only snapshot of the text as opened.
	Original Source = iota
	// Added is the append-only buffer of typed characters.
	Added
)

func (s Source) String() string {
	if s == Added {
		return "add"
	}
	return "orig"
}

// Piece describes a contiguous run of bytes in one of the two buffers of a
// document. Pieces are values; a piece of length 0 never exists in a
// document's piece tree.
type Piece struct {
	Source Source
	Start  uint64 // offset into the source buffer
	Length uint64
}

// Weight returns the length of the piece. It positions pieces in the tree.
func (p Piece) Weight() uint64 {
	return p.Length
}

// End returns the offset in the source buffer just behind the piece.
func (p Piece) End() uint64 {
	return p.Start + p.Length
}

func (p Piece) String() string {
	return fmt.Sprintf("%s[%d:%d]", p.Source, p.Start, p.End())
}

// store holds the two character buffers pieces refer to. The original
// buffer is never written after opening; the added buffer only grows at its
// tail.
type store struct {
	original []byte
	added    []byte
}

// append adds ch to the tail of the added buffer and returns the new length
// of that buffer.
func (s *store) append(ch byte) uint64 {
	s.added = append(s.added, ch)
	return uint64(len(s.added))
}

// bytes returns the buffer slice a piece covers. The slice aliases buffer
// memory and must not leave the package.
func (s *store) bytes(p Piece) []byte {
	buf := s.original
	if p.Source == Added {
		buf = s.added
	}
	assert(p.End() <= uint64(len(buf)), "piece exceeds its source buffer")
	return buf[p.Start:p.End()]
}

// at returns the byte at offset i within piece p.
func (s *store) at(p Piece, i uint64) byte {
	return s.bytes(p)[i]
}

func (s *store) size(src Source) uint64 {
	if src == Added {
		return uint64(len(s.added))
	}
	return uint64(len(s.original))
}
