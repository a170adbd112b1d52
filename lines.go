package piecetable

// lineMark is one line of a document. A mark stores the length of its line,
// including the terminating newline; the offset a line starts at is derived by
// walking the list from the current mark, whose start offset is cached.
// Inserting or deleting a byte therefore touches one mark (two if a newline is
// involved), never the marks behind it.
type lineMark struct {
	length     uint64
	next, prev *lineMark
}

// lineIndex is a doubly linked list of line marks in document order. It holds
// 1 + (number of '\n' in the document) marks; the first line starts at
// offset 0 even without a preceding newline. Only '\n' terminates a line;
// a '\r' is line content, so "a\r\nb" has two lines of which the first has
// content "a\r".
//
// current tracks the line the last query or edit touched. Front ends moving a
// cursor line by line thus pay O(1) per step; random access costs the
// distance from the current line.
type lineIndex struct {
	head    *lineMark
	count   int
	current *lineMark
	row     int    // row of current
	start   uint64 // document offset current starts at
}

func newLineIndex(text []byte) lineIndex {
	li := lineIndex{head: &lineMark{}, count: 1}
	m := li.head
	for _, b := range text {
		m.length++
		if b == '\n' {
			nx := &lineMark{prev: m}
			m.next = nx
			m = nx
			li.count++
		}
	}
	li.current = li.head
	return li
}

// contentLength is the length of a line without its newline.
func (m *lineMark) contentLength() uint64 {
	if m.next != nil {
		return m.length - 1
	}
	return m.length
}

// seekRow makes row the current line.
func (li *lineIndex) seekRow(row int) (*lineMark, error) {
	if row < 0 || row >= li.count {
		return nil, ErrOutOfRange
	}
	for li.row < row {
		li.start += li.current.length
		li.current = li.current.next
		li.row++
	}
	for li.row > row {
		li.current = li.current.prev
		li.start -= li.current.length
		li.row--
	}
	return li.current, nil
}

// seekOffset makes the line containing document offset off the current line.
// An offset directly behind a newline belongs to the following line; the end
// of the document belongs to the last line.
func (li *lineIndex) seekOffset(off uint64) *lineMark {
	for li.current.next != nil && off >= li.start+li.current.length {
		li.start += li.current.length
		li.current = li.current.next
		li.row++
	}
	for off < li.start {
		li.current = li.current.prev
		li.start -= li.current.length
		li.row--
	}
	return li.current
}

// insert accounts for byte ch inserted at document offset off. A newline
// splits its line: the new mark starts at off+1.
func (li *lineIndex) insert(off uint64, ch byte) {
	m := li.seekOffset(off)
	m.length++
	if ch != '\n' {
		return
	}
	head := off - li.start + 1
	nx := &lineMark{length: m.length - head, prev: m, next: m.next}
	if m.next != nil {
		m.next.prev = nx
	}
	m.next = nx
	m.length = head
	li.count++
}

// remove accounts for byte ch deleted at document offset off. Deleting a
// newline merges the following line into the line it terminated.
func (li *lineIndex) remove(off uint64, ch byte) {
	m := li.seekOffset(off)
	m.length--
	if ch != '\n' {
		return
	}
	nx := m.next
	assert(nx != nil, "deleted newline does not terminate a line")
	m.length += nx.length
	m.next = nx.next
	if nx.next != nil {
		nx.next.prev = m
	}
	nx.next, nx.prev = nil, nil
	li.count--
}

// starts lists the start offsets of all lines, walking from the head.
func (li *lineIndex) starts() []uint64 {
	out := make([]uint64, 0, li.count)
	var off uint64
	for m := li.head; m != nil; m = m.next {
		out = append(out, off)
		off += m.length
	}
	return out
}
