package piecetable

// LineStart returns the document offset at which line row starts.
// It makes row the current line of the line index.
func (doc *Document) LineStart(row int) (uint64, error) {
	doc.ensureLines()
	if _, err := doc.lines.seekRow(row); err != nil {
		return 0, err
	}
	return doc.lines.start, nil
}

// LineLength returns the length of line row, not counting its newline.
func (doc *Document) LineLength(row int) (uint64, error) {
	doc.ensureLines()
	m, err := doc.lines.seekRow(row)
	if err != nil {
		return 0, err
	}
	return m.contentLength(), nil
}

// Line returns a copy of the bytes of line row, without its newline.
func (doc *Document) Line(row int) ([]byte, error) {
	doc.ensureLines()
	m, err := doc.lines.seekRow(row)
	if err != nil {
		return nil, err
	}
	start := doc.lines.start
	return doc.ExtractRange(start, start+m.contentLength())
}

// LineStarts returns the start offsets of all lines. It walks all lines.
func (doc *Document) LineStarts() []uint64 {
	doc.ensureLines()
	return doc.lines.starts()
}

// RowColToOffset translates a (row, column) coordinate into a document
// offset. Columns count bytes; a column beyond the end of the line is clamped
// to the line's end (the position in front of its newline).
func (doc *Document) RowColToOffset(row int, col uint64) (uint64, error) {
	doc.ensureLines()
	m, err := doc.lines.seekRow(row)
	if err != nil {
		return 0, err
	}
	return doc.lines.start + min(col, m.contentLength()), nil
}

// OffsetToRowCol translates a document offset into a (row, column)
// coordinate. An offset directly behind a newline is column 0 of the next row.
func (doc *Document) OffsetToRowCol(off uint64) (row int, col uint64, err error) {
	if off > doc.Len() {
		return 0, 0, ErrOutOfRange
	}
	doc.ensureLines()
	doc.lines.seekOffset(off)
	return doc.lines.row, off - doc.lines.start, nil
}
