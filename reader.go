package piecetable

import "io"

// Reader returns a reader for the bytes of a document. Reading a document
// while editing it yields an unspecified mix of old and new text.
func (doc *Document) Reader() io.Reader {
	return &docReader{doc: doc}
}

type docReader struct {
	doc    *Document
	cursor uint64
}

func (dr *docReader) Read(p []byte) (n int, err error) {
	l := uint64(len(p))
	if dr.cursor+l > dr.doc.Len() {
		if dr.cursor >= dr.doc.Len() {
			return 0, io.EOF
		}
		l = dr.doc.Len() - dr.cursor
	}
	b, err := dr.doc.ExtractRange(dr.cursor, dr.cursor+l)
	if err != nil {
		return 0, err
	}
	n = copy(p, b)
	dr.cursor += uint64(n)
	return n, nil
}
