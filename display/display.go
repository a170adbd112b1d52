/*
Package display computes the on-screen columns of document positions.

A cursor addresses bytes, a terminal addresses cells. Tabs expand to the next
tab stop and East Asian wide characters occupy two cells; the width of text
other than tabs is determined by Unicode UAX#11 rules on grapheme clusters.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package display

import (
	"bytes"
	"sync"

	"github.com/npillmayer/piecetable"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// tracer writes to trace with key 'piecetable'
func tracer() tracing.Trace {
	return tracing.Select("piecetable")
}

// DefaultTabWidth is the tab width used if Options.TabWidth is not positive.
const DefaultTabWidth = 8

// Options control the computation of display widths.
// The zero value uses DefaultTabWidth and uax11.LatinContext.
type Options struct {
	TabWidth int
	Context  *uax11.Context
}

var setupOnce sync.Once

func (opts Options) normalized() Options {
	setupOnce.Do(grapheme.SetupGraphemeClasses)
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultTabWidth
	}
	if opts.Context == nil {
		opts.Context = uax11.LatinContext
	}
	return opts
}

// Width returns the number of terminal cells b occupies when it starts at
// column 0. b should not contain newlines.
func Width(b []byte, opts Options) int {
	opts = opts.normalized()
	x := 0
	for len(b) > 0 {
		k := bytes.IndexByte(b, '\t')
		seg := b
		if k >= 0 {
			seg = b[:k]
		}
		if len(seg) > 0 {
			x += uax11.StringWidth(grapheme.StringFromString(string(seg)), opts.Context)
		}
		if k < 0 {
			break
		}
		x += opts.TabWidth - x%opts.TabWidth // next tab stop
		b = b[k+1:]
	}
	return x
}

// Column returns the display column of byte column col in line row. Columns
// beyond the end of the line are clamped as by Document.RowColToOffset.
func Column(doc *piecetable.Document, row int, col uint64, opts Options) (int, error) {
	start, err := doc.LineStart(row)
	if err != nil {
		return 0, err
	}
	off, err := doc.RowColToOffset(row, col)
	if err != nil {
		return 0, err
	}
	prefix, err := doc.ExtractRange(start, off)
	if err != nil {
		return 0, err
	}
	x := Width(prefix, opts)
	tracer().Debugf("row %d, col %d: display column %d", row, col, x)
	return x, nil
}
