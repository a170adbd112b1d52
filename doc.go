/*
Package piecetable implements the text storage of a terminal text editor.

Piece Tables

A piece table never copies the document on an edit. The text of a document
lives in two buffers: the original buffer holds the file as it was opened and
is never written again, the added buffer receives every typed character at its
tail. The document itself is a sequence of pieces, each one naming a buffer, an
offset into it and a length. Reading the pieces in order yields the text.

Inserting a character appends it to the added buffer and links a new piece
(or splits the piece at the insertion point into two). Deleting a character
shortens, trims or splits the piece containing it. Typing at the end of the
document extends the last piece, as long as the typed characters are
contiguous in the added buffer.

Piece Tree

Pieces are kept in an order-statistics red-black tree (package rbtree). The
tree is not keyed by document offsets; every node stores the total length of
its subtree instead, and the offset of a piece is accumulated from left-subtree
lengths while descending. Finding the piece covering an offset, linking a piece
and unlinking a piece are O(log n) in the number of pieces, with subtree
lengths recomputed locally on every rotation.

Lines

A doubly linked list of line marks (one per line, i.e. 1 + the number of
newlines) translates between row/column coordinates and offsets. The index
caches the line of the most recent query or edit, so cursor motion and typing
cost O(1) per step.

Documents are owned by a single editing session and are not safe for
concurrent use. The package never writes to the terminal; trace output is
debug level only.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package piecetable

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// T traces to a global core-tracer. If no core-tracer has been configured, a
// tracer reporting errors only to the Go logger is installed.
func T() tracing.Trace {
	if gtrace.CoreTracer == nil {
		gtrace.CoreTracer = gologadapter.New()
		gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	}
	return gtrace.CoreTracer
}

// DocumentError is an error type for the piecetable module.
type DocumentError string

func (e DocumentError) Error() string {
	return string(e)
}

// ErrOutOfRange is flagged whenever an offset or row is outside of the document.
const ErrOutOfRange = DocumentError("offset out of range")

// ErrAtDocumentStart is flagged for a deletion before offset 0.
const ErrAtDocumentStart = DocumentError("cannot delete at start of document")

// ErrEmptyDocument is flagged when a piece is requested from a document
// without pieces.
const ErrEmptyDocument = DocumentError("document is empty")

// ErrCorrupted is flagged by Check for violated document invariants.
const ErrCorrupted = DocumentError("document invariants violated")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
