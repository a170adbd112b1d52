/*
Package html opens documents from the text content of HTML fragments.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package html

import (
	"bytes"
	"errors"
	"io"

	"github.com/npillmayer/piecetable"
	"golang.org/x/net/html"
)

// ErrNoNode is returned by InnerText for a nil node.
var ErrNoNode = errors.New("html: node is nil")

// InnerText creates a document for the textual content of an HTML element and all
// its descendents. It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript (except that html.InnerText cannot respect CSS styling suppressing
// the visibility of the node's descendents).
func InnerText(n *html.Node) (*piecetable.Document, error) {
	if n == nil {
		return nil, ErrNoNode
	}
	var buf bytes.Buffer
	collectText(n, &buf)
	return piecetable.Open(buf.Bytes()), nil
}

func collectText(n *html.Node, buf *bytes.Buffer) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, buf)
	}
}

// TextFromHTML opens a document from the textual content of an HTML fragment.
// It does no interpretation of layout and styling, but extracts the pure text.
func TextFromHTML(input io.Reader) (*piecetable.Document, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for _, n := range nodes {
		collectText(n, &buf)
	}
	return piecetable.Open(buf.Bytes()), nil
}
