package html

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
)

func TestTextFromHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "piecetable")
	defer teardown()
	//
	input := "<p>Hello <b>World</b>!</p>\n<p>Second line</p>"
	doc, err := TextFromHTML(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if doc.String() != "Hello World!\nSecond line" {
		t.Fatalf("unexpected text %q", doc.String())
	}
	if doc.LineCount() != 2 {
		t.Errorf("expected 2 lines, have %d", doc.LineCount())
	}
	if err := doc.Check(); err != nil {
		t.Error(err)
	}
}

func TestInnerText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "piecetable")
	defer teardown()
	//
	nodes, err := html.ParseFragment(strings.NewReader(`<div id="x">a<span>b<i>c</i></span>d</div>`), nil)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := InnerText(nodes[0])
	if err != nil {
		t.Fatal(err)
	}
	if doc.String() != "abcd" {
		t.Fatalf("inner text is %q", doc.String())
	}
	if _, err := InnerText(nil); !errors.Is(err, ErrNoNode) {
		t.Errorf("expected ErrNoNode, got %v", err)
	}
}
