package piecetable

import (
	"fmt"
	"io"
	"strconv"

	"github.com/npillmayer/piecetable/rbtree"
)

// Doc2Dot outputs the piece tree of a document in Graphviz DOT format
// (for debugging purposes). Nodes show the piece span, the document offset
// the piece starts at and the subtree size; node colors follow the
// red-black coloring.
func Doc2Dot(doc *Document, w io.Writer) error {
	var nodelist, edgelist string
	var err error
	doc.tree.Walk(0, doc.Len(), func(r rbtree.Ref, p Piece, pos uint64) bool {
		v := doc.tree.View(r)
		label := fmt.Sprintf("%s @%d\\nsize %d\\n“%s”", p, pos, v.Size, strstart(doc.buf.bytes(p)))
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", r, label, nodeDotStyles(v.Red))
		for i, c := range [2]rbtree.Ref{v.Left, v.Right} {
			if c == rbtree.None {
				nilid := fmt.Sprintf("nil%d_%d", r, i)
				nodelist += fmt.Sprintf("\"%s\" %s;\n", nilid, emptyNode())
				edgelist += fmt.Sprintf("\"%d\" -> \"%s\";\n", r, nilid)
			} else {
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", r, c)
			}
		}
		return true
	})
	for _, s := range []string{
		"strict digraph {\n",
		"\tnode [fontname=Arial,fontsize=12];\n",
		nodelist, edgelist,
		"}\n",
	} {
		if _, err = io.WriteString(w, s); err != nil {
			T().Errorf("document DOT: %s", err.Error())
			return err
		}
	}
	return nil
}

// strstart returns a quoted, shortened prefix of a piece's text.
func strstart(b []byte) string {
	const maxlen = 8
	s := b
	if len(s) > maxlen {
		s = s[:maxlen]
	}
	q := strconv.Quote(string(s))
	q = q[1 : len(q)-1] // drop quotes, keep escapes
	if len(b) > maxlen {
		q += "…"
	}
	e := strconv.Quote(q) // escape once more for the DOT label
	return e[1 : len(e)-1]
}

func emptyNode() string {
	return "[label=\"\",color=black,style=filled,fillcolor=black,shape=square,fixedsize=true,width=.15]"
}

func nodeDotStyles(red bool) string {
	s := ",style=filled,shape=box,fontcolor=white"
	if red {
		s += ",color=\"#cc2222\",fillcolor=\"#cc2222\""
	} else {
		s += ",color=black,fillcolor=\"#333333\""
	}
	return s
}
