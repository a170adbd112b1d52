package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/piecetable/display"
	"github.com/npillmayer/piecetable/session"
)

// command is one editing command of the command line.
//
//	i:POS:TEXT   insert TEXT at offset POS
//	d:POS:N      delete N bytes before offset POS (N backspaces)
//	g:ROW:COL    print the offset of a row/column coordinate
//	o:OFF        print row, column and display column of an offset
type command struct {
	op   byte
	a, b uint64
	text string
}

var unescaper = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\\`, `\`)

func parseCommand(s string) (command, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts[0]) != 1 {
		return command{}, fmt.Errorf("malformed command %q", s)
	}
	cmd := command{op: parts[0][0]}
	want := 3
	if cmd.op == 'o' {
		want = 2
	}
	if len(parts) != want {
		return command{}, fmt.Errorf("command %q needs %d arguments", s, want-1)
	}
	var err error
	if cmd.a, err = strconv.ParseUint(parts[1], 10, 64); err != nil {
		return command{}, fmt.Errorf("command %q: %w", s, err)
	}
	switch cmd.op {
	case 'i':
		cmd.text = unescaper.Replace(parts[2])
	case 'd', 'g':
		if cmd.b, err = strconv.ParseUint(parts[2], 10, 64); err != nil {
			return command{}, fmt.Errorf("command %q: %w", s, err)
		}
	case 'o':
	default:
		return command{}, fmt.Errorf("unknown command %q", s)
	}
	return cmd, nil
}

// apply executes cmd on the session. Query results are written to w.
func (cmd command) apply(s *session.Session, opts display.Options, w io.Writer) error {
	doc := s.Document()
	switch cmd.op {
	case 'i':
		if err := s.MoveTo(cmd.a); err != nil {
			return err
		}
		for i := 0; i < len(cmd.text); i++ {
			if err := s.Type(cmd.text[i]); err != nil {
				return err
			}
		}
	case 'd':
		if cmd.b > cmd.a {
			return fmt.Errorf("cannot delete %d bytes before offset %d", cmd.b, cmd.a)
		}
		if err := s.MoveTo(cmd.a); err != nil {
			return err
		}
		for i := uint64(0); i < cmd.b; i++ {
			if err := s.Backspace(); err != nil {
				return err
			}
		}
	case 'g':
		off, err := doc.RowColToOffset(int(cmd.a), cmd.b)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d:%d -> offset %d\n", cmd.a, cmd.b, off)
	case 'o':
		row, col, err := doc.OffsetToRowCol(cmd.a)
		if err != nil {
			return err
		}
		x, err := display.Column(doc, row, col, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "offset %d -> %d:%d (column %d)\n", cmd.a, row, col, x)
	}
	return nil
}
