/*
Command ptedit applies editing commands to a text file, using a piece table.

Usage:

	ptedit [flags] FILE [COMMAND...]

Commands are applied in order:

	i:POS:TEXT   insert TEXT at offset POS (TEXT may contain \n, \t and \\)
	d:POS:N      delete N bytes before offset POS
	g:ROW:COL    print the offset of row ROW, column COL
	o:OFF        print row, column and display column of offset OFF

The edited text is written to --output (stdout by default) or back to FILE
with --write. A FILE which does not exist is edited as an empty document.
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/piecetable"
	"github.com/npillmayer/piecetable/display"
	"github.com/npillmayer/piecetable/html"
	"github.com/npillmayer/piecetable/session"
	"github.com/npillmayer/piecetable/textfile"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/uax/uax11"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

func main() {
	os.Exit(run(afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(fs afero.Fs, args []string, stdout, stderr io.Writer) int {
	cfg, params, err := initConfig(args)
	if err != nil {
		fmt.Fprintf(stderr, "ptedit: %v\n", err)
		return 2
	}
	if len(params) == 0 {
		fmt.Fprintln(stderr, "usage: ptedit [flags] FILE [COMMAND...]")
		flags := newFlagSet()
		flags.SetOutput(stderr)
		flags.PrintDefaults()
		return 2
	}
	gtrace.CoreTracer = gologadapter.New()
	cfg.applyTraceLevel(gtrace.CoreTracer)
	setupColor(cfg.Color, stderr)
	//
	name := params[0]
	doc, err := openDocument(fs, name, cfg.HTML)
	if err != nil {
		fmt.Fprintf(stderr, "ptedit: %v\n", err)
		return 1
	}
	sess := session.New(doc)
	defer sess.Close()
	opts := display.Options{TabWidth: cfg.TabWidth, Context: uax11.ContextFromEnvironment()}
	for _, arg := range params[1:] {
		cmd, err := parseCommand(arg)
		if err == nil {
			err = cmd.apply(sess, opts, stderr)
		}
		if err != nil {
			fmt.Fprintf(stderr, "ptedit: %v\n", err)
			return 1
		}
	}
	if cfg.Dot != "" {
		if err := writeDot(fs, cfg.Dot, doc); err != nil {
			fmt.Fprintf(stderr, "ptedit: %v\n", err)
			return 1
		}
	}
	if cfg.Stats {
		printStats(stderr, doc)
	}
	switch {
	case cfg.Write:
		err = textfile.Save(fs, name, doc)
	case cfg.Output == "" || cfg.Output == "-":
		_, err = doc.WriteTo(stdout)
	default:
		err = textfile.Save(fs, cfg.Output, doc)
	}
	if err != nil {
		fmt.Fprintf(stderr, "ptedit: %v\n", err)
		return 1
	}
	return 0
}

func openDocument(fs afero.Fs, name string, isHTML bool) (*piecetable.Document, error) {
	if isHTML {
		f, err := fs.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return html.TextFromHTML(f)
	}
	doc, err := textfile.Load(fs, name)
	if errors.Is(err, os.ErrNotExist) {
		return piecetable.New(), nil
	}
	return doc, err
}

func writeDot(fs afero.Fs, name string, doc *piecetable.Document) error {
	f, err := fs.Create(name)
	if err != nil {
		return err
	}
	if err = piecetable.Doc2Dot(doc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// setupColor decides whether statistics are colored. In auto mode colors are
// used only if w is a terminal.
func setupColor(mode string, w io.Writer) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		f, ok := w.(*os.File)
		color.NoColor = !ok || !term.IsTerminal(int(f.Fd()))
	}
}

func printStats(w io.Writer, doc *piecetable.Document) {
	label := color.New(color.FgBlue)
	value := color.New(color.FgGreen, color.Bold)
	for _, s := range []struct {
		name string
		v    interface{}
	}{
		{"length", doc.Len()},
		{"pieces", doc.PieceCount()},
		{"lines", doc.LineCount()},
		{"tree height", doc.TreeHeight()},
	} {
		label.Fprintf(w, "%-12s", s.name)
		value.Fprintf(w, "%v\n", s.v)
	}
}
