package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/npillmayer/piecetable"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func typeString(t *testing.T, s *Session, text string) {
	t.Helper()
	for i := 0; i < len(text); i++ {
		if err := s.Type(text[i]); err != nil {
			t.Fatalf("typing %q: %v", text[i], err)
		}
	}
}

func expectCursor(t *testing.T, s *Session, off uint64, row int, col uint64) {
	t.Helper()
	want := Position{Offset: off, Row: row, Col: col}
	if c := s.Cursor(); c != want {
		t.Fatalf("cursor is %+v, want %+v", c, want)
	}
}

func TestTypeAndBackspace(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	s := New(nil)
	defer s.Close()
	typeString(t, s, "ab\ncd")
	expectCursor(t, s, 5, 1, 2)
	if s.Document().String() != "ab\ncd" {
		t.Fatalf("document is %q", s.Document().String())
	}
	for i := 0; i < 3; i++ {
		if err := s.Backspace(); err != nil {
			t.Fatal(err)
		}
	}
	expectCursor(t, s, 2, 0, 2)
	if s.Document().String() != "ab" {
		t.Fatalf("document is %q", s.Document().String())
	}
	_ = s.MoveTo(0)
	if err := s.Backspace(); !errors.Is(err, piecetable.ErrAtDocumentStart) {
		t.Fatalf("expected ErrAtDocumentStart, got %v", err)
	}
	expectCursor(t, s, 0, 0, 0)
}

func TestMove(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "piecetable")
	defer teardown()
	//
	s := New(piecetable.Open([]byte("long line\nab\n\nlast one")))
	defer s.Close()
	steps := []struct {
		dir   Direction
		moved bool
		off   uint64
		row   int
		col   uint64
	}{
		{Left, false, 0, 0, 0},
		{End, true, 9, 0, 9},
		{Right, false, 9, 0, 9}, // stays within the line
		{Down, true, 12, 1, 2},  // clamped to "ab"
		{Down, true, 13, 2, 0},  // empty line
		{Down, true, 14, 3, 0},
		{Down, false, 14, 3, 0},
		{End, true, 22, 3, 8},
		{Up, true, 13, 2, 0},
		{Up, true, 10, 1, 0}, // column was clamped on the empty line
		{Home, false, 10, 1, 0},
		{Right, true, 11, 1, 1},
		{Up, true, 1, 0, 1},
		{Up, false, 1, 0, 1},
	}
	for i, step := range steps {
		moved, err := s.Move(step.dir)
		if err != nil {
			t.Fatal(err)
		}
		if moved != step.moved {
			t.Errorf("step %d (%s): moved = %v", i, step.dir, moved)
		}
		expectCursor(t, s, step.off, step.row, step.col)
	}
}

func TestSubscribe(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "piecetable")
	defer teardown()
	//
	s := New(piecetable.Open([]byte("x")))
	ch, ok := s.Subscribe(context.Background(), 16)
	if !ok {
		t.Fatal("cannot subscribe to session")
	}
	typeString(t, s, "ab")
	if _, err := s.Move(Left); err != nil {
		t.Fatal(err)
	}
	if err := s.Backspace(); err != nil {
		t.Fatal(err)
	}
	_, _ = s.Move(Left) // no-op, publishes nothing
	_ = s.Document().DeleteChar(0)
	want := []interface{}{
		Edit{Kind: Inserted, Offset: 0, Char: 'a'},
		Edit{Kind: Inserted, Offset: 1, Char: 'b'},
		Moved{Position{Offset: 1, Row: 0, Col: 1}},
		Edit{Kind: Deleted, Offset: 0, Char: 'a'},
	}
	for i, w := range want {
		select {
		case msg := <-ch:
			if msg != w {
				t.Errorf("message %d is %#v, want %#v", i, msg, w)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for message %d", i)
		}
	}
	s.Close()
	select {
	case msg, open := <-ch:
		if open {
			t.Errorf("unexpected message %#v after last edit", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not closed with session")
	}
}

func TestStalledSubscriberDoesNotBlockEditing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "piecetable")
	defer teardown()
	//
	s := New(nil)
	defer s.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, ok := s.Subscribe(ctx, 1) // read only after all edits are done
	if !ok {
		t.Fatal("cannot subscribe to session")
	}
	done := make(chan error, 1)
	go func() {
		for _, c := range []byte("abcdef") {
			if err := s.Type(c); err != nil {
				done <- err
				return
			}
		}
		_, err := s.Move(Left)
		if err == nil {
			err = s.Backspace()
		}
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("editing blocked by a stalled subscriber")
	}
	if s.Document().String() != "abcdf" {
		t.Errorf("document is %q, want %q", s.Document().String(), "abcdf")
	}
	select {
	case msg := <-ch:
		if msg != (Edit{Kind: Inserted, Offset: 0, Char: 'a'}) {
			t.Errorf("first message is %#v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("first message was not delivered")
	}
}
