package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/hailam/chessrules/internal/board"
)

func TestReplay(t *testing.T) {
	start := board.NewPosition()
	pos, played, err := replay(start, "e4 e7e5 Nf3 Nc6 f1b5")
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(played) != 5 {
		t.Fatalf("played %d moves, want 5", len(played))
	}
	want := "r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3"
	if got := pos.ToFEN(); got != want {
		t.Errorf("FEN = %s, want %s", got, want)
	}
	if start.ToFEN() != board.StartFEN {
		t.Error("replay changed the starting position")
	}

	_, played, err = replay(start, "e4 e5 Ke3")
	if !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("error = %v, want ErrIllegalMove", err)
	}
	if len(played) != 2 {
		t.Errorf("played %d moves before the bad one, want 2", len(played))
	}
}

func TestFormatLine(t *testing.T) {
	tests := []struct {
		fen   string
		moves string
		want  string
	}{
		{board.StartFEN, "f3 e5 g4 Qh4", "1. f3 e5 2. g4 Qh4#"},
		{"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", "e5 Nf3", "1... e5 2. Nf3"},
	}
	for _, tt := range tests {
		start, err := board.ParseFEN(tt.fen)
		if err != nil {
			t.Fatal(err)
		}
		_, played, err := replay(start, tt.moves)
		if err != nil {
			t.Fatal(err)
		}
		if got := formatLine(start, played); got != tt.want {
			t.Errorf("formatLine = %q, want %q", got, tt.want)
		}
	}
}

func TestRenderBoard(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	renderBoard(&buf, board.NewPosition())
	out := buf.String()
	t.Log("\n" + out)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	if lines[0] != "8  r  n  b  q  k  b  n  r " {
		t.Errorf("rank 8 = %q", lines[0])
	}
	if lines[4] != "4  .  .  .  .  .  .  .  . " {
		t.Errorf("rank 4 = %q", lines[4])
	}
	if lines[9] != "White to move" {
		t.Errorf("last line = %q", lines[9])
	}
}

func TestPrintLegal(t *testing.T) {
	pos, err := board.ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printLegal(&buf, pos)
	if !strings.HasPrefix(buf.String(), "Legal moves (30): ") {
		t.Errorf("unexpected header: %q", buf.String())
	}
	if !strings.Contains(buf.String(), " Qh4# ") {
		t.Errorf("Qh4# missing from %q", buf.String())
	}
}
