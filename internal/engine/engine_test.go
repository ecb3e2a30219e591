package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

const (
	foolsMatePrelude = "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2"
	foolsMate        = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemate        = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
)

func mustParse(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func TestSearchStartPosition(t *testing.T) {
	pos := board.NewPosition()
	var reported []SearchInfo
	e := New(WithDepth(2))
	e.OnInfo = func(info SearchInfo) { reported = append(reported, info) }

	info, err := e.Search(context.Background(), pos)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	t.Logf("best %s score %s nodes %d", info.SAN, ScoreToString(info.Score), info.Nodes)

	legal := false
	for _, m := range pos.LegalMoves() {
		if m.Equal(info.Move) {
			legal = true
		}
	}
	if !legal {
		t.Errorf("best move %s is not legal in the start position", info.Move)
	}
	if info.Nodes != 1+20+400 {
		t.Errorf("nodes = %d, want 421", info.Nodes)
	}
	if len(info.PV) != 2 {
		t.Errorf("PV length = %d, want 2", len(info.PV))
	}
	if len(reported) != 1 {
		t.Errorf("OnInfo called %d times, want 1", len(reported))
	}
	if pos.ToFEN() != board.StartFEN {
		t.Errorf("root position changed to %s", pos.ToFEN())
	}
}

func TestSearchFindsMate(t *testing.T) {
	for _, depth := range []int{1, 2} {
		e := New(WithDepth(depth), WithEvaluator(Material{}))
		info, err := e.Search(context.Background(), mustParse(t, foolsMatePrelude))
		if err != nil {
			t.Fatalf("depth %d: %v", depth, err)
		}
		if info.SAN != "Qh4#" {
			t.Errorf("depth %d: best = %s, want Qh4#", depth, info.SAN)
		}
		if info.Score != -MateScore+1 {
			t.Errorf("depth %d: score = %d, want %d", depth, info.Score, -MateScore+1)
		}
	}
}

func TestSearchGameOver(t *testing.T) {
	e := New()
	for _, fen := range []string{foolsMate, stalemate} {
		if _, err := e.Search(context.Background(), mustParse(t, fen)); !errors.Is(err, ErrGameOver) {
			t.Errorf("Search(%s) error = %v, want ErrGameOver", fen, err)
		}
	}
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(WithDepth(3)).Search(ctx, board.NewPosition())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestWithDepthMinimum(t *testing.T) {
	if d := New(WithDepth(0)).Depth(); d != 1 {
		t.Errorf("Depth() = %d, want 1", d)
	}
}

func TestEvaluators(t *testing.T) {
	tests := []struct {
		name string
		eval Evaluator
		fen  string
		want int
	}{
		{"material start", Material{}, board.StartFEN, 0},
		{"heuristic start", DefaultHeuristic(), board.StartFEN, 0},
		{"material mated", Material{}, foolsMate, -MateScore},
		{"heuristic mated", DefaultHeuristic(), foolsMate, -MateScore},
		{"stalemate", Material{}, stalemate, 0},
		{"extra queen", Material{}, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", 9},
		{"func", EvaluatorFunc(func(*board.Position) int { return 7 }), board.StartFEN, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.eval.Evaluate(mustParse(t, tt.fen)); got != tt.want {
				t.Errorf("Evaluate = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHeuristicDevelopment(t *testing.T) {
	h := DefaultHeuristic()
	pos := mustParse(t, "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 1 1")
	// Nf3 develops one of White's minor pieces.
	if got := h.Evaluate(pos); got <= 0 {
		t.Errorf("Evaluate after Nf3 = %d, want > 0", got)
	}
}

func TestScoreToString(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "0"},
		{35, "35"},
		{-120, "-120"},
		{MateScore - 1, "Mate in 1"},
		{MateScore - 3, "Mate in 2"},
		{-MateScore + 1, "Mated in 1"},
	}
	for _, tt := range tests {
		if got := ScoreToString(tt.score); got != tt.want {
			t.Errorf("ScoreToString(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
