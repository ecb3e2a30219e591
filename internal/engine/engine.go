// Package engine searches the game tree built from board.Position.Yields.
package engine

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
)

// ErrGameOver is returned when asked to search a finished position.
var ErrGameOver = errors.New("game is over")

// SearchInfo describes a completed search.
type SearchInfo struct {
	Depth int
	Score int // White's point of view
	Nodes int
	Time  time.Duration
	Move  board.Move
	SAN   string
	PV    []board.Move
}

// Engine picks moves by full-width minimax over a tree of fixed depth.
type Engine struct {
	depth  int
	eval   Evaluator
	logger *zap.Logger

	// OnInfo is called after every completed search.
	OnInfo func(SearchInfo)
}

// Option configures an Engine.
type Option func(*Engine)

// WithDepth sets the tree depth in plies (minimum 1).
func WithDepth(depth int) Option {
	return func(e *Engine) {
		e.depth = max(1, depth)
	}
}

// WithEvaluator replaces the leaf evaluator.
func WithEvaluator(eval Evaluator) Option {
	return func(e *Engine) {
		e.eval = eval
	}
}

// WithLogger sets the logger used for search diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine searching two plies with the default heuristic.
func New(opts ...Option) *Engine {
	e := &Engine{
		depth:  2,
		eval:   DefaultHeuristic(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Depth returns the configured tree depth.
func (e *Engine) Depth() int {
	return e.depth
}

// Search finds the best move for the side to move in pos.
func (e *Engine) Search(ctx context.Context, pos *board.Position) (SearchInfo, error) {
	if pos.Result() != board.InProgress {
		return SearchInfo{}, ErrGameOver
	}

	start := time.Now()
	tree := Plant(pos)
	nodes, err := tree.Grow(ctx, e.depth)
	if err != nil {
		return SearchInfo{}, err
	}
	score := tree.Analyze(e.eval)
	best := tree.Root.Best()

	info := SearchInfo{
		Depth: e.depth,
		Score: score,
		Nodes: nodes,
		Time:  time.Since(start),
		Move:  best.Move,
		SAN:   best.SAN,
		PV:    tree.Root.Line(),
	}
	e.logger.Debug("search finished",
		zap.String("fen", pos.ToFEN()),
		zap.Int("depth", info.Depth),
		zap.String("move", info.SAN),
		zap.Int("score", info.Score),
		zap.Int("nodes", info.Nodes),
		zap.Duration("elapsed", info.Time),
	)
	if e.OnInfo != nil {
		e.OnInfo(info)
	}
	return info, nil
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return e.eval.Evaluate(pos)
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score > MateScore-100 {
		mateIn := (MateScore - score + 1) / 2
		return "Mate in " + strconv.Itoa(mateIn)
	}
	if score < -MateScore+100 {
		mateIn := (MateScore + score + 1) / 2
		return "Mated in " + strconv.Itoa(mateIn)
	}
	return strconv.Itoa(score)
}
