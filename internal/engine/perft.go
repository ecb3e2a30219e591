package engine

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessrules/internal/board"
)

// Perft counts the leaf nodes of the legal move tree at the given depth.
// Depths below one count the position itself.
func Perft(pos *board.Position, depth int) uint64 {
	n, _ := perft(context.Background(), pos, depth)
	return n
}

func perft(ctx context.Context, pos *board.Position, depth int) (uint64, error) {
	if depth <= 0 {
		return 1, nil
	}
	moves := pos.LegalMoves()
	if depth == 1 {
		return uint64(len(moves)), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var nodes uint64
	for _, m := range moves {
		n, err := perft(ctx, pos.Yields(m), depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// DivideEntry is the perft count below one root move.
type DivideEntry struct {
	Move  board.Move
	UCI   string
	SAN   string
	Nodes uint64
}

// Divide runs perft below each legal move, sorted by UCI move text. It
// returns nil when depth is below one.
func Divide(pos *board.Position, depth int) []DivideEntry {
	if depth < 1 {
		return nil
	}
	entries := make([]DivideEntry, 0, len(pos.LegalMoves()))
	for _, m := range pos.LegalMoves() {
		entries = append(entries, DivideEntry{
			Move:  m,
			UCI:   m.UCI(),
			SAN:   m.SAN(),
			Nodes: Perft(pos.Yields(m), depth-1),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].UCI < entries[j].UCI })
	return entries
}

// Cache stores perft results by position hash and depth.
type Cache interface {
	Lookup(hash uint64, depth int) (nodes uint64, ok bool, err error)
	Save(hash uint64, depth int, fen string, nodes uint64) error
}

type perftConfig struct {
	workers int
	cache   Cache
	logger  *zap.Logger
}

// PerftOption configures ParallelPerft.
type PerftOption func(*perftConfig)

// WithWorkers bounds the number of root moves searched at once.
func WithWorkers(n int) PerftOption {
	return func(c *perftConfig) {
		c.workers = max(1, n)
	}
}

// WithCache consults and fills cache for the root and every root move.
func WithCache(cache Cache) PerftOption {
	return func(c *perftConfig) {
		c.cache = cache
	}
}

// WithPerftLogger logs the count of every root move at debug level.
func WithPerftLogger(logger *zap.Logger) PerftOption {
	return func(c *perftConfig) {
		c.logger = logger
	}
}

// ParallelPerft computes Perft with the root moves spread over worker
// goroutines. Each worker only touches positions it created through
// Yields, so the shared root is read but never written.
func ParallelPerft(ctx context.Context, pos *board.Position, depth int, opts ...PerftOption) (uint64, error) {
	cfg := perftConfig{
		workers: runtime.NumCPU(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if depth <= 1 {
		return Perft(pos, depth), nil
	}
	if nodes, ok, err := lookup(cfg.cache, pos, depth); err != nil || ok {
		return nodes, err
	}

	children := make([]*board.Position, 0, len(pos.LegalMoves()))
	for _, m := range pos.LegalMoves() {
		children = append(children, pos.Yields(m))
	}

	var total atomic.Uint64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i, child := range children {
		child := child
		move := pos.LegalMoves()[i]
		g.Go(func() error {
			nodes, ok, err := lookup(cfg.cache, child, depth-1)
			if err != nil {
				return err
			}
			if !ok {
				nodes, err = perft(ctx, child, depth-1)
				if err != nil {
					return err
				}
				if err := save(cfg.cache, child, depth-1, nodes); err != nil {
					return err
				}
			}
			cfg.logger.Debug("perft root move",
				zap.String("move", move.UCI()),
				zap.Uint64("nodes", nodes),
				zap.Bool("cached", ok),
			)
			total.Add(nodes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	nodes := total.Load()
	if err := save(cfg.cache, pos, depth, nodes); err != nil {
		return 0, err
	}
	return nodes, nil
}

func lookup(cache Cache, pos *board.Position, depth int) (uint64, bool, error) {
	if cache == nil {
		return 0, false, nil
	}
	nodes, ok, err := cache.Lookup(pos.Hash(), depth)
	if err != nil {
		return 0, false, fmt.Errorf("perft cache lookup: %w", err)
	}
	return nodes, ok, nil
}

func save(cache Cache, pos *board.Position, depth int, nodes uint64) error {
	if cache == nil {
		return nil
	}
	if err := cache.Save(pos.Hash(), depth, pos.ToFEN(), nodes); err != nil {
		return fmt.Errorf("perft cache save: %w", err)
	}
	return nil
}
