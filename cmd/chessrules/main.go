// Command chessrules inspects positions and counts move trees.
//
//	chessrules -fen "<fen>" -moves "e4 e5 Nf3" -board -legal -depth 4 -divide
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	configPath = flag.String("config", "", "config file (yaml, json or toml)")
	fen        = flag.String("fen", board.StartFEN, "starting position")
	moves      = flag.String("moves", "", "space separated moves in SAN or UCI to play first")
	depth      = flag.Int("depth", 0, "perft depth (0 uses the configured depth, -1 skips perft)")
	divide     = flag.Bool("divide", false, "print perft counts per root move")
	showBoard  = flag.Bool("board", false, "print the board")
	legal      = flag.Bool("legal", false, "print the legal moves")
	search     = flag.Int("search", 0, "search the game tree this many plies deep and print the best move")
	noStore    = flag.Bool("nostore", false, "do not cache perft results on disk")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "chessrules:", err)
		os.Exit(2)
	}
	if *depth != 0 {
		cfg.Depth = *depth
	}
	if *noStore {
		cfg.NoStore = true
	}
	color.NoColor = color.NoColor || !cfg.Color

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "chessrules:", err)
		os.Exit(2)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleShutdown(cancel, logger)

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Error("chessrules failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.Encoding = "console"
	return zcfg.Build()
}

func handleShutdown(cancel context.CancelFunc, logger *zap.Logger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info("Received shutdown signal")
	cancel()
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer) error {
	start, err := board.ParseFEN(*fen)
	if err != nil {
		return err
	}
	pos, played, err := replay(start, *moves)
	if err != nil {
		return err
	}
	if len(played) > 0 {
		fmt.Fprintln(out, formatLine(start, played))
	}

	if *showBoard {
		renderBoard(out, pos)
	}
	fmt.Fprintf(out, "FEN: %s\n", pos.ToFEN())
	fmt.Fprintf(out, "Result: %s\n", pos.Result())

	if *legal {
		printLegal(out, pos)
	}

	if *search > 0 && pos.Result() == board.InProgress {
		eng := engine.New(engine.WithDepth(*search), engine.WithLogger(logger))
		info, err := eng.Search(ctx, pos)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Best: %s (%s, %d nodes, %s)\n",
			info.SAN, engine.ScoreToString(info.Score), info.Nodes, info.Time.Round(time.Millisecond))
	}

	if cfg.Depth < 1 {
		return nil
	}
	return runPerft(ctx, cfg, logger, out, pos)
}

func runPerft(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer, pos *board.Position) error {
	if *divide {
		var total uint64
		for _, e := range engine.Divide(pos, cfg.Depth) {
			fmt.Fprintf(out, "%s %-7s %d\n", e.UCI, e.SAN, e.Nodes)
			total += e.Nodes
		}
		fmt.Fprintf(out, "Nodes: %d\n", total)
		return nil
	}

	opts := []engine.PerftOption{
		engine.WithWorkers(cfg.Workers),
		engine.WithPerftLogger(logger),
	}
	if !cfg.NoStore {
		store, err := storage.Open(storage.Options{
			Dir:       cfg.DBDir,
			InMemory:  cfg.InMemory,
			FrontSize: cfg.FrontSize,
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		defer func() {
			logger.Debug("perft store stats", zap.Any("stats", store.Stats()))
			if err := store.Close(); err != nil {
				logger.Warn("closing perft store", zap.Error(err))
			}
		}()
		opts = append(opts, engine.WithCache(store))
	}

	start := time.Now()
	nodes, err := engine.ParallelPerft(ctx, pos, cfg.Depth, opts...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	logger.Info("perft finished",
		zap.Int("depth", cfg.Depth),
		zap.Uint64("nodes", nodes),
		zap.Duration("elapsed", elapsed),
	)
	fmt.Fprintf(out, "Perft(%d): %d\n", cfg.Depth, nodes)
	return nil
}
