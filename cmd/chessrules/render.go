package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/hailam/chessrules/internal/board"
)

var toMove = color.New(color.Bold)

// replay plays space separated SAN or UCI moves from pos.
func replay(pos *board.Position, line string) (*board.Position, []board.Move, error) {
	var played []board.Move
	for _, s := range strings.Fields(line) {
		m, err := pos.ParseSAN(s)
		if err != nil {
			if uci, uerr := pos.ParseUCI(s); uerr == nil {
				m, err = uci, nil
			}
		}
		if err != nil {
			return pos, played, fmt.Errorf("move %d: %w", len(played)+1, err)
		}
		played = append(played, m)
		pos = pos.Yields(m)
	}
	return pos, played, nil
}

// formatLine writes moves as numbered SAN, e.g. "1. e4 e5 2. Nf3".
func formatLine(start *board.Position, moves []board.Move) string {
	sans, _ := board.MovesToSAN(start, moves)
	var sb strings.Builder
	number := start.FullMoveCount()
	for i, san := range sans {
		white := (start.ActiveColor() == board.White) == (i%2 == 0)
		switch {
		case white:
			fmt.Fprintf(&sb, "%d. ", number)
		case i == 0:
			fmt.Fprintf(&sb, "%d... ", number)
		}
		sb.WriteString(san)
		if !white {
			number++
		}
		if i < len(sans)-1 {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// renderBoard prints the board from White's side. Pieces of the side to
// move are bold, and a king in check is red.
func renderBoard(w io.Writer, pos *board.Position) {
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(w, "%d ", rank+1)
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			fmt.Fprint(w, squareStyle(pos, sq).Sprintf(" %s ", pieceText(pos.PieceAt(sq))))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "   a  b  c  d  e  f  g  h")
	fmt.Fprintln(w, toMove.Sprintf("%s to move", pos.ActiveColor()))
}

func pieceText(p board.Piece) string {
	if p == board.NoPiece {
		return "."
	}
	return p.String()
}

func squareStyle(pos *board.Position, sq board.Square) *color.Color {
	attrs := []color.Attribute{color.BgGreen, color.FgBlack}
	if sq.IsLight() {
		attrs[0] = color.BgHiWhite
	}
	piece := pos.PieceAt(sq)
	if piece != board.NoPiece && piece.Color() == pos.ActiveColor() {
		attrs = append(attrs, color.Bold)
		if sq == pos.KingSquare(pos.ActiveColor()) && pos.InCheck() {
			attrs[1] = color.FgRed
		}
	}
	return color.New(attrs...)
}

func printLegal(w io.Writer, pos *board.Position) {
	sans := make([]string, 0, len(pos.LegalMoves()))
	for _, m := range pos.LegalMoves() {
		sans = append(sans, pos.SANWithSuffix(m))
	}
	sort.Strings(sans)
	fmt.Fprintf(w, "Legal moves (%d): %s\n", len(sans), strings.Join(sans, " "))
}
