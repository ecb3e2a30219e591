package board

import (
	"fmt"
	"strings"
)

// SANWithSuffix returns the SAN of a legal move with "+" appended when it
// gives check and "#" when it mates.
func (p *Position) SANWithSuffix(m Move) string {
	legal, ok := p.lookup(m)
	if !ok {
		return m.UCI()
	}
	return legal.SAN() + p.Yields(legal).CheckSuffix()
}

// CheckSuffix is the SAN suffix earned by the move that reached p: "#"
// when the side to move is mated, "+" when it is in check.
func (p *Position) CheckSuffix() string {
	switch {
	case p.result.IsCheckmate():
		return "#"
	case p.InCheck():
		return "+"
	}
	return ""
}

// ParseSAN finds the legal move written in Standard Algebraic Notation.
// Check markers and annotations are ignored, "0-0" is accepted for
// castling, and over-specified origins such as "Ng1f3" still resolve.
func (p *Position) ParseSAN(s string) (Move, error) {
	san := strings.TrimRight(strings.TrimSpace(s), "+#!?")
	san = strings.ReplaceAll(san, "0", "O")

	for _, m := range p.moves {
		if m.SAN() == san {
			return m, nil
		}
	}

	if strings.HasPrefix(san, "O-O") {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}

	// Parse promotion
	promo := NoPieceType
	if idx := strings.IndexByte(san, '='); idx >= 0 {
		if idx+1 >= len(san) {
			return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
		}
		promo = pieceTypeFromLetter(san[idx+1])
		if promo == NoPieceType || promo == Pawn || promo == King {
			return NoMove, fmt.Errorf("%w: invalid promotion in %q", ErrIllegalMove, s)
		}
		san = san[:idx]
	}

	isCapture := strings.Contains(san, "x")
	san = strings.ReplaceAll(san, "x", "")

	pt := Pawn
	if len(san) > 0 && san[0] >= 'A' && san[0] <= 'Z' {
		pt = pieceTypeFromLetter(san[0])
		if pt == NoPieceType {
			return NoMove, fmt.Errorf("%w: unknown piece in %q", ErrIllegalMove, s)
		}
		san = san[1:]
	}

	if len(san) < 2 {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}
	dest, err := ParseSquare(san[len(san)-2:])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrIllegalMove, s, err)
	}
	san = san[:len(san)-2]

	file, rank := -1, -1
	for i := 0; i < len(san); i++ {
		switch c := san[i]; {
		case c >= 'a' && c <= 'h':
			file = int(c - 'a')
		case c >= '1' && c <= '8':
			rank = int(c - '1')
		default:
			return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
		}
	}

	found := NoMove
	matches := 0
	for _, m := range p.moves {
		if m.To != dest || m.Piece.Type() != pt || m.Promotion() != promo {
			continue
		}
		if file >= 0 && m.From.File() != file {
			continue
		}
		if rank >= 0 && m.From.Rank() != rank {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		found = m
		matches++
	}

	switch matches {
	case 0:
		return NoMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, s, p.ToFEN())
	case 1:
		return found, nil
	}
	return NoMove, fmt.Errorf("%w: %s is ambiguous in %s", ErrIllegalMove, s, p.ToFEN())
}

func pieceTypeFromLetter(c byte) PieceType {
	for pt := Pawn; pt < NoPieceType; pt++ {
		if l := pt.Letter(); l != "" && l[0] == c {
			return pt
		}
	}
	return NoPieceType
}

// MovesToSAN replays a line from pos and returns each move in SAN with
// check suffixes. It stops at the first move that is not legal.
func MovesToSAN(pos *Position, moves []Move) ([]string, error) {
	result := make([]string, 0, len(moves))
	p := pos
	for _, m := range moves {
		legal, ok := p.lookup(m)
		if !ok {
			return result, fmt.Errorf("%w: %s in %s", ErrIllegalMove, m.UCI(), p.ToFEN())
		}
		result = append(result, p.SANWithSuffix(legal))
		p = p.Yields(legal)
	}
	return result, nil
}
