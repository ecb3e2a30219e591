package board

import (
	"fmt"
	"strings"
)

// Special classifies a move. Capture (4) and Promotion (8) are flag bits;
// the low two bits of a promotion carry the new kind (Knight..Queen).
type Special uint8

const (
	Quiet           Special = 0
	DoublePush      Special = 1
	CastleQueenSide Special = 2
	CastleKingSide  Special = 3
	Capture         Special = 4
	EnPassant       Special = 5
	Promotion       Special = 8
)

// Move is a legal move as produced by a Position. Moves compare equal
// when they were generated for the same position and describe the same
// board change.
type Move struct {
	From    Square
	To      Square
	Special Special
	Piece   Piece // the moving piece

	// origin is the SAN disambiguation token assigned by the position.
	origin string
}

// NoMove is the zero-value placeholder for "no move".
var NoMove = Move{From: NoSquare, To: NoSquare, Piece: NoPiece}

// IsCapture reports whether the move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m.Special&Capture != 0
}

// IsPromotion reports whether a pawn is replaced on the last rank.
func (m Move) IsPromotion() bool {
	return m.Special&Promotion != 0
}

// IsCastle reports whether the move castles on either side.
func (m Move) IsCastle() bool {
	return m.Special == CastleKingSide || m.Special == CastleQueenSide
}

func (m Move) IsEnPassant() bool {
	return m.Special == EnPassant
}

func (m Move) IsDouble() bool {
	return m.Special == DoublePush
}

func (m Move) IsQuiet() bool {
	return m.Special == Quiet
}

// Promotion returns the kind a pawn promotes to, or NoPieceType.
func (m Move) Promotion() PieceType {
	if !m.IsPromotion() {
		return NoPieceType
	}
	return Knight + PieceType(m.Special&3)
}

// Equal compares the board change of two moves, ignoring notation.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Special == o.Special
}

// SAN returns the move in Standard Algebraic Notation without a check
// suffix. The disambiguation token is only present on moves taken from
// Position.LegalMoves.
func (m Move) SAN() string {
	switch m.Special {
	case CastleKingSide:
		return "O-O"
	case CastleQueenSide:
		return "O-O-O"
	}

	var sb strings.Builder
	pt := m.Piece.Type()
	sb.WriteString(pt.Letter())
	sb.WriteString(m.origin)
	if m.IsCapture() {
		if pt == Pawn {
			sb.WriteByte('a' + byte(m.From.File()))
		}
		sb.WriteByte('x')
	}
	sb.WriteString(m.To.String())
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteString(m.Promotion().Letter())
	}
	return sb.String()
}

// UCI returns the move in long algebraic notation (e.g., "e2e4", "e7e8q").
func (m Move) UCI() string {
	if !m.From.OnBoard() || !m.To.OnBoard() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += strings.ToLower(m.Promotion().Letter())
	}
	return s
}

// String returns the UCI form of the move.
func (m Move) String() string {
	return m.UCI()
}

// ParseUCI finds the legal move written in long algebraic notation.
func (p *Position) ParseUCI(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q", ErrIllegalMove, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	promo := NoPieceType
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("%w: invalid promotion piece %q", ErrIllegalMove, s[4])
		}
	}

	for _, m := range p.moves {
		if m.From == from && m.To == to && m.Promotion() == promo {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, s, p.ToFEN())
}
