// Package board implements the rules of chess on a 0x88 board: attack
// tables, legal move generation with check and pin detection, SAN and FEN.
package board

import "fmt"

// Square is a 0x88 board index, rank<<4 | file. Any index with a bit of
// 0x88 set lies off the board, which makes edge detection a single mask.
type Square uint8

// Square constants for the 64 playable squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2 Square = iota + 8
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3 Square = iota + 16
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4 Square = iota + 24
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5 Square = iota + 32
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6 Square = iota + 40
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7 Square = iota + 48
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8 Square = iota + 56
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 0x80
)

// AllSquares lists the playable squares from a1 to h8, rank by rank.
var AllSquares = func() [64]Square {
	var sqs [64]Square
	for i := range sqs {
		sqs[i] = NewSquare(i&7, i>>3)
	}
	return sqs
}()

// NewSquare creates a square from file and rank (0-indexed).
func NewSquare(file, rank int) Square {
	return Square(rank<<4 | file)
}

// File returns the file (0=a, 7=h).
func (sq Square) File() int {
	return int(sq) & 15
}

// Rank returns the rank (0=1, 7=8).
func (sq Square) Rank() int {
	return int(sq) >> 4
}

// OnBoard reports whether the index is a playable square.
func (sq Square) OnBoard() bool {
	return sq&0x88 == 0
}

// Offset steps the square by a 0x88 vector. The result is NoSquare when the
// step leaves the board.
func (sq Square) Offset(vector int) Square {
	to := int(sq) + vector
	if to < 0 || to > 0x77 || to&0x88 != 0 {
		return NoSquare
	}
	return Square(to)
}

// IsLight reports whether the square is a light square. a1 is dark.
func (sq Square) IsLight() bool {
	return (sq.File()+sq.Rank())&1 == 1
}

// RelativeRank returns the rank from a given color's perspective.
// For White, rank 0 is the 1st rank; for Black, rank 0 is the 8th rank.
func (sq Square) RelativeRank(c Color) int {
	if c == White {
		return sq.Rank()
	}
	return 7 - sq.Rank()
}

// Distance is the number of king steps between two squares.
func Distance(a, b Square) int {
	df := a.File() - b.File()
	dr := a.Rank() - b.Rank()
	if df < 0 {
		df = -df
	}
	if dr < 0 {
		dr = -dr
	}
	return max(df, dr)
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.OnBoard() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return NewSquare(file, rank), nil
}
