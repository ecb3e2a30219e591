package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, c := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castlingRight(c, kingSide) != 0
}

// For returns the two rights of one color, kingside in bit 0 and
// queenside in bit 1.
func (cr CastlingRights) For(c Color) uint8 {
	return uint8(cr>>(2*c)) & 3
}

func castlingRight(c Color, kingSide bool) CastlingRights {
	r := WhiteKingSideCastle
	if !kingSide {
		r = WhiteQueenSideCastle
	}
	return r << (2 * c)
}

// castlingLoss lists the rights lost when a move starts or ends on a king or
// rook home square.
var castlingLoss = [128]CastlingRights{
	E1: WhiteKingSideCastle | WhiteQueenSideCastle,
	H1: WhiteKingSideCastle,
	A1: WhiteQueenSideCastle,
	E8: BlackKingSideCastle | BlackQueenSideCastle,
	H8: BlackKingSideCastle,
	A8: BlackQueenSideCastle,
}

// GameResult is the outcome of a position. Checkmate is encoded as
// 2|winner, so the low bit names the winning color.
type GameResult uint8

const (
	InProgress GameResult = 0
	Draw       GameResult = 1
	WhiteWins  GameResult = 2 | GameResult(White)
	BlackWins  GameResult = 2 | GameResult(Black)
)

// IsCheckmate reports whether the result is a win for either side.
func (r GameResult) IsCheckmate() bool {
	return r&2 != 0
}

// Winner returns the winning color of a checkmate, else NoColor.
func (r GameResult) Winner() Color {
	if !r.IsCheckmate() {
		return NoColor
	}
	return Color(r & 1)
}

func (r GameResult) String() string {
	switch r {
	case InProgress:
		return "*"
	case Draw:
		return "1/2-1/2"
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	}
	return "?"
}

// Check is a line of attack against the king of the side to move. The ray
// starts next to the king and ends on the checking piece. Each position
// holds its own copy of the ray.
type Check struct {
	Ray Ray
}

// Source returns the square of the checking piece.
func (c Check) Source() Square {
	return c.Ray[len(c.Ray)-1]
}

// IsDirect reports whether the checker is adjacent to the king or a knight.
func (c Check) IsDirect() bool {
	return len(c.Ray) == 1
}

// Pin holds a piece against its own king. The ray runs from next to the
// king out to the pinning piece and includes the pinned square.
type Pin struct {
	Ray    Ray
	Pinned Square
}

// Source returns the square of the pinning piece.
func (p Pin) Source() Square {
	return p.Ray[len(p.Ray)-1]
}

// Position is a complete chess position. The board and game state fields
// are its identity; everything else is derived from them by Refresh and
// is never stale outside a method call.
type Position struct {
	board     [128]Piece
	active    Color
	castling  CastlingRights
	enPassant Square
	halfMoves int
	fullMoves int

	kings    [2]Square
	pieces   [2][]Square
	attacks  [128][]Square
	attacked [128][2][6]uint8
	checks   []Check
	pins     [2][]Pin
	pinOf    [128]int8 // 1 + index into pins of the piece's color; 0 when free
	moves    []Move
	result   GameResult
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

func emptyPosition() *Position {
	p := &Position{enPassant: NoSquare, fullMoves: 1}
	for i := range p.board {
		p.board[i] = NoPiece
	}
	p.kings = [2]Square{NoSquare, NoSquare}
	return p
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if !sq.OnBoard() {
		return NoPiece
	}
	return p.board[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.PieceAt(sq) == NoPiece
}

// ActiveColor returns the side to move.
func (p *Position) ActiveColor() Color { return p.active }

// CastlingRights returns the castling rights still held.
func (p *Position) CastlingRights() CastlingRights { return p.castling }

// EnPassant returns the en passant target square, or NoSquare.
func (p *Position) EnPassant() Square { return p.enPassant }

// HalfMoveClock counts moves since the last pawn move or capture.
func (p *Position) HalfMoveClock() int { return p.halfMoves }

// FullMoveCount is incremented after every Black move.
func (p *Position) FullMoveCount() int { return p.fullMoves }

// KingSquare returns where the king of the given color stands.
func (p *Position) KingSquare(c Color) Square { return p.kings[c] }

// Pieces returns the squares holding pieces of one color, a1 to h8.
func (p *Position) Pieces(c Color) []Square {
	return p.pieces[c]
}

// AttacksFrom returns the squares attacked by the piece on sq.
func (p *Position) AttacksFrom(sq Square) []Square {
	if !sq.OnBoard() {
		return nil
	}
	return p.attacks[sq]
}

// LegalMoves returns the legal moves of the side to move. The slice is
// owned by the position; do not modify it.
func (p *Position) LegalMoves() []Move {
	return p.moves
}

// Checks returns the checks against the side to move (at most two).
func (p *Position) Checks() []Check {
	return p.checks
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return len(p.checks) > 0
}

// Pins returns the pins held against pieces of the given color.
func (p *Position) Pins(c Color) []Pin {
	return p.pins[c]
}

// PinOn returns the pin holding the piece on sq, if any.
func (p *Position) PinOn(sq Square) (Pin, bool) {
	if !sq.OnBoard() || p.pinOf[sq] == 0 {
		return Pin{}, false
	}
	return p.pins[p.board[sq].Color()][p.pinOf[sq]-1], true
}

// IsAttacked reports whether any piece of color by attacks sq.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	if !sq.OnBoard() {
		return false
	}
	for _, n := range p.attacked[sq][by] {
		if n > 0 {
			return true
		}
	}
	return false
}

// Attackers lists the kinds of the pieces of color by attacking sq, one
// entry per attacker, cheapest first.
func (p *Position) Attackers(sq Square, by Color) []PieceType {
	if !sq.OnBoard() {
		return nil
	}
	var kinds []PieceType
	for pt, n := range p.attacked[sq][by] {
		for i := uint8(0); i < n; i++ {
			kinds = append(kinds, PieceType(pt))
		}
	}
	return kinds
}

// Result returns the game state: in progress, stalemate draw, or a win.
func (p *Position) Result() GameResult {
	return p.result
}

// Update plays a legal move on the position. Passing a move that is not in
// LegalMoves is a programming error and panics.
func (p *Position) Update(m Move) {
	legal, ok := p.lookup(m)
	if !ok {
		panic(fmt.Sprintf("board: move %s is not legal in %s", m.UCI(), p.ToFEN()))
	}

	us := p.active
	piece := p.board[legal.From]
	p.board[legal.To] = piece
	p.board[legal.From] = NoPiece
	switch {
	case legal.IsCastle():
		rookFrom, rookTo := castlingRook(us, legal.Special == CastleKingSide)
		p.board[rookTo] = p.board[rookFrom]
		p.board[rookFrom] = NoPiece
	case legal.IsEnPassant():
		p.board[NewSquare(legal.To.File(), legal.From.Rank())] = NoPiece
	case legal.IsPromotion():
		p.board[legal.To] = NewPiece(legal.Promotion(), us)
	}

	p.active = us.Other()
	p.castling &^= castlingLoss[legal.From] | castlingLoss[legal.To]

	p.enPassant = NoSquare
	if legal.IsDouble() {
		p.enPassant = legal.From.Offset(pawnPush[us])
	}

	if legal.IsCapture() || piece.Type() == Pawn {
		p.halfMoves = 0
	} else {
		p.halfMoves++
	}
	if us == Black {
		p.fullMoves++
	}

	p.Refresh()
}

// Yields returns the position reached by playing m, leaving p untouched.
func (p *Position) Yields(m Move) *Position {
	next, err := ParseFEN(p.ToFEN())
	if err != nil {
		panic(fmt.Sprintf("board: position does not survive a FEN round trip: %v", err))
	}
	next.Update(m)
	return next
}

func (p *Position) lookup(m Move) (Move, bool) {
	for _, legal := range p.moves {
		if legal.Equal(m) {
			return legal, true
		}
	}
	return NoMove, false
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.board[NewSquare(file, rank)]
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.active)
	fmt.Fprintf(&sb, "Castling: %s\n", p.castling)
	fmt.Fprintf(&sb, "En passant: %s\n", p.enPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.halfMoves)
	fmt.Fprintf(&sb, "Full move: %d\n", p.fullMoves)
	fmt.Fprintf(&sb, "Hash: %016x\n", p.Hash())
	return sb.String()
}

// Material returns the material balance in points (positive favors white).
// Kings are not counted.
func (p *Position) Material() int {
	score := 0
	for c := White; c <= Black; c++ {
		for _, sq := range p.pieces[c] {
			pt := p.board[sq].Type()
			if pt == King {
				continue
			}
			if c == White {
				score += pt.Points()
			} else {
				score -= pt.Points()
			}
		}
	}
	return score
}
