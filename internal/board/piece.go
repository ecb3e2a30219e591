package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType is the kind of a piece, independent of color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// Catalog entries, indexed by PieceType.
var (
	pieceNames   = [7]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}
	pieceLetters = [7]string{"", "N", "B", "R", "Q", "K", ""}
	piecePoints  = [7]int{1, 3, 3, 5, 9, 100, 0}
)

// String returns the piece type name.
func (pt PieceType) String() string {
	return pieceNames[min(pt, NoPieceType)]
}

// Letter is the SAN letter of the kind; pawns have none.
func (pt PieceType) Letter() string {
	return pieceLetters[min(pt, NoPieceType)]
}

// Points is the conventional material value: 1, 3, 3, 5, 9 and 100 for
// the king.
func (pt PieceType) Points() int {
	return piecePoints[min(pt, NoPieceType)]
}

// IsRanged reports whether the kind slides along rays.
func (pt PieceType) IsRanged() bool {
	return pt == Bishop || pt == Rook || pt == Queen
}

// slidesAlong reports whether a piece of this kind attacks along a
// diagonal (or orthogonal) line of any length.
func (pt PieceType) slidesAlong(diagonal bool) bool {
	if diagonal {
		return pt == Bishop || pt == Queen
	}
	return pt == Rook || pt == Queen
}

// Piece combines PieceType and Color into a single value.
// Encoded as: pieceType + color*6
type Piece uint8

const (
	WhitePawn   Piece = Piece(Pawn) + Piece(White)*6
	WhiteKnight Piece = Piece(Knight) + Piece(White)*6
	WhiteBishop Piece = Piece(Bishop) + Piece(White)*6
	WhiteRook   Piece = Piece(Rook) + Piece(White)*6
	WhiteQueen  Piece = Piece(Queen) + Piece(White)*6
	WhiteKing   Piece = Piece(King) + Piece(White)*6
	BlackPawn   Piece = Piece(Pawn) + Piece(Black)*6
	BlackKnight Piece = Piece(Knight) + Piece(Black)*6
	BlackBishop Piece = Piece(Bishop) + Piece(Black)*6
	BlackRook   Piece = Piece(Rook) + Piece(Black)*6
	BlackQueen  Piece = Piece(Queen) + Piece(Black)*6
	BlackKing   Piece = Piece(King) + Piece(Black)*6
	NoPiece     Piece = 12
)

const pieceChars = "PNBRQKpnbrqk"

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return pieceChars[p : p+1]
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	for i := 0; i < len(pieceChars); i++ {
		if pieceChars[i] == c {
			return Piece(i)
		}
	}
	return NoPiece
}
