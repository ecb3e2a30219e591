package board

import (
	"regexp"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Structural grammar of the six FEN fields, checked before any semantic
// parsing.
var fenFields = [6]struct {
	name    string
	pattern *regexp.Regexp
}{
	{"placement", regexp.MustCompile(`^[pnbrqkPNBRQK1-8/]{15,71}$`)},
	{"active", regexp.MustCompile(`^[wb]$`)},
	{"castling", regexp.MustCompile(`^[KQkq-]{1,4}$`)},
	{"enpassant", regexp.MustCompile(`^([a-h][36]|-)$`)},
	{"halfmove", regexp.MustCompile(`^\d{1,4}$`)},
	{"fullmove", regexp.MustCompile(`^\d{1,4}$`)},
}

// ParseFEN parses a FEN string and returns a Position with all derived
// state computed. Malformed or impossible positions yield a *FENError.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Split(fen, " ")
	if len(parts) != len(fenFields) {
		return nil, fenError("fen", fen, "need 6 space-separated fields, got %d", len(parts))
	}
	for i, field := range fenFields {
		if !field.pattern.MatchString(parts[i]) {
			return nil, fenError(field.name, parts[i], "malformed field")
		}
	}

	pos := emptyPosition()

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	if parts[1] == "b" {
		pos.active = Black
	}

	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fenError("enpassant", parts[3], "%v", err)
		}
		pos.enPassant = sq
	}

	// The grammar bounds both clocks to four digits.
	pos.halfMoves, _ = strconv.Atoi(parts[4])
	pos.fullMoves, _ = strconv.Atoi(parts[5])

	if err := validate(pos); err != nil {
		return nil, err
	}
	trimCastling(pos)
	pos.Refresh()
	if pos.IsAttacked(pos.kings[pos.active.Other()], pos.active) {
		return nil, fenError("placement", parts[0], "%s king is in check with %s to move", pos.active.Other(), pos.active)
	}

	return pos, nil
}

// parsePiecePlacement expands the placement field into the board. FEN
// lists rank 8 first.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fenError("placement", placement, "need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return fenError("placement", placement, "too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pos.board[NewSquare(file, rank)] = PieceFromChar(c)
			file++
		}

		if file != 8 {
			return fenError("placement", placement, "rank %d has %d squares", rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.castling = NoCastling
		return nil
	}

	for i := 0; i < len(castling); i++ {
		idx := strings.IndexByte("KQkq", castling[i])
		if idx < 0 {
			return fenError("castling", castling, "unexpected %q", castling[i])
		}
		right := CastlingRights(1) << idx
		if pos.castling&right != 0 {
			return fenError("castling", castling, "duplicate %q", castling[i])
		}
		pos.castling |= right
	}

	return nil
}

// validate rejects placements the move generator cannot work with.
func validate(pos *Position) error {
	var kings [2]int
	for _, sq := range AllSquares {
		piece := pos.board[sq]
		switch piece.Type() {
		case King:
			kings[piece.Color()]++
		case Pawn:
			if sq.Rank() == 0 || sq.Rank() == 7 {
				return fenError("placement", pos.placement(), "pawn on %s", sq)
			}
		}
	}
	for c := White; c <= Black; c++ {
		if kings[c] != 1 {
			return fenError("placement", pos.placement(), "%s must have exactly one king, found %d", c, kings[c])
		}
	}

	if ep := pos.enPassant; ep != NoSquare {
		// The side that just moved owns the pawn beyond the target.
		mover := pos.active.Other()
		if ep.RelativeRank(mover) != 2 {
			return fenError("enpassant", ep.String(), "target does not match %s to move", pos.active)
		}
		pawn := ep.Offset(pawnPush[mover])
		if pos.board[pawn] != NewPiece(Pawn, mover) || pos.board[ep] != NoPiece {
			return fenError("enpassant", ep.String(), "no %s pawn passed over the target", mover)
		}
	}
	return nil
}

// trimCastling drops rights whose king or rook has left its home square.
func trimCastling(pos *Position) {
	for c := White; c <= Black; c++ {
		for _, kingSide := range []bool{true, false} {
			right := castlingRight(c, kingSide)
			rook, _ := castlingRook(c, kingSide)
			if pos.board[kingHome[c]] != NewPiece(King, c) || pos.board[rook] != NewPiece(Rook, c) {
				pos.castling &^= right
			}
		}
	}
}

// ToFEN returns the FEN representation of the position.
func (p *Position) ToFEN() string {
	var sb strings.Builder

	sb.WriteString(p.placement())

	sb.WriteByte(' ')
	if p.active == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMoves))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMoves))

	return sb.String()
}

// placement serializes the board, collapsing empty runs into digits.
func (p *Position) placement() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.board[NewSquare(file, rank)]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
