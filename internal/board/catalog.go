package board

// behavior is the per-kind part of move generation. attacks lists the
// squares the piece on from attacks in the current position; moves appends
// the legal moves of that piece, honoring checks and pins.
type behavior interface {
	attacks(p *Position, from Square, dst []Square) []Square
	moves(p *Position, from Square, dst []Move) []Move
}

var behaviors = [6]behavior{
	Pawn:   pawnBehavior{},
	Knight: stepBehavior{},
	Bishop: slideBehavior{},
	Rook:   slideBehavior{},
	Queen:  slideBehavior{},
	King:   kingBehavior{},
}

func behaviorOf(pt PieceType) behavior {
	return behaviors[pt]
}

// stepBehavior covers the knight.
type stepBehavior struct{}

func (stepBehavior) attacks(p *Position, from Square, dst []Square) []Square {
	return append(dst, Rules().AttackSet(from, p.board[from])...)
}

func (stepBehavior) moves(p *Position, from Square, dst []Move) []Move {
	piece := p.board[from]
	for _, to := range Rules().AttackSet(from, piece) {
		target := p.board[to]
		if target != NoPiece && target.Color() == piece.Color() {
			continue
		}
		if !p.permits(from, to) {
			continue
		}
		dst = append(dst, newMove(piece, from, to, target))
	}
	return dst
}

// slideBehavior covers bishop, rook and queen.
type slideBehavior struct{}

// attacks walks each ray to the first occupied square. The enemy king
// does not block, so squares behind it stay attacked.
func (slideBehavior) attacks(p *Position, from Square, dst []Square) []Square {
	piece := p.board[from]
	enemyKing := NewPiece(King, piece.Color().Other())
	for _, ray := range Rules().AttackRays(from, piece) {
		for _, to := range ray {
			dst = append(dst, to)
			if target := p.board[to]; target != NoPiece && target != enemyKing {
				break
			}
		}
	}
	return dst
}

func (slideBehavior) moves(p *Position, from Square, dst []Move) []Move {
	piece := p.board[from]
	for _, ray := range Rules().AttackRays(from, piece) {
		for _, to := range ray {
			target := p.board[to]
			if target != NoPiece && target.Color() == piece.Color() {
				break
			}
			if p.permits(from, to) {
				dst = append(dst, newMove(piece, from, to, target))
			}
			if target != NoPiece {
				break
			}
		}
	}
	return dst
}

type pawnBehavior struct{}

func (pawnBehavior) attacks(p *Position, from Square, dst []Square) []Square {
	return append(dst, Rules().AttackSet(from, p.board[from])...)
}

func (pawnBehavior) moves(p *Position, from Square, dst []Move) []Move {
	t := Rules()
	piece := p.board[from]
	for _, ray := range t.PassiveRays(from, piece) {
		for i, to := range ray {
			if p.board[to] != NoPiece {
				break
			}
			if !p.permits(from, to) {
				continue
			}
			if i == 1 {
				dst = append(dst, Move{From: from, To: to, Special: DoublePush, Piece: piece})
				continue
			}
			dst = appendPawnMove(dst, piece, from, to, Quiet)
		}
	}
	for _, to := range t.AttackSet(from, piece) {
		target := p.board[to]
		switch {
		case target != NoPiece:
			if target.Color() != piece.Color() && p.permits(from, to) {
				dst = appendPawnMove(dst, piece, from, to, Capture)
			}
		case to == p.enPassant:
			if p.enPassantAllowed(from, to) {
				dst = append(dst, Move{From: from, To: to, Special: EnPassant, Piece: piece})
			}
		}
	}
	return dst
}

// appendPawnMove expands a pawn move reaching the last rank into one move
// per promotion kind.
func appendPawnMove(dst []Move, piece Piece, from, to Square, special Special) []Move {
	if to.RelativeRank(piece.Color()) != 7 {
		return append(dst, Move{From: from, To: to, Special: special, Piece: piece})
	}
	for kind := Knight; kind <= Queen; kind++ {
		dst = append(dst, Move{From: from, To: to, Special: special | Promotion | Special(kind-Knight), Piece: piece})
	}
	return dst
}

type kingBehavior struct{}

func (kingBehavior) attacks(p *Position, from Square, dst []Square) []Square {
	return append(dst, Rules().AttackSet(from, p.board[from])...)
}

func (kingBehavior) moves(p *Position, from Square, dst []Move) []Move {
	t := Rules()
	piece := p.board[from]
	us := piece.Color()
	them := us.Other()
	for _, to := range t.AttackSet(from, piece) {
		target := p.board[to]
		if target != NoPiece && target.Color() == us {
			continue
		}
		if p.IsAttacked(to, them) {
			continue
		}
		dst = append(dst, newMove(piece, from, to, target))
	}

	if len(p.checks) > 0 {
		return dst
	}
	for i, ray := range t.PassiveRays(from, piece) {
		kingSide := i == 0
		if !p.castling.CanCastle(us, kingSide) {
			continue
		}
		rookFrom, _ := castlingRook(us, kingSide)
		if p.board[rookFrom] != NewPiece(Rook, us) {
			continue
		}
		if !kingSide && p.board[from.Offset(-3)] != NoPiece {
			continue
		}
		clear := true
		for _, sq := range ray {
			if p.board[sq] != NoPiece || p.IsAttacked(sq, them) {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}
		special := CastleQueenSide
		if kingSide {
			special = CastleKingSide
		}
		dst = append(dst, Move{From: from, To: ray[1], Special: special, Piece: piece})
	}
	return dst
}

// castlingRook returns the rook's origin and destination for a castle.
func castlingRook(c Color, kingSide bool) (from, to Square) {
	home := kingHome[c]
	if kingSide {
		return home.Offset(3), home.Offset(1)
	}
	return home.Offset(-4), home.Offset(-1)
}

func newMove(piece Piece, from, to Square, target Piece) Move {
	m := Move{From: from, To: to, Special: Quiet, Piece: piece}
	if target != NoPiece {
		m.Special = Capture
	}
	return m
}

// permits reports whether the non-king piece on from may land on to given
// the checks against its king and any pin on it. Under double check only
// the king moves.
func (p *Position) permits(from, to Square) bool {
	switch len(p.checks) {
	case 0:
	case 1:
		if !p.checks[0].Ray.Contains(to) {
			return false
		}
	default:
		return false
	}
	if pin, ok := p.PinOn(from); ok && !pin.Ray.Contains(to) {
		return false
	}
	return true
}

// enPassantAllowed applies the check and pin filters to an en passant
// capture, where the captured pawn is not on the destination square, and
// rejects captures that open a line to the king.
func (p *Position) enPassantAllowed(from, to Square) bool {
	captured := NewSquare(to.File(), from.Rank())
	switch len(p.checks) {
	case 0:
	case 1:
		check := p.checks[0]
		if check.Source() != captured && !check.Ray.Contains(to) {
			return false
		}
	default:
		return false
	}
	if pin, ok := p.PinOn(from); ok && !pin.Ray.Contains(to) {
		return false
	}
	return !p.exposesKing(from, to, captured)
}

// exposesKing reports whether vacating from and captured while occupying
// to leaves the mover's king on an open line to an enemy slider.
func (p *Position) exposesKing(from, to, captured Square) bool {
	us := p.board[from].Color()
	king := p.kings[us]
	for _, v := range queenVectors {
		for sq := king.Offset(v); sq.OnBoard(); sq = sq.Offset(v) {
			if sq == from || sq == captured {
				continue
			}
			if sq == to {
				break
			}
			piece := p.board[sq]
			if piece == NoPiece {
				continue
			}
			if piece.Color() != us && piece.Type().slidesAlong(isDiagonal(king, sq)) {
				return true
			}
			break
		}
	}
	return false
}
