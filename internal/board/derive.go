package board

import "fmt"

// Refresh recomputes every derived field from the board and game state.
// Running it again on an unchanged position produces identical results.
func (p *Position) Refresh() {
	p.collectPieces()
	p.computeAttacks()
	p.computeChecks()
	p.clearPins()
	p.computePins(White)
	p.computePins(Black)
	p.generateMoves()
	p.disambiguate()
	p.computeResult()
}

func (p *Position) collectPieces() {
	p.kings = [2]Square{NoSquare, NoSquare}
	p.pieces[White] = p.pieces[White][:0]
	p.pieces[Black] = p.pieces[Black][:0]
	for _, sq := range AllSquares {
		piece := p.board[sq]
		if piece == NoPiece {
			continue
		}
		c := piece.Color()
		p.pieces[c] = append(p.pieces[c], sq)
		if piece.Type() == King {
			p.kings[c] = sq
		}
	}
	if p.kings[White] == NoSquare || p.kings[Black] == NoSquare {
		panic(fmt.Sprintf("board: position without both kings: %q", p.placement()))
	}
}

func (p *Position) computeAttacks() {
	p.attacked = [128][2][6]uint8{}
	for i := range p.attacks {
		p.attacks[i] = p.attacks[i][:0]
	}
	for c := White; c <= Black; c++ {
		for _, sq := range p.pieces[c] {
			piece := p.board[sq]
			p.attacks[sq] = behaviorOf(piece.Type()).attacks(p, sq, p.attacks[sq][:0])
			for _, to := range p.attacks[sq] {
				p.attacked[to][c][piece.Type()]++
			}
		}
	}
}

// computeChecks scans outward from the king of the side to move: knights,
// then pawns, then diagonal and orthogonal sliders. Each group contributes
// at most one check and no position has more than two.
func (p *Position) computeChecks() {
	t := Rules()
	us := p.active
	them := us.Other()
	king := p.kings[us]
	p.checks = p.checks[:0]

	for _, sq := range t.AttackSet(king, NewPiece(Knight, us)) {
		if p.board[sq] == NewPiece(Knight, them) {
			p.checks = append(p.checks, Check{Ray: Ray{sq}})
			break
		}
	}
	if len(p.checks) == 0 {
		for _, sq := range t.AttackSet(king, NewPiece(Pawn, us)) {
			if p.board[sq] == NewPiece(Pawn, them) {
				p.checks = append(p.checks, Check{Ray: Ray{sq}})
				break
			}
		}
	}
	if ray, ok := p.sliderCheck(NewPiece(Bishop, us), them); ok {
		p.checks = append(p.checks, Check{Ray: ray})
	}
	if len(p.checks) < 2 {
		if ray, ok := p.sliderCheck(NewPiece(Rook, us), them); ok {
			p.checks = append(p.checks, Check{Ray: ray})
		}
	}
}

// sliderCheck walks the rays of probe from the king and returns the first
// one ending on an enemy slider that attacks along it.
func (p *Position) sliderCheck(probe Piece, them Color) (Ray, bool) {
	king := p.kings[probe.Color()]
	for _, ray := range Rules().AttackRays(king, probe) {
		for i, sq := range ray {
			piece := p.board[sq]
			if piece == NoPiece {
				continue
			}
			if piece.Color() == them && piece.Type().slidesAlong(probe.Type() == Bishop) {
				return append(Ray(nil), ray[:i+1]...), true
			}
			break
		}
	}
	return nil, false
}

func (p *Position) clearPins() {
	for c := White; c <= Black; c++ {
		for _, pin := range p.pins[c] {
			p.pinOf[pin.Pinned] = 0
		}
		p.pins[c] = p.pins[c][:0]
	}
}

// computePins finds pieces of color c that shield their king from an
// enemy slider: along each line from the king, one own piece followed by a
// matching enemy slider.
func (p *Position) computePins(c Color) {
	king := p.kings[c]
	for _, ray := range Rules().AttackRays(king, NewPiece(Queen, c)) {
		if len(ray) < 2 {
			continue
		}
		pinned := NoSquare
		for i, sq := range ray {
			piece := p.board[sq]
			if piece == NoPiece {
				continue
			}
			if pinned == NoSquare {
				if piece.Color() != c {
					break
				}
				pinned = sq
				continue
			}
			if piece.Color() != c && piece.Type().slidesAlong(isDiagonal(king, sq)) {
				p.pins[c] = append(p.pins[c], Pin{Ray: append(Ray(nil), ray[:i+1]...), Pinned: pinned})
				p.pinOf[pinned] = int8(len(p.pins[c]))
			}
			break
		}
	}
}

func (p *Position) generateMoves() {
	us := p.active
	p.moves = p.moves[:0]
	if len(p.checks) > 1 {
		p.moves = kingBehavior{}.moves(p, p.kings[us], p.moves)
		return
	}
	for _, sq := range p.pieces[us] {
		p.moves = behaviorOf(p.board[sq].Type()).moves(p, sq, p.moves)
	}
}

// disambiguate assigns the SAN origin token of every legal move. Movers of
// the same kind (and, for bishops, square color) reaching one destination
// are told apart by origin file, then rank; three or more use the full
// origin square.
func (p *Position) disambiguate() {
	for i := range p.moves {
		m := &p.moves[i]
		m.origin = ""
		pt := m.Piece.Type()
		if pt == Pawn || pt == King {
			continue
		}
		rivals, sameFile := 0, false
		for j, o := range p.moves {
			if j == i || o.To != m.To || o.Piece != m.Piece {
				continue
			}
			if pt == Bishop && o.From.IsLight() != m.From.IsLight() {
				continue
			}
			rivals++
			if o.From.File() == m.From.File() {
				sameFile = true
			}
		}
		switch {
		case rivals == 0:
		case rivals == 1 && !sameFile:
			m.origin = m.From.String()[:1]
		case rivals == 1:
			m.origin = m.From.String()[1:]
		default:
			m.origin = m.From.String()
		}
	}
}

func (p *Position) computeResult() {
	switch {
	case len(p.moves) > 0:
		p.result = InProgress
	case len(p.checks) > 0:
		p.result = 2 | GameResult(p.active.Other())
	default:
		p.result = Draw
	}
}
