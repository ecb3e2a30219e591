package engine

import "github.com/hailam/chessrules/internal/board"

// Score bounds. Every score is from White's point of view.
const (
	Infinity  = 30000
	MateScore = 29000
)

// Evaluator scores a position from White's point of view. Implementations
// must not modify the position.
type Evaluator interface {
	Evaluate(pos *board.Position) int
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(pos *board.Position) int

func (f EvaluatorFunc) Evaluate(pos *board.Position) int {
	return f(pos)
}

// terminal scores finished games and reports whether pos is one.
func terminal(pos *board.Position) (int, bool) {
	switch pos.Result() {
	case board.WhiteWins:
		return MateScore, true
	case board.BlackWins:
		return -MateScore, true
	case board.Draw:
		return 0, true
	}
	return 0, false
}

// Material counts piece points.
type Material struct{}

func (Material) Evaluate(pos *board.Position) int {
	if score, ok := terminal(pos); ok {
		return score
	}
	return pos.Material()
}

// Heuristic adds development and king safety terms to material. The
// weights are the defaults used by New; callers wanting other weights
// supply their own Evaluator.
type Heuristic struct {
	Undeveloped   int // per knight or bishop still on its first rank
	Check         int
	DoubleCheck   int
	KingDefender  int // per own piece next to the king
	KingAttacker  int // per enemy piece next to the king
	KingOpenSpace int // per empty square next to the king beyond the first two
}

// DefaultHeuristic returns the stock weights.
func DefaultHeuristic() Heuristic {
	return Heuristic{
		Undeveloped:   4,
		Check:         5,
		DoubleCheck:   25,
		KingDefender:  1,
		KingAttacker:  2,
		KingOpenSpace: 2,
	}
}

func (h Heuristic) Evaluate(pos *board.Position) int {
	if score, ok := terminal(pos); ok {
		return score
	}
	score := pos.Material()
	for c := board.White; c <= board.Black; c++ {
		v := h.development(pos, c) + h.kingSafety(pos, c)
		if c == board.White {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

func (h Heuristic) development(pos *board.Position, c board.Color) int {
	value := 0
	for _, sq := range pos.Pieces(c) {
		pt := pos.PieceAt(sq).Type()
		if (pt == board.Knight || pt == board.Bishop) && sq.RelativeRank(c) == 0 {
			value -= h.Undeveloped
		}
	}
	return value
}

func (h Heuristic) kingSafety(pos *board.Position, c board.Color) int {
	value := 0
	if pos.ActiveColor() == c {
		switch len(pos.Checks()) {
		case 0:
		case 1:
			value -= h.Check
		default:
			value -= h.DoubleCheck
		}
	}

	king := pos.KingSquare(c)
	defenders, attackers, empty := 0, 0, 0
	for _, sq := range board.Rules().AttackSet(king, pos.PieceAt(king)) {
		switch piece := pos.PieceAt(sq); {
		case piece == board.NoPiece:
			empty++
		case piece.Color() == c:
			defenders++
		default:
			attackers++
		}
	}
	value += h.KingDefender * defenders
	value -= h.KingAttacker * attackers
	value -= h.KingOpenSpace * max(0, empty-2)
	return value
}
