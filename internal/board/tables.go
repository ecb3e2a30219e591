package board

import "sync"

// Ray is an ordered run of squares walked outward from an origin square.
type Ray []Square

// Contains reports whether sq lies on the ray.
func (r Ray) Contains(sq Square) bool {
	for _, s := range r {
		if s == sq {
			return true
		}
	}
	return false
}

// 0x88 step vectors.
var (
	orthogonalVectors = []int{16, -16, 1, -1}
	diagonalVectors   = []int{17, 15, -15, -17}
	queenVectors      = []int{16, -16, 1, -1, 17, 15, -15, -17}
	knightVectors     = []int{33, 31, 18, 14, -14, -18, -31, -33}
	pawnCaptures      = [2][]int{{15, 17}, {-15, -17}}
	pawnPush          = [2]int{16, -16}
)

// isDiagonal reports whether two distinct squares on one line share a
// diagonal rather than a rank or file.
func isDiagonal(a, b Square) bool {
	return a.File() != b.File() && a.Rank() != b.Rank()
}

// Tables holds the occupancy-independent geometry consulted by move
// generation. All slices are shared and must be treated as read-only.
type Tables struct {
	attack   [128][12][]Ray
	passive  [128][12][]Ray
	fieldset [128][12][]Square
}

var (
	rulesOnce sync.Once
	rules     *Tables
)

// Rules returns the process-wide tables, building them on first use.
func Rules() *Tables {
	rulesOnce.Do(func() {
		rules = buildTables()
	})
	return rules
}

// AttackRays returns the attack rays of a piece standing on sq. Ranged
// pieces get one ray per direction walked to the edge; other pieces get a
// single-square ray per attacked square.
func (t *Tables) AttackRays(sq Square, p Piece) []Ray {
	if !sq.OnBoard() || p >= NoPiece {
		return nil
	}
	return t.attack[sq][p]
}

// PassiveRays returns the non-capturing rays of a piece on sq: the pawn
// push (two squares from the start rank) and the king's castling transit
// pairs, kingside first, from the home square only.
func (t *Tables) PassiveRays(sq Square, p Piece) []Ray {
	if !sq.OnBoard() || p >= NoPiece {
		return nil
	}
	return t.passive[sq][p]
}

// AttackSet returns every square a piece on sq attacks on an empty board.
func (t *Tables) AttackSet(sq Square, p Piece) []Square {
	if !sq.OnBoard() || p >= NoPiece {
		return nil
	}
	return t.fieldset[sq][p]
}

func buildTables() *Tables {
	t := &Tables{}
	for _, sq := range AllSquares {
		for p := WhitePawn; p < NoPiece; p++ {
			rays := attackRays(sq, p)
			t.attack[sq][p] = rays
			for _, ray := range rays {
				t.fieldset[sq][p] = append(t.fieldset[sq][p], ray...)
			}
			t.passive[sq][p] = passiveRays(sq, p)
		}
	}
	return t
}

func attackRays(sq Square, p Piece) []Ray {
	var rays []Ray
	pt := p.Type()
	for _, v := range pt.vectors(p.Color()) {
		var ray Ray
		for to := sq.Offset(v); to.OnBoard(); to = to.Offset(v) {
			ray = append(ray, to)
			if !pt.IsRanged() {
				break
			}
		}
		if len(ray) > 0 {
			rays = append(rays, ray)
		}
	}
	return rays
}

func passiveRays(sq Square, p Piece) []Ray {
	c := p.Color()
	switch p.Type() {
	case Pawn:
		if sq.RelativeRank(c) == 7 {
			return nil
		}
		steps := 1
		if sq.RelativeRank(c) == 1 {
			steps = 2
		}
		var ray Ray
		for to := sq.Offset(pawnPush[c]); to.OnBoard() && len(ray) < steps; to = to.Offset(pawnPush[c]) {
			ray = append(ray, to)
		}
		return []Ray{ray}
	case King:
		if sq != kingHome[c] {
			return nil
		}
		return []Ray{
			{sq.Offset(1), sq.Offset(2)},
			{sq.Offset(-1), sq.Offset(-2)},
		}
	}
	return nil
}

var kingHome = [2]Square{E1, E8}

// vectors returns the step vectors of the kind. Only pawns depend on color.
func (pt PieceType) vectors(c Color) []int {
	switch pt {
	case Pawn:
		return pawnCaptures[c]
	case Knight:
		return knightVectors
	case Bishop:
		return diagonalVectors
	case Rook:
		return orthogonalVectors
	case Queen, King:
		return queenVectors
	}
	return nil
}

// AttackVectors returns the 0x88 step vectors a piece of this kind and
// color attacks along.
func (pt PieceType) AttackVectors(c Color) []int {
	return append([]int(nil), pt.vectors(c)...)
}
