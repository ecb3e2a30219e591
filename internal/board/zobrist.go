package board

// Zobrist keys for position hashing, generated from a fixed seed so hashes
// are stable across runs and can be persisted.
var (
	zobristPiece      [12][128]uint64 // [Piece][Square], 0x88 indexed
	zobristEnPassant  [8]uint64       // One per file
	zobristCastling   [16]uint64      // All 16 castling combinations
	zobristSideToMove uint64          // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for piece := WhitePawn; piece < NoPiece; piece++ {
		for _, sq := range AllSquares {
			zobristPiece[piece][sq] = rng.next()
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// Hash returns the Zobrist hash of the board and game state. The clocks
// are not part of the hash.
func (p *Position) Hash() uint64 {
	var hash uint64
	for c := White; c <= Black; c++ {
		for _, sq := range p.pieces[c] {
			hash ^= zobristPiece[p.board[sq]][sq]
		}
	}
	if p.active == Black {
		hash ^= zobristSideToMove
	}
	hash ^= zobristCastling[p.castling]
	if p.enPassant != NoSquare {
		hash ^= zobristEnPassant[p.enPassant.File()]
	}
	return hash
}
