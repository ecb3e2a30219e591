package engine

import (
	"context"

	"github.com/hailam/chessrules/internal/board"
)

// Node is one position of the game tree. The root has no move; every
// other node holds the move that led to it from its parent.
type Node struct {
	Position *board.Position
	Move     board.Move
	SAN      string
	Depth    int
	Parent   *Node
	Children []*Node
	Value    int
}

// IsRoot reports whether the node is the tree root.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// IsLeaf reports whether the node has not been expanded or has no moves.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsMax reports whether the side to move at this node maximizes, i.e. is
// White.
func (n *Node) IsMax() bool {
	return n.Position.ActiveColor() == board.White
}

// Ramify expands the node by one ply. Children are created through
// Position.Yields, so the node's own position never changes.
func (n *Node) Ramify() {
	if n.Children != nil {
		return
	}
	moves := n.Position.LegalMoves()
	n.Children = make([]*Node, 0, len(moves))
	for _, m := range moves {
		child := n.Position.Yields(m)
		n.Children = append(n.Children, &Node{
			Position: child,
			Move:     m,
			SAN:      m.SAN() + child.CheckSuffix(),
			Depth:    n.Depth + 1,
			Parent:   n,
		})
	}
}

// Evaluate sets the node value: the evaluator's score on leaves, the
// minimax of the children otherwise. Mates found nearer the root score
// higher.
func (n *Node) Evaluate(eval Evaluator) {
	if n.IsLeaf() {
		n.Value = eval.Evaluate(n.Position)
		switch {
		case n.Value >= MateScore:
			n.Value = MateScore - n.Depth
		case n.Value <= -MateScore:
			n.Value = -MateScore + n.Depth
		}
		return
	}
	best := n.Children[0].Value
	for _, child := range n.Children[1:] {
		if n.IsMax() && child.Value > best || !n.IsMax() && child.Value < best {
			best = child.Value
		}
	}
	n.Value = best
}

// Best returns the child carrying the node's value, first in move order.
func (n *Node) Best() *Node {
	for _, child := range n.Children {
		if child.Value == n.Value {
			return child
		}
	}
	return nil
}

// Line follows best children from n down to a leaf.
func (n *Node) Line() []board.Move {
	var line []board.Move
	for node := n.Best(); node != nil; node = node.Best() {
		line = append(line, node.Move)
	}
	return line
}

// Tree is a fixed-depth game tree rooted at the position to analyze.
type Tree struct {
	Root *Node
}

// Plant starts a tree at pos.
func Plant(pos *board.Position) *Tree {
	return &Tree{Root: &Node{Position: pos, Move: board.NoMove}}
}

// Grow expands every node shallower than depth and returns the number of
// nodes in the tree. It stops early when ctx is done.
func (t *Tree) Grow(ctx context.Context, depth int) (int, error) {
	var expand func(n *Node) (int, error)
	expand = func(n *Node) (int, error) {
		if n.Depth >= depth {
			return 1, nil
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		n.Ramify()
		nodes := 1
		for _, child := range n.Children {
			c, err := expand(child)
			nodes += c
			if err != nil {
				return nodes, err
			}
		}
		return nodes, nil
	}
	return expand(t.Root)
}

// Analyze assigns a value to every node, leaves first, and returns the
// root value.
func (t *Tree) Analyze(eval Evaluator) int {
	var analyze func(n *Node)
	analyze = func(n *Node) {
		for _, child := range n.Children {
			analyze(child)
		}
		n.Evaluate(eval)
	}
	analyze(t.Root)
	return t.Root.Value
}
