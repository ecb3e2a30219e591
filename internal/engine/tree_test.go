package engine

import (
	"context"
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func TestTreeGrow(t *testing.T) {
	tests := []struct {
		depth int
		nodes int
	}{
		{0, 1},
		{1, 21},
		{2, 421},
		{3, 9323},
	}

	for _, tt := range tests {
		tree := Plant(board.NewPosition())
		nodes, err := tree.Grow(context.Background(), tt.depth)
		if err != nil {
			t.Fatalf("Grow(%d): %v", tt.depth, err)
		}
		if nodes != tt.nodes {
			t.Errorf("Grow(%d) = %d nodes, want %d", tt.depth, nodes, tt.nodes)
		}
	}
}

func TestTreeStructure(t *testing.T) {
	root := board.NewPosition()
	tree := Plant(root)
	if _, err := tree.Grow(context.Background(), 2); err != nil {
		t.Fatal(err)
	}

	if !tree.Root.IsRoot() || tree.Root.IsLeaf() || !tree.Root.IsMax() {
		t.Fatalf("root flags wrong: root=%v leaf=%v max=%v",
			tree.Root.IsRoot(), tree.Root.IsLeaf(), tree.Root.IsMax())
	}
	for _, child := range tree.Root.Children {
		if child.Parent != tree.Root || child.Depth != 1 {
			t.Errorf("%s: parent/depth not linked", child.SAN)
		}
		if child.IsMax() {
			t.Errorf("%s: Black to move should minimize", child.SAN)
		}
		if len(child.Children) != 20 {
			t.Errorf("%s: %d children, want 20", child.SAN, len(child.Children))
		}
		for _, grandchild := range child.Children {
			if !grandchild.IsLeaf() {
				t.Errorf("%s %s expanded past depth", child.SAN, grandchild.SAN)
			}
		}
	}
	if root.ToFEN() != board.StartFEN {
		t.Errorf("growing changed the root position: %s", root.ToFEN())
	}
}

func TestRamifyCheckSuffix(t *testing.T) {
	tree := Plant(mustParse(t, foolsMatePrelude))
	tree.Root.Ramify()

	found := false
	for _, child := range tree.Root.Children {
		if child.SAN == "Qh4#" {
			found = true
			if child.Position.Result() != board.BlackWins {
				t.Errorf("result after Qh4# = %v", child.Position.Result())
			}
		}
	}
	if !found {
		t.Error("Qh4# not among the children")
	}
}

func TestAnalyzeMinimax(t *testing.T) {
	// White can take a free queen or a free rook.
	pos := mustParse(t, "4k3/8/8/3q4/8/8/r2Q4/4K3 w - - 0 1")
	tree := Plant(pos)
	if _, err := tree.Grow(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	score := tree.Analyze(Material{})

	best := tree.Root.Best()
	t.Logf("best %s score %d", best.SAN, score)
	if best.SAN != "Qxd5" {
		t.Errorf("best = %s, want Qxd5", best.SAN)
	}
	if score != 4 {
		t.Errorf("score = %d, want 4", score)
	}
	if line := tree.Root.Line(); len(line) != 1 || !line[0].Equal(best.Move) {
		t.Errorf("line = %v", line)
	}
}
