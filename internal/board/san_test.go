package board

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDisambiguation(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
		not  []string
	}{
		{
			name: "knights on different files",
			fen:  "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1",
			want: []string{"Nbd2", "Nfd2", "Na3", "Nc3", "Ne3", "Ng3", "Nh2"},
			not:  []string{"Nd2"},
		},
		{
			name: "knights on one file",
			fen:  "4k3/8/8/1N6/8/8/8/1N2K3 w - - 0 1",
			want: []string{"N1a3", "N5a3", "N1c3", "N5c3", "Nd2", "Nd4"},
			not:  []string{"Na3", "Nba3"},
		},
		{
			name: "three knights",
			fen:  "4k3/8/8/1N6/8/1N3N2/8/4K3 w - - 0 1",
			want: []string{"Nb3d4", "Nb5d4", "Nf3d4", "Nbd2", "Nfd2"},
			not:  []string{"Nd4", "Nbd4"},
		},
		{
			name: "bishops on one color",
			fen:  "4k3/8/8/8/8/8/8/B1B1K3 w - - 0 1",
			want: []string{"Bab2", "Bcb2", "Bd2"},
		},
		{
			name: "pawns and kings never disambiguate",
			fen:  "4k3/8/8/2p1p3/3P4/8/8/4K3 w - - 0 1",
			want: []string{"dxc5", "dxe5", "d5", "Kd2"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			for _, san := range tc.want {
				if !hasSAN(pos, san) {
					t.Errorf("missing %s in %v", san, sanList(pos))
				}
			}
			for _, san := range tc.not {
				if hasSAN(pos, san) {
					t.Errorf("unexpected %s in %v", san, sanList(pos))
				}
			}
		})
	}
}

// TestSANUnique checks that no two legal moves share a SAN string.
func TestSANUnique(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"R6R/3Q4/1Q4Q1/4Q3/2Q4Q/Q4Q2/pp1Q4/kBNN1KB1 w - - 0 1",
		"3r4/4P3/8/8/8/8/k7/4K3 w - - 0 1",
	}

	for _, fen := range fens {
		pos := mustParse(t, fen)
		seen := make(map[string]Move)
		for _, m := range pos.LegalMoves() {
			san := m.SAN()
			if prev, ok := seen[san]; ok {
				t.Errorf("%s: %s and %s both print as %s", fen, prev.UCI(), m.UCI(), san)
			}
			seen[san] = m
		}
	}
}

func TestSANWithSuffix(t *testing.T) {
	pos := play(t, NewPosition(), "f3", "e5", "g4")

	m, err := pos.ParseSAN("Qh4")
	if err != nil {
		t.Fatalf("ParseSAN(Qh4): %v", err)
	}
	if got := pos.SANWithSuffix(m); got != "Qh4#" {
		t.Errorf("SANWithSuffix = %q, want Qh4#", got)
	}
	if got := pos.Yields(m).Result(); got != BlackWins {
		t.Errorf("result after Qh4 = %s, want 0-1", got)
	}

	pos = play(t, NewPosition(), "e4", "f5")
	m, err = pos.ParseSAN("Qh5")
	if err != nil {
		t.Fatalf("ParseSAN(Qh5): %v", err)
	}
	if got := pos.SANWithSuffix(m); got != "Qh5+" {
		t.Errorf("SANWithSuffix = %q, want Qh5+", got)
	}
}

func TestMovesToSAN(t *testing.T) {
	start := NewPosition()
	var line []Move
	pos := start
	for _, uci := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6", "e1g1"} {
		m, err := pos.ParseUCI(uci)
		if err != nil {
			t.Fatalf("ParseUCI(%s): %v", uci, err)
		}
		line = append(line, m)
		pos = pos.Yields(m)
	}

	got, err := MovesToSAN(start, line)
	if err != nil {
		t.Fatalf("MovesToSAN: %v", err)
	}
	want := []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "O-O"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SAN mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSAN(t *testing.T) {
	pos := mustParse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	tests := []struct {
		san  string
		want string
	}{
		{"O-O", "e1g1"},
		{"0-0-0", "e1c1"},
		{"Nxf7", "e5f7"},
		{"Nxf7+", "e5f7"},
		{"Ne5xf7", "e5f7"},
		{"dxe6", "d5e6"},
		{"Qxf6", "f3f6"},
		{"Bxa6!", "e2a6"},
		{"g3", "g2g3"},
		{"Rb1", "a1b1"},
	}

	for _, tc := range tests {
		t.Run(tc.san, func(t *testing.T) {
			m, err := pos.ParseSAN(tc.san)
			if err != nil {
				t.Fatalf("ParseSAN(%q): %v", tc.san, err)
			}
			if got := m.UCI(); got != tc.want {
				t.Errorf("ParseSAN(%q) = %s, want %s", tc.san, got, tc.want)
			}
		})
	}

	for _, bad := range []string{"", "Ke3", "Zf3", "e9", "Nd2", "exd5=Q", "O-O-O-O"} {
		if _, err := pos.ParseSAN(bad); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("ParseSAN(%q) error = %v, want ErrIllegalMove", bad, err)
		}
	}
}

func TestParseUCI(t *testing.T) {
	pos := mustParse(t, "3r4/4P3/8/8/8/8/k7/4K3 w - - 0 1")

	m, err := pos.ParseUCI("e7d8r")
	if err != nil {
		t.Fatalf("ParseUCI: %v", err)
	}
	if m.Promotion() != Rook || !m.IsCapture() {
		t.Errorf("e7d8r = %+v, want rook promotion with capture", m)
	}
	if m.SAN() != "exd8=R" {
		t.Errorf("SAN = %q, want exd8=R", m.SAN())
	}

	for _, bad := range []string{"e7e8", "e7e8k", "e2e4", "z1a1", "e7"} {
		if _, err := pos.ParseUCI(bad); err == nil {
			t.Errorf("ParseUCI(%q) succeeded, want error", bad)
		}
	}
}
