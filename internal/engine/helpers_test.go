package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// at parses a square name such as "e4".
func at(t *testing.T, name string) Square {
	t.Helper()
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		t.Fatalf("bad square name %q", name)
	}
	return Sq(int(name[0]-'a'), int(name[1]-'1'))
}

func squares(t *testing.T, names ...string) []Square {
	t.Helper()
	out := make([]Square, 0, len(names))
	for _, n := range names {
		out = append(out, at(t, n))
	}
	return out
}

func w(k Kind) Occupant { return Occupant{Side: White, Kind: k} }
func b(k Kind) Occupant { return Occupant{Side: Black, Kind: k} }

// setup builds a position from square names; castling rights stay intact.
func setup(t *testing.T, pieces map[string]Occupant) *Position {
	t.Helper()
	p := NewPosition()
	for name, occ := range pieces {
		p.Place(occ, at(t, name))
	}
	return p
}

func play(t *testing.T, p *Position, from, to string) Applied {
	t.Helper()
	return ApplyMove(p, Move{From: at(t, from), To: at(t, to)})
}

var sortSquares = cmpopts.SortSlices(func(a, b Square) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	return a.Rank < b.Rank
})

func assertSquares(t *testing.T, got []Square, want ...string) {
	t.Helper()
	if diff := cmp.Diff(squares(t, want...), got, sortSquares, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("destinations mismatch (-want +got):\n%s", diff)
	}
}

func contains(list []Square, sq Square) bool {
	for _, s := range list {
		if s == sq {
			return true
		}
	}
	return false
}
