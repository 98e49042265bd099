package engine

import (
	"encoding/json"
	"testing"
)

func TestNewPosition(t *testing.T) {
	p := NewPosition()

	t.Run("all squares empty", func(t *testing.T) {
		for file := 0; file < 8; file++ {
			for rank := 0; rank < 8; rank++ {
				if !p.IsEmpty(Sq(file, rank)) {
					t.Errorf("IsEmpty(%v) = false; want true", Sq(file, rank))
				}
			}
		}
	})

	t.Run("castling rights intact", func(t *testing.T) {
		if got := p.CastlingRights(); got != allCastlingRights() {
			t.Errorf("CastlingRights() = %+v; want all true", got)
		}
	})

	t.Run("no en passant target", func(t *testing.T) {
		if sq, ok := p.EnPassantTarget(); ok {
			t.Errorf("EnPassantTarget() = %v; want none", sq)
		}
	})
}

func TestStandardPosition(t *testing.T) {
	p := StandardPosition()

	tests := []struct {
		square string
		want   Occupant
	}{
		{"a1", w(Rook)},
		{"b1", w(Knight)},
		{"c1", w(Bishop)},
		{"d1", w(Queen)},
		{"e1", w(King)},
		{"h1", w(Rook)},
		{"e2", w(Pawn)},
		{"e7", b(Pawn)},
		{"d8", b(Queen)},
		{"e8", b(King)},
		{"g8", b(Knight)},
	}
	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			got, ok := p.OccupantAt(at(t, tt.square))
			if !ok || got != tt.want {
				t.Errorf("OccupantAt(%s) = %v, %v; want %v", tt.square, got, ok, tt.want)
			}
		})
	}

	t.Run("middle empty", func(t *testing.T) {
		for rank := 2; rank < 6; rank++ {
			for file := 0; file < 8; file++ {
				if !p.IsEmpty(Sq(file, rank)) {
					t.Errorf("IsEmpty(%v) = false; want true", Sq(file, rank))
				}
			}
		}
	})

	t.Run("king squares", func(t *testing.T) {
		if sq, ok := p.KingSquare(White); !ok || sq != at(t, "e1") {
			t.Errorf("KingSquare(White) = %v, %v; want e1", sq, ok)
		}
		if sq, ok := p.KingSquare(Black); !ok || sq != at(t, "e8") {
			t.Errorf("KingSquare(Black) = %v, %v; want e8", sq, ok)
		}
	})
}

func TestOccupancyPredicates(t *testing.T) {
	p := setup(t, map[string]Occupant{"d4": w(Knight), "e5": b(Pawn)})
	off := Sq(8, 0)

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"IsEmpty empty square", p.IsEmpty(at(t, "a1")), true},
		{"IsEmpty occupied", p.IsEmpty(at(t, "d4")), false},
		{"IsEmpty off board", p.IsEmpty(off), false},
		{"HasFriendly own piece", p.HasFriendly(at(t, "d4"), White), true},
		{"HasFriendly enemy piece", p.HasFriendly(at(t, "e5"), White), false},
		{"HasFriendly off board", p.HasFriendly(off, White), false},
		{"HasEnemy enemy piece", p.HasEnemy(at(t, "e5"), White), true},
		{"HasEnemy own piece", p.HasEnemy(at(t, "d4"), White), false},
		{"HasEnemy empty", p.HasEnemy(at(t, "a1"), White), false},
		{"HasEnemy off board", p.HasEnemy(Sq(-1, 3), Black), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v; want %v", tt.got, tt.want)
			}
		})
	}

	if _, ok := p.OccupantAt(off); ok {
		t.Error("OccupantAt(off board) reported an occupant")
	}
}

func TestPlace(t *testing.T) {
	p := NewPosition()
	p.Place(w(Rook), at(t, "a1"))
	p.Place(b(Queen), at(t, "a1"))
	if got, _ := p.OccupantAt(at(t, "a1")); got != b(Queen) {
		t.Errorf("OccupantAt(a1) = %v; want black queen after overwrite", got)
	}

	p.Place(w(King), Sq(9, 9))
	if _, ok := p.KingSquare(White); ok {
		t.Error("Place off board added a piece")
	}

	p.Remove(at(t, "a1"))
	if !p.IsEmpty(at(t, "a1")) {
		t.Error("Remove(a1) left the square occupied")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	p := StandardPosition()
	snap := p.Snapshot()

	p.Remove(at(t, "e2"))
	if got, ok := snap.OccupantAt(at(t, "e2")); !ok || got != w(Pawn) {
		t.Errorf("snapshot OccupantAt(e2) = %v, %v after live change; want white pawn", got, ok)
	}

	snap.clear(at(t, "d2"))
	if p.IsEmpty(at(t, "d2")) {
		t.Error("clearing the snapshot emptied the live position")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := StandardPosition()
	play(t, p, "e2", "e4")
	c := p.Clone()

	play(t, c, "e1", "e2")
	if !p.CastlingRights().WhiteKingside {
		t.Error("king move on clone cleared the original's castling right")
	}
	if _, ok := p.EnPassantTarget(); !ok {
		t.Error("move on clone cleared the original's en passant target")
	}
	if got, _ := p.OccupantAt(at(t, "e1")); got != w(King) {
		t.Errorf("original e1 = %v; want white king", got)
	}
}

func TestRevokeCastling(t *testing.T) {
	p := NewPosition()
	p.RevokeCastling(Black, Queenside)
	got := p.CastlingRights()
	want := CastlingRights{WhiteKingside: true, WhiteQueenside: true, BlackKingside: true}
	if got != want {
		t.Errorf("CastlingRights() = %+v; want %+v", got, want)
	}
	if got.Has(Black, Queenside) {
		t.Error("Has(Black, Queenside) = true after revoke")
	}
}

func TestOccupantJSON(t *testing.T) {
	data, err := json.Marshal(b(Knight))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"side":"black","kind":"knight"}` {
		t.Errorf("Marshal = %s", data)
	}

	var o Occupant
	if err := json.Unmarshal([]byte(`{"side":"white","kind":"queen"}`), &o); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if o != w(Queen) {
		t.Errorf("Unmarshal = %v; want white queen", o)
	}
	if err := json.Unmarshal([]byte(`{"side":"green","kind":"queen"}`), &o); err == nil {
		t.Error("Unmarshal accepted an unknown side")
	}
}

func TestSquareString(t *testing.T) {
	if got := Sq(4, 3).String(); got != "e4" {
		t.Errorf("String() = %q; want e4", got)
	}
	if got := Sq(-1, 2).String(); got != "(-1,2)" {
		t.Errorf("String() = %q; want (-1,2)", got)
	}
}
