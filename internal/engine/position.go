// Package engine implements the chess rules: move generation, legality
// filtering, attack detection and move application over an explicit
// Position. It holds no package-level board state.
package engine

// Board is the read-only occupancy view that attack detection runs on. Both
// a live *Position and a detached Snapshot satisfy it.
type Board interface {
	OccupantAt(sq Square) (Occupant, bool)
}

// Position is the live game board plus the derived castling and en-passant
// state. The side to move is tracked by the caller.
type Position struct {
	squares   [8][8]*Occupant // [file][rank]
	castling  CastlingRights
	enPassant *Square
}

// NewPosition returns an empty board with every castling right intact.
func NewPosition() *Position {
	return &Position{castling: allCastlingRights()}
}

// StandardPosition returns the usual 32-piece starting setup.
func StandardPosition() *Position {
	p := NewPosition()
	backRank := []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, kind := range backRank {
		p.Place(Occupant{Side: White, Kind: kind}, Sq(file, 0))
		p.Place(Occupant{Side: White, Kind: Pawn}, Sq(file, 1))
		p.Place(Occupant{Side: Black, Kind: Pawn}, Sq(file, 6))
		p.Place(Occupant{Side: Black, Kind: kind}, Sq(file, 7))
	}
	return p
}

// Clone returns an independent copy. Occupants are shared, which is safe
// because the engine never modifies an Occupant in place.
func (p *Position) Clone() *Position {
	c := *p
	if p.enPassant != nil {
		ep := *p.enPassant
		c.enPassant = &ep
	}
	return &c
}

func (p *Position) OccupantAt(sq Square) (Occupant, bool) {
	if !sq.OnBoard() {
		return Occupant{}, false
	}
	o := p.squares[sq.File][sq.Rank]
	if o == nil {
		return Occupant{}, false
	}
	return *o, true
}

// Piece returns the occupant pointer stored on sq, preserving its identity
// across moves. Callers must not modify it.
func (p *Position) Piece(sq Square) *Occupant {
	if !sq.OnBoard() {
		return nil
	}
	return p.squares[sq.File][sq.Rank]
}

func (p *Position) IsEmpty(sq Square) bool {
	return sq.OnBoard() && p.squares[sq.File][sq.Rank] == nil
}

func (p *Position) HasFriendly(sq Square, side Side) bool {
	o, ok := p.OccupantAt(sq)
	return ok && o.Side == side
}

func (p *Position) HasEnemy(sq Square, side Side) bool {
	o, ok := p.OccupantAt(sq)
	return ok && o.Side != side
}

// Place puts occ on sq for setup, replacing whatever was there without any
// capture bookkeeping. Off-board squares are ignored.
func (p *Position) Place(occ Occupant, sq Square) {
	if !sq.OnBoard() {
		return
	}
	o := occ
	p.squares[sq.File][sq.Rank] = &o
}

// Remove clears sq for setup.
func (p *Position) Remove(sq Square) {
	if sq.OnBoard() {
		p.squares[sq.File][sq.Rank] = nil
	}
}

func (p *Position) CastlingRights() CastlingRights {
	return p.castling
}

// RevokeCastling clears one castling right. Rights can only be removed.
func (p *Position) RevokeCastling(side Side, wing Wing) {
	p.castling.clear(side, wing)
}

func (p *Position) EnPassantTarget() (Square, bool) {
	if p.enPassant == nil {
		return Square{}, false
	}
	return *p.enPassant, true
}

func (p *Position) KingSquare(side Side) (Square, bool) {
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			o := p.squares[file][rank]
			if o != nil && o.Side == side && o.Kind == King {
				return Sq(file, rank), true
			}
		}
	}
	return Square{}, false
}

// Occupied calls fn for every occupant of side in file-major order.
func (p *Position) Occupied(side Side, fn func(Square, Occupant)) {
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			o := p.squares[file][rank]
			if o != nil && o.Side == side {
				fn(Sq(file, rank), *o)
			}
		}
	}
}

// Snapshot copies the occupancy into a detached value with no occupant
// identity.
func (p *Position) Snapshot() Snapshot {
	var s Snapshot
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			if o := p.squares[file][rank]; o != nil {
				s[file][rank] = *o
			}
		}
	}
	return s
}

// Snapshot is a plain [file][rank] copy of board occupancy used for
// speculative evaluation. A zero Occupant (Kind NoKind) is an empty cell.
type Snapshot [8][8]Occupant

func (s *Snapshot) OccupantAt(sq Square) (Occupant, bool) {
	if !sq.OnBoard() {
		return Occupant{}, false
	}
	o := s[sq.File][sq.Rank]
	return o, o.Kind != NoKind
}

func (s *Snapshot) set(sq Square, o Occupant) {
	s[sq.File][sq.Rank] = o
}

func (s *Snapshot) clear(sq Square) {
	s[sq.File][sq.Rank] = Occupant{}
}

func (s *Snapshot) kingSquare(side Side) (Square, bool) {
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			o := s[file][rank]
			if o.Kind == King && o.Side == side {
				return Sq(file, rank), true
			}
		}
	}
	return Square{}, false
}
