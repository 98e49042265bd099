package engine

var (
	knightDirs   = []Square{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs     = []Square{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirs     = []Square{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs   = []Square{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	queenDirs    = append(append([]Square{}, rookDirs...), bishopDirs...)
	slidingDirs  = map[Kind][]Square{Bishop: bishopDirs, Rook: rookDirs, Queen: queenDirs}
	pawnCaptures = []int{-1, 1}
)

// IsSquareAttacked reports whether any occupant of by could capture on sq
// using its raw attack pattern. Pawns attack only diagonally forward and
// castling is never an attack. It does not consult legality, so a pinned
// piece still attacks.
func IsSquareAttacked(b Board, by Side, sq Square) bool {
	if !sq.OnBoard() {
		return false
	}
	is := func(target Square, kinds ...Kind) bool {
		o, ok := b.OccupantAt(target)
		if !ok || o.Side != by {
			return false
		}
		for _, k := range kinds {
			if o.Kind == k {
				return true
			}
		}
		return false
	}

	for _, d := range knightDirs {
		if is(sq.Offset(d.File, d.Rank), Knight) {
			return true
		}
	}
	for _, d := range kingDirs {
		if is(sq.Offset(d.File, d.Rank), King) {
			return true
		}
	}
	// An attacking pawn sits one step behind sq from its own point of view.
	for _, df := range pawnCaptures {
		if is(sq.Offset(df, -by.forward()), Pawn) {
			return true
		}
	}
	if rayHits(b, sq, rookDirs, is, Rook, Queen) {
		return true
	}
	return rayHits(b, sq, bishopDirs, is, Bishop, Queen)
}

// rayHits walks each direction from sq to the first occupied square and
// checks whether it holds one of kinds.
func rayHits(b Board, sq Square, dirs []Square, is func(Square, ...Kind) bool, kinds ...Kind) bool {
	for _, d := range dirs {
		target := sq.Offset(d.File, d.Rank)
		for target.OnBoard() {
			if _, occupied := b.OccupantAt(target); occupied {
				if is(target, kinds...) {
					return true
				}
				break
			}
			target = target.Offset(d.File, d.Rank)
		}
	}
	return false
}
