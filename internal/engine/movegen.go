package engine

// PseudoLegalMoves returns the destinations the occupant on from may reach
// by its movement pattern, without checking whether its own king is left
// attacked. An empty or off-board from yields nil.
func PseudoLegalMoves(pos *Position, from Square) []Square {
	piece, ok := pos.OccupantAt(from)
	if !ok {
		return nil
	}
	switch piece.Kind {
	case Pawn:
		return pawnMoves(pos, from, piece.Side)
	case Knight:
		return stepMoves(pos, from, piece.Side, knightDirs)
	case Bishop, Rook, Queen:
		return rayMoves(pos, from, piece.Side, slidingDirs[piece.Kind])
	case King:
		return append(stepMoves(pos, from, piece.Side, kingDirs), castleMoves(pos, from, piece.Side)...)
	}
	return nil
}

// pawnMoves never produces a promotion: a pawn reaching the last rank stays
// a pawn.
func pawnMoves(pos *Position, from Square, side Side) []Square {
	var moves []Square
	dir := side.forward()

	one := from.Offset(0, dir)
	if pos.IsEmpty(one) {
		moves = append(moves, one)
		two := from.Offset(0, 2*dir)
		if from.Rank == side.pawnRank() && pos.IsEmpty(two) {
			moves = append(moves, two)
		}
	}
	for _, df := range pawnCaptures {
		target := from.Offset(df, dir)
		if pos.HasEnemy(target, side) {
			moves = append(moves, target)
		}
	}
	if ep, ok := pos.EnPassantTarget(); ok && ep.Rank == from.Rank+dir && (ep.File == from.File-1 || ep.File == from.File+1) {
		if pos.IsEmpty(ep) {
			moves = append(moves, ep)
		}
	}
	return moves
}

func stepMoves(pos *Position, from Square, side Side, dirs []Square) []Square {
	var moves []Square
	for _, d := range dirs {
		target := from.Offset(d.File, d.Rank)
		if target.OnBoard() && !pos.HasFriendly(target, side) {
			moves = append(moves, target)
		}
	}
	return moves
}

func rayMoves(pos *Position, from Square, side Side, dirs []Square) []Square {
	var moves []Square
	for _, d := range dirs {
		target := from.Offset(d.File, d.Rank)
		for target.OnBoard() {
			if pos.IsEmpty(target) {
				moves = append(moves, target)
			} else {
				if pos.HasEnemy(target, side) {
					moves = append(moves, target)
				}
				break
			}
			target = target.Offset(d.File, d.Rank)
		}
	}
	return moves
}

// castleMoves offers the two-file king step for each wing whose right is
// intact, whose corner rook is home, whose in-between squares are empty and
// whose king path is not attacked on the current board.
func castleMoves(pos *Position, from Square, side Side) []Square {
	rank := side.homeRank()
	if from != Sq(4, rank) {
		return nil
	}
	enemy := side.Opponent()
	if IsSquareAttacked(pos, enemy, from) {
		return nil
	}

	var moves []Square
	for _, wing := range []Wing{Kingside, Queenside} {
		if !pos.castling.Has(side, wing) {
			continue
		}
		rook, ok := pos.OccupantAt(Sq(wing.rookFile(), rank))
		if !ok || rook.Side != side || rook.Kind != Rook {
			continue
		}
		step := 1
		if wing == Queenside {
			step = -1
		}
		pathOpen := true
		for file := 4 + step; file != wing.rookFile(); file += step {
			if !pos.IsEmpty(Sq(file, rank)) {
				pathOpen = false
				break
			}
		}
		if !pathOpen {
			continue
		}
		transit, landing := Sq(4+step, rank), Sq(4+2*step, rank)
		if IsSquareAttacked(pos, enemy, transit) || IsSquareAttacked(pos, enemy, landing) {
			continue
		}
		moves = append(moves, landing)
	}
	return moves
}
