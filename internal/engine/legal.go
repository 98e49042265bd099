package engine

// LegalMoves returns the pseudo-legal destinations of the occupant on from
// that do not leave its own king attacked. Each candidate is tried on a
// detached snapshot; pos is never modified.
func LegalMoves(pos *Position, from Square) []Square {
	piece, ok := pos.OccupantAt(from)
	if !ok {
		return nil
	}
	base := pos.Snapshot()
	var legal []Square
	for _, to := range PseudoLegalMoves(pos, from) {
		if !leavesKingAttacked(pos, base, piece, Move{From: from, To: to}) {
			legal = append(legal, to)
		}
	}
	return legal
}

// leavesKingAttacked plays m on a copy of base and tests the mover's king.
func leavesKingAttacked(pos *Position, base Snapshot, piece Occupant, m Move) bool {
	snap := base
	switch ResolveMoveKind(pos, m) {
	case EnPassantCapture:
		snap.clear(m.To.Offset(0, -piece.Side.forward()))
	case CastleKingside, CastleQueenside:
		rookFrom, rookTo := castleRookSquares(m)
		snap.set(rookTo, snap[rookFrom.File][rookFrom.Rank])
		snap.clear(rookFrom)
	}
	snap.set(m.To, piece)
	snap.clear(m.From)

	king, ok := snap.kingSquare(piece.Side)
	if !ok {
		return false
	}
	return IsSquareAttacked(&snap, piece.Side.Opponent(), king)
}

// AllLegalMoves lists every legal move for side in file-major order.
func AllLegalMoves(pos *Position, side Side) []Move {
	var moves []Move
	pos.Occupied(side, func(from Square, _ Occupant) {
		for _, to := range LegalMoves(pos, from) {
			moves = append(moves, Move{From: from, To: to})
		}
	})
	return moves
}

// IsInCheck reports whether side's king is attacked. A board without that
// king is never in check.
func IsInCheck(pos *Position, side Side) bool {
	king, ok := pos.KingSquare(side)
	if !ok {
		return false
	}
	return IsSquareAttacked(pos, side.Opponent(), king)
}

func HasAnyLegalMove(pos *Position, side Side) bool {
	for file := 0; file < 8; file++ {
		for rank := 0; rank < 8; rank++ {
			sq := Sq(file, rank)
			if pos.HasFriendly(sq, side) && len(LegalMoves(pos, sq)) > 0 {
				return true
			}
		}
	}
	return false
}

// StatusOf classifies the position for side, the side about to move.
func StatusOf(pos *Position, side Side) Status {
	inCheck := IsInCheck(pos, side)
	if HasAnyLegalMove(pos, side) {
		if inCheck {
			return Check
		}
		return Ongoing
	}
	if inCheck {
		return Checkmate
	}
	return Stalemate
}
