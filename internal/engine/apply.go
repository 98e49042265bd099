package engine

// Applied describes what ApplyMove did to the position.
type Applied struct {
	Move     Move      `json:"move"`
	Kind     MoveKind  `json:"kind"`
	Piece    *Occupant `json:"piece"`
	Captured *Occupant `json:"captured,omitempty"`
	// CaptureSquare differs from Move.To only for en-passant captures.
	CaptureSquare *Square `json:"captureSquare,omitempty"`
	RookMove      *Move   `json:"rookMove,omitempty"`
}

// ResolveMoveKind derives the kind of m from the occupant on m.From and the
// current en-passant target.
func ResolveMoveKind(pos *Position, m Move) MoveKind {
	piece, ok := pos.OccupantAt(m.From)
	if !ok {
		return Normal
	}
	switch piece.Kind {
	case Pawn:
		if ep, ok := pos.EnPassantTarget(); ok && m.To == ep && m.To.File != m.From.File {
			return EnPassantCapture
		}
		if abs(m.To.Rank-m.From.Rank) == 2 {
			return DoublePawnPush
		}
	case King:
		if m.To.Rank == m.From.Rank && m.To.File-m.From.File == 2 {
			return CastleKingside
		}
		if m.To.Rank == m.From.Rank && m.From.File-m.To.File == 2 {
			return CastleQueenside
		}
	}
	return Normal
}

// castleRookSquares returns the corner rook's hop for a castling king move.
func castleRookSquares(m Move) (from, to Square) {
	rank := m.From.Rank
	if m.To.File > m.From.File {
		return Sq(7, rank), Sq(5, rank)
	}
	return Sq(0, rank), Sq(3, rank)
}

// ApplyMove commits m to pos as one update: en-passant removal, castling
// rook hop, the move itself with any capture, en-passant target refresh and
// castling-rights bookkeeping. m is assumed to come from LegalMoves for the
// same position; nothing is validated. An empty From leaves pos untouched.
func ApplyMove(pos *Position, m Move) Applied {
	applied := Applied{Move: m, Kind: ResolveMoveKind(pos, m)}
	piece := pos.Piece(m.From)
	if piece == nil || !m.To.OnBoard() {
		return applied
	}
	applied.Piece = piece

	switch applied.Kind {
	case EnPassantCapture:
		victim := m.To.Offset(0, -piece.Side.forward())
		if captured := pos.Piece(victim); captured != nil {
			applied.Captured = captured
			applied.CaptureSquare = &victim
			pos.squares[victim.File][victim.Rank] = nil
		}
	case CastleKingside, CastleQueenside:
		rookFrom, rookTo := castleRookSquares(m)
		if rook := pos.Piece(rookFrom); rook != nil {
			pos.squares[rookTo.File][rookTo.Rank] = rook
			pos.squares[rookFrom.File][rookFrom.Rank] = nil
			applied.RookMove = &Move{From: rookFrom, To: rookTo}
		}
	}

	if captured := pos.Piece(m.To); captured != nil && captured != piece {
		to := m.To
		applied.Captured = captured
		applied.CaptureSquare = &to
	}
	pos.squares[m.To.File][m.To.Rank] = piece
	if m.From != m.To {
		pos.squares[m.From.File][m.From.Rank] = nil
	}

	pos.enPassant = nil
	if applied.Kind == DoublePawnPush {
		behind := m.To.Offset(0, -piece.Side.forward())
		pos.enPassant = &behind
	}

	updateCastling(&pos.castling, piece, m)
	return applied
}

// updateCastling clears rights for a king move, for a rook leaving its
// corner, and for any move landing on a rook corner (the rook there is
// captured or already gone).
func updateCastling(c *CastlingRights, piece *Occupant, m Move) {
	if piece.Kind == King {
		c.clear(piece.Side, Kingside)
		c.clear(piece.Side, Queenside)
	}
	for _, side := range []Side{White, Black} {
		for _, wing := range []Wing{Kingside, Queenside} {
			corner := Sq(wing.rookFile(), side.homeRank())
			if m.From == corner && piece.Kind == Rook && piece.Side == side {
				c.clear(side, wing)
			}
			if m.To == corner {
				c.clear(side, wing)
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
