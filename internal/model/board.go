package model

import "github.com/benbeisheim/chessrules-backend/internal/engine"

// BoardState is the client view of a position. Board is indexed
// [rank][file] with rank 0 being White's back rank; nil cells are empty.
type BoardState struct {
	Board             [][]*engine.Occupant  `json:"board"`
	WhiteKingPosition *engine.Square        `json:"whiteKingPosition"`
	BlackKingPosition *engine.Square        `json:"blackKingPosition"`
	Castling          engine.CastlingRights `json:"castling"`
	EnPassantTarget   *engine.Square        `json:"enPassantTarget"`
}

func newBoardState(pos *engine.Position) BoardState {
	board := BoardState{
		Board:    make([][]*engine.Occupant, 8),
		Castling: pos.CastlingRights(),
	}
	for rank := 0; rank < 8; rank++ {
		board.Board[rank] = make([]*engine.Occupant, 8)
		for file := 0; file < 8; file++ {
			if o, ok := pos.OccupantAt(engine.Sq(file, rank)); ok {
				board.Board[rank][file] = &o
			}
		}
	}
	if sq, ok := pos.KingSquare(engine.White); ok {
		board.WhiteKingPosition = &sq
	}
	if sq, ok := pos.KingSquare(engine.Black); ok {
		board.BlackKingPosition = &sq
	}
	if sq, ok := pos.EnPassantTarget(); ok {
		board.EnPassantTarget = &sq
	}
	return board
}
