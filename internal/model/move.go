package model

import "github.com/benbeisheim/chessrules-backend/internal/engine"

// SimpleMove is a from/to pair as sent by clients.
type SimpleMove struct {
	From engine.Square `json:"from"`
	To   engine.Square `json:"to"`
}

type Ply struct {
	Piece          engine.Occupant  `json:"piece"`
	From           engine.Square    `json:"from"`
	To             engine.Square    `json:"to"`
	Kind           engine.MoveKind  `json:"kind"`
	CapturedPiece  *engine.Occupant `json:"capturedPiece"`
	CastleRookMove *engine.Move     `json:"castleRookMove"`
}

// Move pairs White's ply with Black's reply; BlackPly stays nil until Black
// has moved.
type Move struct {
	WhitePly Ply  `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

func newPly(applied engine.Applied) Ply {
	ply := Ply{
		From:           applied.Move.From,
		To:             applied.Move.To,
		Kind:           applied.Kind,
		CastleRookMove: applied.RookMove,
	}
	if applied.Piece != nil {
		ply.Piece = *applied.Piece
	}
	if applied.Captured != nil {
		captured := *applied.Captured
		ply.CapturedPiece = &captured
	}
	return ply
}
