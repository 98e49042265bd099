package model

import "github.com/benbeisheim/chessrules-backend/internal/engine"

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color engine.Side `json:"color"`
}

// seats holds the two player slots indexed by engine.Side.
type seats [2]ClientPlayer

func (s *seats) sideOf(playerID string) (engine.Side, bool) {
	if playerID == "" {
		return engine.White, false
	}
	for _, side := range []engine.Side{engine.White, engine.Black} {
		if s[side].ID == playerID {
			return side, true
		}
	}
	return engine.White, false
}

func (s *seats) hasOpenSeat() bool {
	return s[engine.White].ID == "" || s[engine.Black].ID == ""
}
