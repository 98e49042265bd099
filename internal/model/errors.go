package model

import "errors"

var (
	ErrGameFull      = errors.New("game is full")
	ErrGameOver      = errors.New("game is over")
	ErrNotInGame     = errors.New("player not in game")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNoPiece       = errors.New("no piece at from square")
	ErrNotYourPiece  = errors.New("piece belongs to the opponent")
	ErrOutOfBounds   = errors.New("invalid move, out of bounds")
	ErrIllegalMove   = errors.New("invalid move, not legal")
	ErrAlreadyQueued = errors.New("player already in queue")
	ErrNotAuthorized = errors.New("not authorized to join this game")
)
