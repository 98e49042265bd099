package service

import (
	"errors"

	"github.com/benbeisheim/chessrules-backend/internal/model"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrGameExists    = errors.New("game already exists")
	ErrNotMatched    = errors.New("player is not in matchmaking")
	ErrAlreadyQueued = model.ErrAlreadyQueued
)
