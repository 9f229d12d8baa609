package service

import "errors"

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrNotInGame    = errors.New("player not in game")
	ErrGameOver     = errors.New("game is over")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrInvalidColor = errors.New("invalid color")

	ErrConnectionExists = errors.New("player already connected to game")
)
