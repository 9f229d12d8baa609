package model

import (
	"errors"
	"fmt"
)

var (
	ErrNoPieceAtSource    = errors.New("no piece at source square")
	ErrWrongTurn          = errors.New("not your turn")
	ErrIllegalDestination = errors.New("move not allowed by piece rules")
	ErrLeavesKingInCheck  = errors.New("cannot leave your king in check")
	ErrEmptyHistory       = errors.New("no moves to undo")
	ErrInvalidSquare      = errors.New("invalid square")
	ErrInvalidFEN         = errors.New("invalid FEN string")
)

// MoveError is returned by AttemptMove for every rejected move.
type MoveError struct {
	Err  error
	From Square
	To   Square
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("invalid move %s%s: %v", e.From, e.To, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
