package model

import "fmt"

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s%s", m.From, m.To)
}

// ParseMove reads coordinate notation such as "e2e4".
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}

type statusFlags struct {
	check, checkmate, stalemate bool
}

// MoveRecord holds everything needed to take a move back.
type MoveRecord struct {
	Piece          *Piece
	From           Square
	To             Square
	Captured       *Piece
	PriorEnPassant *Square
	Castle         *Relocation

	prior statusFlags
}

func (r MoveRecord) Move() Move {
	return Move{From: r.From, To: r.To}
}

func (r MoveRecord) String() string {
	sep := "-"
	if r.Captured != nil {
		sep = "x"
	}
	return fmt.Sprintf("%s %s%s%s", r.Piece, r.From, sep, r.To)
}
