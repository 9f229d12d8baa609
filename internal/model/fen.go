package model

import (
	"fmt"
	"strings"
)

// InitialFEN is the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var fenPieces = map[byte]PieceType{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
}

// NewGameStateFromFEN builds a game from a FEN string. Piece placement, side
// to move and the en-passant square are honoured; castling availability is
// derived from piece placement, so that field and the move counters are only
// checked for shape. Status flags are computed for the side to move.
func NewGameStateFromFEN(fen string) (*GameState, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: expected at least 2 fields, got %d", ErrInvalidFEN, len(fields))
	}

	board, err := parsePlacement(fields[0])
	if err != nil {
		return nil, err
	}

	g := &GameState{Board: board, History: make([]MoveRecord, 0)}
	switch fields[1] {
	case "w":
		g.Turn = White
	case "b":
		g.Turn = Black
	default:
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}

	if len(fields) >= 4 && fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, fields[3])
		}
		board.EnPassantTarget = &sq
	}

	for _, color := range []Color{White, Black} {
		if _, ok := board.KingSquare(color); !ok {
			return nil, fmt.Errorf("%w: no %s king", ErrInvalidFEN, color)
		}
	}
	g.updateStatus()
	return g, nil
}

func parsePlacement(placement string) (*Board, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	b := NewEmptyBoard()
	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			color := White
			lower := c
			if c >= 'a' && c <= 'z' {
				color = Black
			} else {
				lower = c + ('a' - 'A')
			}
			kind, ok := fenPieces[lower]
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, c)
			}
			if col > 7 {
				return nil, fmt.Errorf("%w: rank %d too long", ErrInvalidFEN, 8-row)
			}
			b.Place(&Piece{Type: kind, Color: color, Position: Square{Row: row, Col: col}})
			col++
		}
		if col != 8 {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, 8-row, col)
		}
	}
	return b, nil
}

// FEN renders the position. Castling letters reflect which kings and rooks
// still stand on their home squares; the halfmove clock is always 0 and the
// fullmove number counts from the start of this game's history.
func (g *GameState) FEN() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := g.Board.Grid[row][col]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}

	side := "w"
	if g.Turn == Black {
		side = "b"
	}

	castling := ""
	for _, c := range []struct {
		color   Color
		rookCol int
		letter  string
	}{{White, 7, "K"}, {White, 0, "Q"}, {Black, 7, "k"}, {Black, 0, "q"}} {
		if g.Board.homePieces(c.color, c.rookCol) {
			castling += c.letter
		}
	}
	if castling == "" {
		castling = "-"
	}

	ep := "-"
	if g.Board.EnPassantTarget != nil {
		ep = g.Board.EnPassantTarget.String()
	}
	return fmt.Sprintf("%s %s %s %s 0 %d", sb.String(), side, castling, ep, len(g.History)/2+1)
}

func (b *Board) homePieces(color Color, rookCol int) bool {
	row := color.homeRow()
	king, rook := b.Grid[row][4], b.Grid[row][rookCol]
	return king != nil && king.Type == King && king.Color == color &&
		rook != nil && rook.Type == Rook && rook.Color == color
}
