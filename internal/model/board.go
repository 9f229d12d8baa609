package model

import (
	"fmt"
	"strings"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the row delta a pawn of this colour advances by.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

func (c Color) homeRow() int {
	if c == White {
		return 7
	}
	return 0
}

func (c Color) pawnRow() int {
	if c == White {
		return 6
	}
	return 1
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) letter() byte {
	switch p {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return '?'
}

// Square is a board coordinate. Row 0 is rank 8, Col 0 is the a-file.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) String() string {
	if !IsOnBoard(s) {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

func (s Square) offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

// ParseSquare converts algebraic notation such as "e4" to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	sq := Square{Row: 8 - int(s[1]-'0'), Col: int(s[0] - 'a')}
	if !IsOnBoard(sq) {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return sq, nil
}

type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Square    `json:"position"`
}

func (p *Piece) String() string {
	l := p.Type.letter()
	if p.Color == Black {
		l += 'a' - 'A'
	}
	return string(l)
}

type Board struct {
	Grid            [8][8]*Piece
	EnPassantTarget *Square

	// OnCapture, when set, is called with every piece overwritten by MovePiece.
	OnCapture func(captured *Piece)
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func NewEmptyBoard() *Board {
	return &Board{}
}

// NewBoard returns a board set up in the standard starting position.
func NewBoard() *Board {
	b := NewEmptyBoard()
	for col, kind := range backRank {
		b.Place(&Piece{Type: kind, Color: Black, Position: Square{Row: 0, Col: col}})
		b.Place(&Piece{Type: Pawn, Color: Black, Position: Square{Row: 1, Col: col}})
		b.Place(&Piece{Type: Pawn, Color: White, Position: Square{Row: 6, Col: col}})
		b.Place(&Piece{Type: kind, Color: White, Position: Square{Row: 7, Col: col}})
	}
	return b
}

// Place puts p on the square named by its Position, replacing any occupant.
func (b *Board) Place(p *Piece) {
	b.Grid[p.Position.Row][p.Position.Col] = p
}

func IsOnBoard(sq Square) bool {
	return sq.Row >= 0 && sq.Row < 8 && sq.Col >= 0 && sq.Col < 8
}

func (b *Board) IsOnBoard(sq Square) bool {
	return IsOnBoard(sq)
}

// PieceAt returns the piece on sq, or nil for empty and off-board squares.
func (b *Board) PieceAt(sq Square) *Piece {
	if !IsOnBoard(sq) {
		return nil
	}
	return b.Grid[sq.Row][sq.Col]
}

func (b *Board) IsEmpty(sq Square) bool {
	return IsOnBoard(sq) && b.Grid[sq.Row][sq.Col] == nil
}

func (b *Board) IsEnemy(sq Square, color Color) bool {
	p := b.PieceAt(sq)
	return p != nil && p.Color != color
}

// Relocation records a secondary piece moved as part of a castling move.
type Relocation struct {
	Piece *Piece
	From  Square
	To    Square
}

// MovePiece unconditionally moves the piece on from to to. It performs no
// legality checking. A king moving two files drags the matching corner rook
// alongside; the returned Relocation describes that rook move.
func (b *Board) MovePiece(from, to Square) *Relocation {
	piece := b.Grid[from.Row][from.Col]
	if piece == nil {
		return nil
	}
	target := b.Grid[to.Row][to.Col]

	b.Grid[from.Row][from.Col] = nil
	b.Grid[to.Row][to.Col] = piece
	piece.Position = to

	if piece.Type == Pawn && abs(to.Row-from.Row) == 2 {
		b.EnPassantTarget = &Square{Row: to.Row - piece.Color.forward(), Col: to.Col}
	} else {
		b.EnPassantTarget = nil
	}

	var rook *Relocation
	if piece.Type == King && from.Row == to.Row && abs(to.Col-from.Col) == 2 {
		rook = b.castleRook(from, to)
	}

	if target != nil && b.OnCapture != nil {
		b.OnCapture(target)
	}
	return rook
}

func (b *Board) castleRook(from, to Square) *Relocation {
	rookFrom := Square{Row: from.Row, Col: 7}
	rookTo := Square{Row: from.Row, Col: to.Col - 1}
	if to.Col < from.Col {
		rookFrom.Col = 0
		rookTo.Col = to.Col + 1
	}
	rook := b.PieceAt(rookFrom)
	if rook == nil || rook.Type != Rook {
		return nil
	}
	b.Grid[rookFrom.Row][rookFrom.Col] = nil
	b.Grid[rookTo.Row][rookTo.Col] = rook
	rook.Position = rookTo
	return &Relocation{Piece: rook, From: rookFrom, To: rookTo}
}

func (b *Board) CanCastleKingside(color Color) bool {
	return b.canCastle(color, 7, []int{5, 6})
}

func (b *Board) CanCastleQueenside(color Color) bool {
	return b.canCastle(color, 0, []int{1, 2, 3})
}

// canCastle is a position-only test: king and rook on their home squares
// with nothing between them.
func (b *Board) canCastle(color Color, rookCol int, between []int) bool {
	if !b.homePieces(color, rookCol) {
		return false
	}
	row := color.homeRow()
	for _, col := range between {
		if b.Grid[row][col] != nil {
			return false
		}
	}
	return true
}

// IsSquareAttacked reports whether any piece not of color attacks sq.
func (b *Board) IsSquareAttacked(sq Square, color Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.Grid[row][col]
			if p == nil || p.Color == color {
				continue
			}
			if containsSquare(AttackSquares(p, b), sq) {
				return true
			}
		}
	}
	return false
}

// KingSquare returns the square of color's king.
func (b *Board) KingSquare(color Color) (Square, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.Grid[row][col]
			if p != nil && p.Type == King && p.Color == color {
				return p.Position, true
			}
		}
	}
	return Square{}, false
}

// Pieces returns color's pieces in row-major order.
func (b *Board) Pieces(color Color) []*Piece {
	pieces := make([]*Piece, 0, 16)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b.Grid[row][col]; p != nil && p.Color == color {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// PieceView is the read-only rendering of an occupied square.
type PieceView struct {
	Type   PieceType `json:"type"`
	Color  Color     `json:"color"`
	Square string    `json:"square"`
}

// Snapshot copies the grid into views safe to hand to a renderer.
func (b *Board) Snapshot() [][]*PieceView {
	grid := make([][]*PieceView, 8)
	for row := 0; row < 8; row++ {
		grid[row] = make([]*PieceView, 8)
		for col := 0; col < 8; col++ {
			if p := b.Grid[row][col]; p != nil {
				grid[row][col] = &PieceView{Type: p.Type, Color: p.Color, Square: p.Position.String()}
			}
		}
	}
	return grid
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d ", 8-row)
		for col := 0; col < 8; col++ {
			if p := b.Grid[row][col]; p != nil {
				sb.WriteString(p.String())
			} else {
				sb.WriteByte('.')
			}
			if col < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Silence detaches OnCapture until the returned func is called.
func (b *Board) Silence() (restore func()) {
	hook := b.OnCapture
	b.OnCapture = nil
	return func() { b.OnCapture = hook }
}
