package model

// GameState is a single game: the board, whose turn it is and the history
// needed to take moves back. It is not safe for concurrent use.
type GameState struct {
	Board       *Board
	Turn        Color
	History     []MoveRecord
	IsCheck     bool
	IsCheckmate bool
	IsStalemate bool
}

func NewGameState() *GameState {
	return &GameState{
		Board:   NewBoard(),
		Turn:    White,
		History: make([]MoveRecord, 0),
	}
}

// AttemptMove plays from->to for the side to move. Rejected moves leave the
// state untouched and return a *MoveError wrapping one of the ErrNoPieceAtSource,
// ErrWrongTurn, ErrIllegalDestination or ErrLeavesKingInCheck sentinels.
func (g *GameState) AttemptMove(from, to Square) error {
	piece := g.Board.PieceAt(from)
	if piece == nil {
		return &MoveError{Err: ErrNoPieceAtSource, From: from, To: to}
	}
	if piece.Color != g.Turn {
		return &MoveError{Err: ErrWrongTurn, From: from, To: to}
	}
	if !containsSquare(PseudoLegalMoves(piece, g.Board), to) {
		return &MoveError{Err: ErrIllegalDestination, From: from, To: to}
	}

	restore := g.Board.Silence()
	g.push(piece, from, to)
	restore()

	if g.IsKingInCheck(g.Turn) {
		g.pop()
		return &MoveError{Err: ErrLeavesKingInCheck, From: from, To: to}
	}

	if captured := g.History[len(g.History)-1].Captured; captured != nil && g.Board.OnCapture != nil {
		g.Board.OnCapture(captured)
	}
	g.Turn = g.Turn.Opposite()
	g.updateStatus()
	return nil
}

// UndoMove takes back the most recent move. With an empty history it
// returns ErrEmptyHistory and changes nothing.
func (g *GameState) UndoMove() error {
	if len(g.History) == 0 {
		return ErrEmptyHistory
	}
	rec := g.pop()
	g.Turn = g.Turn.Opposite()
	g.IsCheck, g.IsCheckmate, g.IsStalemate = rec.prior.check, rec.prior.checkmate, rec.prior.stalemate
	return nil
}

// push records and executes a move without any validation.
func (g *GameState) push(piece *Piece, from, to Square) {
	rec := MoveRecord{
		Piece:          piece,
		From:           from,
		To:             to,
		Captured:       g.Board.PieceAt(to),
		PriorEnPassant: g.Board.EnPassantTarget,
		prior:          statusFlags{check: g.IsCheck, checkmate: g.IsCheckmate, stalemate: g.IsStalemate},
	}
	rec.Castle = g.Board.MovePiece(from, to)
	g.History = append(g.History, rec)
}

// pop restores the board to its state before the last push. Turn and status
// flags are the caller's concern.
func (g *GameState) pop() MoveRecord {
	rec := g.History[len(g.History)-1]
	g.History = g.History[:len(g.History)-1]

	b := g.Board
	if c := rec.Castle; c != nil {
		b.Grid[c.To.Row][c.To.Col] = nil
		b.Grid[c.From.Row][c.From.Col] = c.Piece
		c.Piece.Position = c.From
	}
	b.Grid[rec.From.Row][rec.From.Col] = rec.Piece
	b.Grid[rec.To.Row][rec.To.Col] = rec.Captured
	rec.Piece.Position = rec.From
	if rec.Captured != nil {
		rec.Captured.Position = rec.To
	}
	b.EnPassantTarget = rec.PriorEnPassant
	return rec
}

// Apply plays from->to without turn or self-check validation and without
// capture notification. The caller must run undo before touching the game
// again, normally with defer.
func (g *GameState) Apply(from, to Square) (undo func(), err error) {
	piece := g.Board.PieceAt(from)
	if piece == nil {
		return nil, &MoveError{Err: ErrNoPieceAtSource, From: from, To: to}
	}
	if !IsOnBoard(to) {
		return nil, &MoveError{Err: ErrIllegalDestination, From: from, To: to}
	}
	return g.simulate(piece, to), nil
}

// simulate plays a move silently for inspection; the returned func undoes it.
func (g *GameState) simulate(piece *Piece, to Square) (undo func()) {
	restore := g.Board.Silence()
	g.push(piece, piece.Position, to)
	return func() {
		g.pop()
		restore()
	}
}

func (g *GameState) updateStatus() {
	g.IsCheck = g.IsKingInCheck(g.Turn)
	stuck := g.NoValidMoves(g.Turn)
	g.IsCheckmate = g.IsCheck && stuck
	g.IsStalemate = !g.IsCheck && stuck
}

func (g *GameState) IsKingInCheck(color Color) bool {
	sq, ok := g.Board.KingSquare(color)
	if !ok {
		return false
	}
	return g.Board.IsSquareAttacked(sq, color)
}

// NoValidMoves reports whether every pseudo-legal move of color leaves its
// king attacked.
func (g *GameState) NoValidMoves(color Color) bool {
	for _, piece := range g.Board.Pieces(color) {
		for _, to := range PseudoLegalMoves(piece, g.Board) {
			if g.isSafe(piece, to) {
				return false
			}
		}
	}
	return true
}

func (g *GameState) isSafe(piece *Piece, to Square) bool {
	undo := g.simulate(piece, to)
	defer undo()
	return !g.IsKingInCheck(piece.Color)
}

// PseudoLegalMoves lists every (piece, destination) pair for the side to
// move, without the self-check filter.
func (g *GameState) PseudoLegalMoves() []Move {
	moves := []Move{}
	for _, piece := range g.Board.Pieces(g.Turn) {
		for _, to := range PseudoLegalMoves(piece, g.Board) {
			moves = append(moves, Move{From: piece.Position, To: to})
		}
	}
	return moves
}

// LegalMoves lists the moves AttemptMove would accept.
func (g *GameState) LegalMoves() []Move {
	moves := []Move{}
	for _, piece := range g.Board.Pieces(g.Turn) {
		for _, to := range PseudoLegalMoves(piece, g.Board) {
			if g.isSafe(piece, to) {
				moves = append(moves, Move{From: piece.Position, To: to})
			}
		}
	}
	return moves
}

// LegalMovesFrom lists legal destinations for the piece on sq.
func (g *GameState) LegalMovesFrom(sq Square) []Square {
	piece := g.Board.PieceAt(sq)
	if piece == nil || piece.Color != g.Turn {
		return []Square{}
	}
	squares := []Square{}
	for _, to := range PseudoLegalMoves(piece, g.Board) {
		if g.isSafe(piece, to) {
			squares = append(squares, to)
		}
	}
	return squares
}

// MoveLog returns the played moves oldest first.
func (g *GameState) MoveLog() []string {
	log := make([]string, len(g.History))
	for i, rec := range g.History {
		log[i] = rec.String()
	}
	return log
}

// LastMove returns the most recent move, if any.
func (g *GameState) LastMove() (Move, bool) {
	if len(g.History) == 0 {
		return Move{}, false
	}
	return g.History[len(g.History)-1].Move(), true
}

func (g *GameState) Status() string {
	switch {
	case g.IsCheckmate:
		return "checkmate"
	case g.IsStalemate:
		return "stalemate"
	case g.IsCheck:
		return "check"
	}
	return ""
}

func (g *GameState) IsOver() bool {
	return g.IsCheckmate || g.IsStalemate
}
