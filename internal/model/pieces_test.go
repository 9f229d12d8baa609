package model_test

import (
	"sort"
	"testing"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/testutil"
)

func squareNames(squares []model.Square) []string {
	names := make([]string, len(squares))
	for i, sq := range squares {
		names[i] = sq.String()
	}
	sort.Strings(names)
	return names
}

func TestStartingPositionHasTwentyMoves(t *testing.T) {
	g := model.NewGameState()
	moves := g.PseudoLegalMoves()
	testutil.AssertEqual(t, len(moves), 20)

	byType := map[model.PieceType]int{}
	for _, m := range moves {
		byType[g.Board.PieceAt(m.From).Type]++
	}
	testutil.AssertEqual(t, byType, map[model.PieceType]int{model.Pawn: 16, model.Knight: 4})
}

func TestPseudoLegalMoves(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		square string
		want   []string
	}{
		{
			name:   "rook on open board",
			fen:    "4k3/8/8/8/3R4/8/8/4K3 w - - 0 1",
			square: "d4",
			want:   []string{"a4", "b4", "c4", "d1", "d2", "d3", "d5", "d6", "d7", "d8", "e4", "f4", "g4", "h4"},
		},
		{
			name:   "knight in corner",
			fen:    "4k3/8/8/8/8/8/8/N3K3 w - - 0 1",
			square: "a1",
			want:   []string{"b3", "c2"},
		},
		{
			name:   "bishop stops at enemy",
			fen:    "4k3/8/8/8/8/2p5/1B6/4K3 w - - 0 1",
			square: "b2",
			want:   []string{"a1", "a3", "c1", "c3"},
		},
		{
			name:   "queen hemmed in at start",
			fen:    model.InitialFEN,
			square: "d1",
			want:   []string{},
		},
		{
			name:   "blocked pawn",
			fen:    "4k3/8/8/8/8/4p3/4P3/4K3 w - - 0 1",
			square: "e2",
			want:   []string{},
		},
		{
			name:   "pawn double step and capture",
			fen:    "4k3/8/8/8/8/3p4/4P3/4K3 w - - 0 1",
			square: "e2",
			want:   []string{"d3", "e3", "e4"},
		},
		{
			name:   "pawn off starting rank",
			fen:    "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1",
			square: "e3",
			want:   []string{"e4"},
		},
		{
			name:   "black pawn moves down the board",
			fen:    "4k3/3p4/8/8/8/8/8/4K3 b - - 0 1",
			square: "d7",
			want:   []string{"d5", "d6"},
		},
		{
			name:   "en passant",
			fen:    "4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1",
			square: "d5",
			want:   []string{"d6", "e6"},
		},
		{
			name:   "pawn on last rank has no moves",
			fen:    "3Pk3/8/8/8/8/8/8/4K3 w - - 0 1",
			square: "d8",
			want:   []string{},
		},
		{
			name:   "king avoids attacked squares",
			fen:    "4k3/8/8/8/8/8/r7/4K3 w - - 0 1",
			square: "e1",
			want:   []string{"d1", "f1"},
		},
		{
			name:   "king castles both ways",
			fen:    "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
			square: "e1",
			want:   []string{"c1", "d1", "d2", "e2", "f1", "f2", "g1"},
		},
		{
			name:   "castling blocked by knights",
			fen:    "r3k2r/8/8/8/8/8/8/RN2K1NR w KQkq - 0 1",
			square: "e1",
			want:   []string{"d1", "d2", "e2", "f1", "f2"},
		},
		{
			name:   "king will not capture defended piece",
			fen:    "4k3/8/8/8/8/8/3pr3/4K3 w - - 0 1",
			square: "e1",
			want:   []string{"d1", "e2", "f1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustGame(t, tt.fen)
			piece := g.Board.PieceAt(testutil.MustSquare(t, tt.square))
			if piece == nil {
				t.Fatalf("no piece on %s", tt.square)
			}
			testutil.AssertEqual(t, squareNames(model.PseudoLegalMoves(piece, g.Board)), tt.want)
		})
	}
}

func TestAttackSquaresDoNotRecurse(t *testing.T) {
	// Two kings facing each other must not send generation into a loop.
	g := testutil.MustGame(t, "8/8/8/3k4/8/3K4/8/8 w - - 0 1")
	king := g.Board.PieceAt(testutil.MustSquare(t, "d3"))
	testutil.AssertEqual(t, len(model.AttackSquares(king, g.Board)), 8)
	testutil.AssertEqual(t, squareNames(model.PseudoLegalMoves(king, g.Board)), []string{"c2", "c3", "d2", "e2", "e3"})
}
