package model_test

import (
	"testing"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/testutil"
)

func TestNewBoardStartingPosition(t *testing.T) {
	g := model.NewGameState()
	testutil.AssertEqual(t, g.FEN(), model.InitialFEN)
	testutil.AssertEqual(t, len(g.Board.Pieces(model.White)), 16)
	testutil.AssertEqual(t, len(g.Board.Pieces(model.Black)), 16)
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in      string
		want    model.Square
		wantErr bool
	}{
		{"a8", model.Square{Row: 0, Col: 0}, false},
		{"h1", model.Square{Row: 7, Col: 7}, false},
		{"e4", model.Square{Row: 4, Col: 4}, false},
		{"i1", model.Square{}, true},
		{"a9", model.Square{}, true},
		{"e", model.Square{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := model.ParseSquare(tt.in)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, model.ErrInvalidSquare)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
			testutil.AssertEqual(t, got.String(), tt.in)
		})
	}
}

func TestMovePieceTracksEnPassantTarget(t *testing.T) {
	b := model.NewBoard()
	e2 := testutil.MustSquare(t, "e2")
	e4 := testutil.MustSquare(t, "e4")

	b.MovePiece(e2, e4)
	if b.EnPassantTarget == nil {
		t.Fatal("EnPassantTarget = nil after double step, want e3")
	}
	testutil.AssertEqual(t, b.EnPassantTarget.String(), "e3")
	testutil.AssertEqual(t, b.PieceAt(e4).Position, e4)

	b.MovePiece(testutil.MustSquare(t, "g8"), testutil.MustSquare(t, "f6"))
	if b.EnPassantTarget != nil {
		t.Errorf("EnPassantTarget = %v after knight move, want nil", b.EnPassantTarget)
	}

	b.MovePiece(testutil.MustSquare(t, "d7"), testutil.MustSquare(t, "d5"))
	testutil.AssertEqual(t, b.EnPassantTarget.String(), "d6")
}

func TestMovePieceReportsCapture(t *testing.T) {
	b := model.NewBoard()
	var captured []*model.Piece
	b.OnCapture = func(p *model.Piece) { captured = append(captured, p) }

	b.MovePiece(testutil.MustSquare(t, "d1"), testutil.MustSquare(t, "d7"))
	if len(captured) != 1 {
		t.Fatalf("OnCapture called %d times, want 1", len(captured))
	}
	testutil.AssertEqual(t, captured[0].Type, model.Pawn)
	testutil.AssertEqual(t, captured[0].Color, model.Black)

	b.MovePiece(testutil.MustSquare(t, "g1"), testutil.MustSquare(t, "f3"))
	testutil.AssertEqual(t, len(captured), 1, "quiet move must not report a capture")
}

func TestMovePieceCastlingRelocatesRook(t *testing.T) {
	tests := []struct {
		name           string
		from, to       string
		rookFrom, rook string
	}{
		{"white kingside", "e1", "g1", "h1", "f1"},
		{"white queenside", "e1", "c1", "a1", "d1"},
		{"black kingside", "e8", "g8", "h8", "f8"},
		{"black queenside", "e8", "c8", "a8", "d8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustGame(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
			reloc := g.Board.MovePiece(testutil.MustSquare(t, tt.from), testutil.MustSquare(t, tt.to))
			if reloc == nil {
				t.Fatal("MovePiece returned no rook relocation")
			}
			testutil.AssertEqual(t, reloc.From.String(), tt.rookFrom)
			testutil.AssertEqual(t, reloc.To.String(), tt.rook)
			rook := g.Board.PieceAt(testutil.MustSquare(t, tt.rook))
			if rook == nil || rook.Type != model.Rook {
				t.Fatalf("no rook on %s after castling:\n%s", tt.rook, g.Board)
			}
			testutil.AssertEqual(t, rook.Position.String(), tt.rook)
			testutil.AssertTrue(t, g.Board.IsEmpty(testutil.MustSquare(t, tt.rookFrom)))
		})
	}
}

func TestCanCastle(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		color     model.Color
		kingside  bool
		queenside bool
	}{
		{"start position", model.InitialFEN, model.White, false, false},
		{"clear back rank", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", model.White, true, true},
		{"clear back rank black", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", model.Black, true, true},
		{"knight on b1", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", model.White, true, false},
		{"rook missing", "r3k2r/8/8/8/8/8/8/4K2R w K - 0 1", model.White, true, false},
		{"king moved off home square", "r3k2r/8/8/8/8/8/8/R2K3R w - - 0 1", model.White, false, false},
		{"enemy rook in corner", "r3k2r/8/8/8/8/8/8/r3K2R w - - 0 1", model.White, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustGame(t, tt.fen)
			testutil.AssertEqual(t, g.Board.CanCastleKingside(tt.color), tt.kingside, "kingside")
			testutil.AssertEqual(t, g.Board.CanCastleQueenside(tt.color), tt.queenside, "queenside")
		})
	}
}

func TestIsSquareAttacked(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		square string
		color  model.Color
		want   bool
	}{
		{"pawn attacks diagonal", "4k3/8/8/3p4/8/8/8/4K3 w - - 0 1", "e4", model.White, true},
		{"pawn does not attack forward", "4k3/8/8/3p4/8/8/8/4K3 w - - 0 1", "d4", model.White, false},
		{"rook along file", "3rk3/8/8/8/8/8/8/4K3 w - - 0 1", "d1", model.White, true},
		{"rook blocked", "3rk3/8/8/3P4/8/8/8/4K3 w - - 0 1", "d1", model.White, false},
		{"rook defends own piece", "3rk3/8/8/3p4/8/8/8/4K3 w - - 0 1", "d5", model.White, true},
		{"knight jump", "4k3/8/8/8/8/5n2/8/4K3 w - - 0 1", "e1", model.White, true},
		{"king neighbourhood", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e7", model.White, true},
		{"own pieces ignored", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a8", model.White, false},
		{"bishop diagonal", "4k3/8/8/8/8/8/8/b3K3 w - - 0 1", "h8", model.White, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustGame(t, tt.fen)
			got := g.Board.IsSquareAttacked(testutil.MustSquare(t, tt.square), tt.color)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestSnapshot(t *testing.T) {
	b := model.NewBoard()
	grid := b.Snapshot()
	testutil.AssertEqual(t, grid[7][4], &model.PieceView{Type: model.King, Color: model.White, Square: "e1"})
	testutil.AssertEqual(t, grid[0][3], &model.PieceView{Type: model.Queen, Color: model.Black, Square: "d8"})
	if grid[4][4] != nil {
		t.Errorf("grid[4][4] = %v, want empty", grid[4][4])
	}
}
