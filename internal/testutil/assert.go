// Package testutil provides shared test helpers.
package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/benbeisheim/minimax-chess/internal/model"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
func AssertEqual(t *testing.T, got, want interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("%smismatch (-want +got):\n%s", prefix(msgAndArgs...), diff)
	}
}

func AssertNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if err != nil {
		t.Fatalf("%sunexpected error: %v", prefix(msgAndArgs...), err)
	}
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error, msgAndArgs ...interface{}) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("%serror = %v, want %v", prefix(msgAndArgs...), err, target)
	}
}

func AssertTrue(t *testing.T, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !condition {
		t.Errorf("%sexpected true but got false", prefix(msgAndArgs...))
	}
}

func AssertFalse(t *testing.T, condition bool, msgAndArgs ...interface{}) {
	t.Helper()
	if condition {
		t.Errorf("%sexpected false but got true", prefix(msgAndArgs...))
	}
}

// Position is a comparable copy of everything observable about a game.
type Position struct {
	FEN       string
	Grid      [][]*model.PieceView
	EnPassant string
	Turn      model.Color
	Check     bool
	Checkmate bool
	Stalemate bool
	Plies     int
}

func Capture(g *model.GameState) Position {
	ep := ""
	if g.Board.EnPassantTarget != nil {
		ep = g.Board.EnPassantTarget.String()
	}
	return Position{
		FEN:       g.FEN(),
		Grid:      g.Board.Snapshot(),
		EnPassant: ep,
		Turn:      g.Turn,
		Check:     g.IsCheck,
		Checkmate: g.IsCheckmate,
		Stalemate: g.IsStalemate,
		Plies:     len(g.History),
	}
}

// MustGame loads fen or fails the test.
func MustGame(t *testing.T, fen string) *model.GameState {
	t.Helper()
	g, err := model.NewGameStateFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameStateFromFEN(%q) error: %v", fen, err)
	}
	return g
}

// MustSquare parses algebraic notation or fails the test.
func MustSquare(t *testing.T, s string) model.Square {
	t.Helper()
	sq, err := model.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q) error: %v", s, err)
	}
	return sq
}

// Play applies moves in coordinate notation ("e2e4") or fails the test.
func Play(t *testing.T, g *model.GameState, moves ...string) {
	t.Helper()
	for _, m := range moves {
		move, err := model.ParseMove(m)
		if err != nil {
			t.Fatalf("ParseMove(%q) error: %v", m, err)
		}
		if err := g.AttemptMove(move.From, move.To); err != nil {
			t.Fatalf("AttemptMove(%s) error: %v\n%s", m, err, g.Board)
		}
	}
}

func prefix(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if s, ok := msgAndArgs[0].(string); ok {
		return fmt.Sprintf(s, msgAndArgs[1:]...) + ": "
	}
	return fmt.Sprintf("%v: ", msgAndArgs[0])
}
