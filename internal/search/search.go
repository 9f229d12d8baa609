// Package search picks moves for the engine side with a depth-limited
// minimax over material, pruned with alpha-beta.
package search

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/benbeisheim/minimax-chess/internal/model"
)

const (
	Checkmate    = 1000
	DefaultDepth = 3
)

var ErrUnknownPerspective = errors.New("unknown perspective")

// Perspective selects whose material a leaf is scored for.
type Perspective int

const (
	// SideToMove scores each leaf for whoever is to move at that leaf.
	SideToMove Perspective = iota
	// RootColor scores every leaf for the side that started the search.
	RootColor
)

func (p Perspective) String() string {
	if p == RootColor {
		return "root"
	}
	return "side"
}

// ParsePerspective accepts the names printed by Perspective.String.
func ParsePerspective(s string) (Perspective, error) {
	switch s {
	case "side":
		return SideToMove, nil
	case "root":
		return RootColor, nil
	}
	return SideToMove, fmt.Errorf("%w %q", ErrUnknownPerspective, s)
}

type Stats struct {
	Nodes   int
	Cutoffs int
}

type Searcher struct {
	Depth       int
	Perspective Perspective
	rand        *rand.Rand

	root  model.Color
	stats Stats
}

// NewSearcher returns a searcher whose root move order is shuffled by a
// source seeded with seed. A zero seed uses the current time. Leaves are
// scored for the side to move unless Perspective is changed.
func NewSearcher(depth int, seed uint64) *Searcher {
	if depth < 1 {
		depth = DefaultDepth
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Searcher{
		Depth: depth,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

// EnumerateMoves lists the pseudo-legal moves of the side to move. Moves that
// would expose the mover's king are dropped later, when applying them fails.
func EnumerateMoves(gs *model.GameState) []model.Move {
	return gs.PseudoLegalMoves()
}

// FindBestMove returns the highest scoring move for the side to move, or
// false if it has none. The game state is left as it was found.
func (s *Searcher) FindBestMove(gs *model.GameState) (model.Move, bool) {
	move, _, ok := s.FindBestMoveStats(gs)
	return move, ok
}

func (s *Searcher) FindBestMoveStats(gs *model.GameState) (model.Move, Stats, bool) {
	s.root = gs.Turn
	s.stats = Stats{}
	defer gs.Board.Silence()()

	moves := EnumerateMoves(gs)
	s.rand.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	var best model.Move
	found := false
	maxScore := -Checkmate
	for _, move := range moves {
		var score int
		applied := withMove(gs, move, func() {
			score = s.Minimax(gs, s.Depth-1, -Checkmate, Checkmate, false)
		})
		if !applied {
			continue
		}
		if !found || score > maxScore {
			maxScore = score
			best = move
			found = true
		}
	}
	return best, s.stats, found
}

// Score searches depth plies from the side to move's point of view.
func (s *Searcher) Score(gs *model.GameState, depth int) int {
	s.root = gs.Turn
	s.stats = Stats{}
	defer gs.Board.Silence()()
	return s.Minimax(gs, depth, -Checkmate, Checkmate, true)
}

// ScoreFullWidth is Score without pruning.
func (s *Searcher) ScoreFullWidth(gs *model.GameState, depth int) int {
	s.root = gs.Turn
	s.stats = Stats{}
	defer gs.Board.Silence()()
	return s.FullWidth(gs, depth, true)
}

func (s *Searcher) Stats() Stats {
	return s.stats
}

// Minimax scores gs searching depth plies with alpha-beta pruning.
func (s *Searcher) Minimax(gs *model.GameState, depth, alpha, beta int, maximizing bool) int {
	s.stats.Nodes++
	if depth == 0 || gs.IsCheckmate || gs.IsStalemate {
		return s.evaluate(gs)
	}

	if maximizing {
		maxScore := -Checkmate
		for _, move := range EnumerateMoves(gs) {
			var score int
			if !withMove(gs, move, func() { score = s.Minimax(gs, depth-1, alpha, beta, false) }) {
				continue
			}
			maxScore = max(maxScore, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				s.stats.Cutoffs++
				break
			}
		}
		return maxScore
	}

	minScore := Checkmate
	for _, move := range EnumerateMoves(gs) {
		var score int
		if !withMove(gs, move, func() { score = s.Minimax(gs, depth-1, alpha, beta, true) }) {
			continue
		}
		minScore = min(minScore, score)
		beta = min(beta, score)
		if beta <= alpha {
			s.stats.Cutoffs++
			break
		}
	}
	return minScore
}

// FullWidth is Minimax without pruning.
func (s *Searcher) FullWidth(gs *model.GameState, depth int, maximizing bool) int {
	s.stats.Nodes++
	if depth == 0 || gs.IsCheckmate || gs.IsStalemate {
		return s.evaluate(gs)
	}
	best := Checkmate
	if maximizing {
		best = -Checkmate
	}
	for _, move := range EnumerateMoves(gs) {
		var score int
		if !withMove(gs, move, func() { score = s.FullWidth(gs, depth-1, !maximizing) }) {
			continue
		}
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

func (s *Searcher) evaluate(gs *model.GameState) int {
	if s.Perspective == SideToMove {
		return Evaluate(gs.Board, gs.Turn)
	}
	return Evaluate(gs.Board, s.root)
}

// withMove plays move, runs fn and takes the move back, even if fn panics.
// It reports false without calling fn when the move is rejected.
func withMove(gs *model.GameState, move model.Move, fn func()) bool {
	if err := gs.AttemptMove(move.From, move.To); err != nil {
		return false
	}
	defer func() {
		if err := gs.UndoMove(); err != nil {
			panic(fmt.Sprintf("search: undo after %s: %v", move, err))
		}
	}()
	fn()
	return true
}
