package search

import "github.com/benbeisheim/minimax-chess/internal/model"

var PieceValues = map[model.PieceType]int{
	model.Pawn:   1,
	model.Knight: 3,
	model.Bishop: 3,
	model.Rook:   5,
	model.Queen:  9,
	model.King:   0,
}

// Evaluate sums material, positive for perspective's pieces and negative for
// the opponent's.
func Evaluate(b *model.Board, perspective model.Color) int {
	score := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.Grid[row][col]
			if p == nil {
				continue
			}
			if p.Color == perspective {
				score += PieceValues[p.Type]
			} else {
				score -= PieceValues[p.Type]
			}
		}
	}
	return score
}
