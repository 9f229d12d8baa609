package model

var (
	rookDirs   = []Square{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}
	bishopDirs = []Square{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	queenDirs  = append(append([]Square{}, rookDirs...), bishopDirs...)
	kingDirs   = queenDirs
	knightDirs = []Square{
		{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1},
		{Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2},
	}
)

// AttackSquares returns the squares piece attacks on b, ignoring whether
// moving there would expose its own king. Pawns attack their two forward
// diagonals whether or not anything stands there; kings attack their eight
// neighbours and never castle here.
func AttackSquares(piece *Piece, b *Board) []Square {
	switch piece.Type {
	case Pawn:
		squares := make([]Square, 0, 2)
		for _, dc := range []int{-1, 1} {
			if sq := piece.Position.offset(piece.Color.forward(), dc); IsOnBoard(sq) {
				squares = append(squares, sq)
			}
		}
		return squares
	case Knight:
		return stepSquares(piece, b, knightDirs, true)
	case Bishop:
		return raySquares(piece, b, bishopDirs, true)
	case Rook:
		return raySquares(piece, b, rookDirs, true)
	case Queen:
		return raySquares(piece, b, queenDirs, true)
	case King:
		return stepSquares(piece, b, kingDirs, true)
	default:
		return nil
	}
}

// PseudoLegalMoves returns the destinations piece may move to without
// verifying that its own king stays safe. The king is the exception: it never
// steps onto an attacked square.
func PseudoLegalMoves(piece *Piece, b *Board) []Square {
	switch piece.Type {
	case Pawn:
		return pawnMoves(piece, b)
	case Knight:
		return stepSquares(piece, b, knightDirs, false)
	case Bishop:
		return raySquares(piece, b, bishopDirs, false)
	case Rook:
		return raySquares(piece, b, rookDirs, false)
	case Queen:
		return raySquares(piece, b, queenDirs, false)
	case King:
		return kingMoves(piece, b)
	default:
		return nil
	}
}

func pawnMoves(piece *Piece, b *Board) []Square {
	moves := []Square{}
	dir := piece.Color.forward()
	pos := piece.Position

	one := pos.offset(dir, 0)
	if b.IsEmpty(one) {
		moves = append(moves, one)
		two := pos.offset(2*dir, 0)
		if pos.Row == piece.Color.pawnRow() && b.IsEmpty(two) {
			moves = append(moves, two)
		}
	}
	for _, dc := range []int{-1, 1} {
		if sq := pos.offset(dir, dc); b.IsEnemy(sq, piece.Color) {
			moves = append(moves, sq)
		}
	}
	// The target is the square an enemy pawn skipped, which sits one rank
	// beyond that colour's pawn row.
	if ep := b.EnPassantTarget; ep != nil && ep.Row == piece.Color.Opposite().pawnRow()+piece.Color.Opposite().forward() {
		if ep.Row == pos.Row+dir && abs(ep.Col-pos.Col) == 1 && b.IsEmpty(*ep) {
			moves = append(moves, *ep)
		}
	}
	return moves
}

func kingMoves(piece *Piece, b *Board) []Square {
	moves := []Square{}
	for _, sq := range stepSquares(piece, b, kingDirs, false) {
		if !b.IsSquareAttacked(sq, piece.Color) {
			moves = append(moves, sq)
		}
	}
	if piece.Position.Row != piece.Color.homeRow() || piece.Position.Col != 4 {
		return moves
	}
	if b.CanCastleKingside(piece.Color) {
		moves = append(moves, piece.Position.offset(0, 2))
	}
	if b.CanCastleQueenside(piece.Color) {
		moves = append(moves, piece.Position.offset(0, -2))
	}
	return moves
}

// stepSquares handles the single-step pieces. With attacks set, squares held
// by friendly pieces are included since they are still defended.
func stepSquares(piece *Piece, b *Board, dirs []Square, attacks bool) []Square {
	squares := make([]Square, 0, len(dirs))
	for _, dir := range dirs {
		sq := piece.Position.offset(dir.Row, dir.Col)
		if !IsOnBoard(sq) {
			continue
		}
		if attacks || b.IsEmpty(sq) || b.IsEnemy(sq, piece.Color) {
			squares = append(squares, sq)
		}
	}
	return squares
}

// raySquares casts a ray per direction, stopping at the edge or the first
// occupied square. That square is kept for enemies, and for friends too when
// collecting attacks.
func raySquares(piece *Piece, b *Board, dirs []Square, attacks bool) []Square {
	squares := []Square{}
	for _, dir := range dirs {
		sq := piece.Position.offset(dir.Row, dir.Col)
		for IsOnBoard(sq) {
			if b.IsEmpty(sq) {
				squares = append(squares, sq)
			} else {
				if attacks || b.IsEnemy(sq, piece.Color) {
					squares = append(squares, sq)
				}
				break
			}
			sq = sq.offset(dir.Row, dir.Col)
		}
	}
	return squares
}
