package engine

import (
	"golang.org/x/exp/slices"

	"chengine/board"
)

// orderMoves sorts moves in place by the value of the piece standing on the
// destination square, highest first. Quiet moves keep their generation order.
func orderMoves(b *board.Board, moves []board.Move) {
	slices.SortStableFunc(moves, func(x, y board.Move) bool {
		return b.PieceAt(x.To).Value > b.PieceAt(y.To).Value
	})
}

// captureMoves filters moves down to those landing on an occupied square and
// orders them like orderMoves.
func captureMoves(b *board.Board, moves []board.Move) []board.Move {
	captures := moves[:0]
	for _, m := range moves {
		if b.Occupied(m.To) {
			captures = append(captures, m)
		}
	}
	orderMoves(b, captures)
	return captures
}
