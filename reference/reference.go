// Package reference runs perft on the dragontoothmg move generator restricted
// to the rule set of package board: en passant captures and under-promotions
// are skipped, so counts line up with board.Perft on any position.
package reference

import (
	"github.com/dylhunn/dragontoothmg"
)

// Perft counts legal leaf nodes of the given depth from fen.
func Perft(fen string, depth int) uint64 {
	b := dragontoothmg.ParseFen(fen)
	return perft(&b, depth)
}

// Divide returns the perft count below each root move, keyed by coordinate
// notation ("e2e4", promotions without a suffix).
func Divide(fen string, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth <= 0 {
		return result
	}
	b := dragontoothmg.ParseFen(fen)
	for _, m := range b.GenerateLegalMoves() {
		if skipped(&b, m) {
			continue
		}
		undo := b.Apply(m)
		result[coordinates(m)] = perft(&b, depth-1)
		undo()
	}
	return result
}

func perft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range b.GenerateLegalMoves() {
		if skipped(b, m) {
			continue
		}
		if depth == 1 {
			nodes++
			continue
		}
		undo := b.Apply(m)
		nodes += perft(b, depth-1)
		undo()
	}
	return nodes
}

// skipped filters out the moves package board does not model.
func skipped(b *dragontoothmg.Board, m dragontoothmg.Move) bool {
	if promo := m.Promote(); promo != 0 && promo != dragontoothmg.Queen {
		return true
	}
	from, to := m.From(), m.To()
	fromBB := uint64(1) << from
	toBB := uint64(1) << to
	pawns := b.White.Pawns | b.Black.Pawns
	occupied := b.White.All | b.Black.All
	// A pawn moving diagonally onto an empty square is en passant.
	return pawns&fromBB != 0 && from%8 != to%8 && occupied&toBB == 0
}

func coordinates(m dragontoothmg.Move) string {
	from, to := m.From(), m.To()
	return string([]byte{'a' + from%8, '1' + from/8, 'a' + to%8, '1' + to/8})
}
