package board

// Perft counts the leaf nodes of the legal move tree of the given depth with c
// to move. The board is walked in place with ExecMove/UnexecMove.
func Perft(b *Board, c Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.LegalMoves(c)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		rec := b.ExecMove(m.From, m.To)
		nodes += Perft(b, c.Other(), depth-1)
		b.UnexecMove(m.From, m.To, rec)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(b *Board, c Color, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.LegalMoves(c) {
		rec := b.ExecMove(m.From, m.To)
		result[m] = Perft(b, c.Other(), depth-1)
		b.UnexecMove(m.From, m.To, rec)
	}
	return result
}
