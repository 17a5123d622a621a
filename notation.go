package main

import (
	"github.com/notnil/chess"

	"chengine/board"
)

// algebraic returns the SAN form of m in the position, or "" when it cannot
// be derived.
func algebraic(b *board.Board, side board.Color, m board.Move) string {
	fen, err := chess.FEN(b.FEN(side))
	if err != nil {
		return ""
	}
	pos := chess.NewGame(fen).Position()
	decoded, err := chess.UCINotation{}.Decode(pos, promotionSuffix(b, m))
	if err != nil {
		return ""
	}
	// Decode leaves the check tags unset; the generated moves carry them.
	for _, valid := range pos.ValidMoves() {
		if valid.S1() == decoded.S1() && valid.S2() == decoded.S2() && valid.Promo() == decoded.Promo() {
			return chess.AlgebraicNotation{}.Encode(pos, valid)
		}
	}
	return chess.AlgebraicNotation{}.Encode(pos, decoded)
}

// promotionSuffix spells out the implicit queen promotion in UCI form.
func promotionSuffix(b *board.Board, m board.Move) string {
	p := b.PieceAt(m.From)
	if p.Kind == board.Pawn && (m.To.Y == 0 || m.To.Y == 7) {
		return m.String() + "q"
	}
	return m.String()
}
