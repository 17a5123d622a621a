package board

import "fmt"

// Direction tables shared by move generation and the attack test. The first
// four queen directions are orthogonal, the last four diagonal.
var (
	rookDirs   = [4][2]int8{{1, 0}, {-1, 0}, {0, -1}, {0, 1}}
	bishopDirs = [4][2]int8{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	queenDirs  = [8][2]int8{{1, 0}, {-1, 0}, {0, -1}, {0, 1}, {1, 1}, {1, -1}, {-1, -1}, {-1, 1}}

	knightOffsets = [8][2]int8{{1, 2}, {-1, 2}, {1, -2}, {-1, -2}, {2, 1}, {-2, 1}, {2, -1}, {-2, -1}}
)

// PieceMoves appends the pseudo-legal moves of the piece on from to dst.
func (b *Board) PieceMoves(from Square, dst []Move) []Move {
	p := b.PieceAt(from)
	switch p.Kind {
	case Pawn:
		return b.pawnMoves(from, p, dst)
	case Knight:
		return b.stepMoves(from, p.Color, knightOffsets[:], dst)
	case Bishop:
		return b.slideMoves(from, p.Color, bishopDirs[:], dst)
	case Rook:
		return b.slideMoves(from, p.Color, rookDirs[:], dst)
	case Queen:
		return b.slideMoves(from, p.Color, queenDirs[:], dst)
	case King:
		dst = b.stepMoves(from, p.Color, queenDirs[:], dst)
		return b.castleMoves(from, p, dst)
	}
	return dst
}

// PseudoMoves appends the pseudo-legal moves of every piece of color c.
func (b *Board) PseudoMoves(c Color, dst []Move) []Move {
	for i, p := range b.squares {
		if !p.Empty() && p.Color == c {
			dst = b.PieceMoves(squareAt(i), dst)
		}
	}
	return dst
}

func (b *Board) pawnMoves(from Square, p Piece, dst []Move) []Move {
	dir := p.Color.forward()
	if one, ok := from.Offset(0, dir); ok && !b.Occupied(one) {
		dst = append(dst, Move{From: from, To: one})
		if !p.HasMoved && from.Y == p.Color.pawnRank() {
			if two, ok := one.Offset(0, dir); ok && !b.Occupied(two) {
				dst = append(dst, Move{From: from, To: two})
			}
		}
	}
	for _, dx := range [2]int8{-1, 1} {
		if to, ok := from.Offset(dx, dir); ok && b.IsColor(to, p.Color.Other()) {
			dst = append(dst, Move{From: from, To: to})
		}
	}
	return dst
}

func (b *Board) stepMoves(from Square, c Color, offsets [][2]int8, dst []Move) []Move {
	for _, off := range offsets {
		if to, ok := from.Offset(off[0], off[1]); ok && !b.IsColor(to, c) {
			dst = append(dst, Move{From: from, To: to})
		}
	}
	return dst
}

func (b *Board) slideMoves(from Square, c Color, dirs [][2]int8, dst []Move) []Move {
	for _, d := range dirs {
		for to, ok := from.Offset(d[0], d[1]); ok; to, ok = to.Offset(d[0], d[1]) {
			occupant := b.PieceAt(to)
			if occupant.Empty() {
				dst = append(dst, Move{From: from, To: to})
				continue
			}
			if occupant.Color != c {
				dst = append(dst, Move{From: from, To: to})
			}
			break
		}
	}
	return dst
}

func (b *Board) castleMoves(from Square, king Piece, dst []Move) []Move {
	rights := b.castle[king.Color]
	if !rights.Kingside && !rights.Queenside {
		return dst
	}
	if from != (Square{X: 4, Y: king.Color.homeRank()}) || b.IsSquareAttacked(from, king.Color) {
		return dst
	}
	if rights.Kingside && b.castlePathClear(from, king.Color, 1, 7) {
		dst = append(dst, Move{From: from, To: Square{X: from.X + 2, Y: from.Y}})
	}
	if rights.Queenside && b.castlePathClear(from, king.Color, -1, 0) {
		dst = append(dst, Move{From: from, To: Square{X: from.X - 2, Y: from.Y}})
	}
	return dst
}

// castlePathClear checks the two squares the king crosses (empty and not
// attacked), any further square up to the rook (empty), and the rook itself.
func (b *Board) castlePathClear(from Square, c Color, dir, rookFile int8) bool {
	rook := b.PieceAt(Square{X: rookFile, Y: from.Y})
	if rook.Kind != Rook || rook.Color != c {
		return false
	}
	for step := int8(1); step <= 2; step++ {
		sq := Square{X: from.X + dir*step, Y: from.Y}
		if b.Occupied(sq) || b.IsSquareAttacked(sq, c) {
			return false
		}
	}
	for x := from.X + 3*dir; x != rookFile; x += dir {
		if b.Occupied(Square{X: x, Y: from.Y}) {
			return false
		}
	}
	return true
}

// IsSquareAttacked reports whether a king of color c standing on sq would be
// attacked. It searches outward from sq for enemy attackers using the same
// tables as move generation.
func (b *Board) IsSquareAttacked(sq Square, c Color) bool {
	enemy := c.Other()
	for i, d := range queenDirs {
		slider := Rook
		if i >= 4 {
			slider = Bishop
		}
		step := 1
		for t, ok := sq.Offset(d[0], d[1]); ok; t, ok = t.Offset(d[0], d[1]) {
			p := b.PieceAt(t)
			if p.Empty() {
				step++
				continue
			}
			if p.Color == enemy && (p.Kind == Queen || p.Kind == slider || (p.Kind == King && step == 1)) {
				return true
			}
			break
		}
	}
	for _, off := range knightOffsets {
		if t, ok := sq.Offset(off[0], off[1]); ok {
			if p := b.PieceAt(t); p.Kind == Knight && p.Color == enemy {
				return true
			}
		}
	}
	for _, dx := range [2]int8{-1, 1} {
		if t, ok := sq.Offset(dx, c.forward()); ok {
			if p := b.PieceAt(t); p.Kind == Pawn && p.Color == enemy {
				return true
			}
		}
	}
	return false
}

// KingInCheck reports whether the king of c is attacked. A missing king means
// the position is corrupt and panics.
func (b *Board) KingInCheck(c Color) bool {
	sq := b.kings[c]
	if p := b.PieceAt(sq); p.Kind != King || p.Color != c {
		panic(fmt.Sprintf("board: no %v king on %v", c, sq))
	}
	return b.IsSquareAttacked(sq, c)
}

// LegalMoves returns the pseudo-legal moves of c that do not leave its own
// king in check. Each candidate is played and undone on a scratch copy.
func (b *Board) LegalMoves(c Color) []Move {
	moves := b.PseudoMoves(c, make([]Move, 0, 64))
	scratch := b.Clone()
	legal := moves[:0]
	for _, m := range moves {
		rec := scratch.ExecMove(m.From, m.To)
		safe := !scratch.KingInCheck(c)
		scratch.UnexecMove(m.From, m.To, rec)
		if safe {
			legal = append(legal, m)
		}
	}
	return legal
}

// HasLegalMoves is LegalMoves with an early exit.
func (b *Board) HasLegalMoves(c Color) bool {
	moves := b.PseudoMoves(c, make([]Move, 0, 64))
	scratch := b.Clone()
	for _, m := range moves {
		rec := scratch.ExecMove(m.From, m.To)
		safe := !scratch.KingInCheck(c)
		scratch.UnexecMove(m.From, m.To, rec)
		if safe {
			return true
		}
	}
	return false
}

// IsLegal reports whether m is among the legal moves of c.
func (b *Board) IsLegal(c Color, m Move) bool {
	for _, legal := range b.LegalMoves(c) {
		if legal == m {
			return true
		}
	}
	return false
}

// IsCheckmate reports whether c is in check with no legal reply.
func (b *Board) IsCheckmate(c Color) bool {
	return b.KingInCheck(c) && !b.HasLegalMoves(c)
}

// IsStalemate reports whether c is not in check but cannot move.
func (b *Board) IsStalemate(c Color) bool {
	return !b.KingInCheck(c) && !b.HasLegalMoves(c)
}

// Eval scores the position for c: +Checkmate when the opponent is mated,
// -Checkmate when c is, otherwise the material score seen from c.
func (b *Board) Eval(c Color) int32 {
	if b.IsCheckmate(c.Other()) {
		return Checkmate
	}
	if b.IsCheckmate(c) {
		return -Checkmate
	}
	return c.Sign() * b.material
}
