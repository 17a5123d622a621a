package board

import "fmt"

func abs8(x int8) int8 {
	if x < 0 {
		return -x
	}
	return x
}

// ExecMove plays from->to without any legality check and returns the record
// needed to undo it. Callers must only pass moves taken from LegalMoves (or
// PseudoMoves); an empty origin square is a programming error and panics.
func (b *Board) ExecMove(from, to Square) MoveRecord {
	mover := b.squares[from.index()]
	if mover.Empty() {
		panic(fmt.Sprintf("board: ExecMove from empty square %v", from))
	}
	rec := MoveRecord{moved: mover, rights: b.castle}
	var points int32

	// Captures are scored from the mover's side; the sign is applied at the end.
	if target := b.squares[to.index()]; !target.Empty() {
		b.pieceCount--
		rec.captured = target
		points += target.Value
		b.revokeRookRight(target.Color, to)
	}

	piece := mover
	piece.HasMoved = true
	b.squares[from.index()] = Piece{}

	switch piece.Kind {
	case Pawn:
		if to.Y == piece.Color.Other().homeRank() {
			queen := NewPiece(Queen, piece.Color)
			queen.HasMoved = true
			points += queen.Value - piece.Value
			piece = queen
			rec.promoted = true
		} else {
			advance := int32(abs8(to.Y - from.Y))
			piece.Value += advance
			points += advance
		}
	case Knight:
		value := knightValue(to)
		points += value - piece.Value
		piece.Value = value
	case King:
		b.kings[piece.Color] = to
		b.castle[piece.Color] = CastleRights{}
		switch to.X - from.X {
		case 2:
			rec.castle = CastleKingside
		case -2:
			rec.castle = CastleQueenside
		}
		if rec.castle != NoCastle {
			rookFrom, rookTo := castleRookSquares(from, rec.castle)
			rook := b.squares[rookFrom.index()]
			if rook.Kind != Rook || rook.Color != piece.Color {
				panic(fmt.Sprintf("board: castle %v%v without a rook on %v", from, to, rookFrom))
			}
			rec.rook = rook
			bonus := castleBonus(rec.castle)
			rook.HasMoved = true
			rook.Value += bonus
			points += bonus
			b.squares[rookFrom.index()] = Piece{}
			b.squares[rookTo.index()] = rook
		}
	case Rook:
		b.revokeRookRight(piece.Color, from)
	}

	b.squares[to.index()] = piece
	rec.delta = points * mover.Color.Sign()
	b.material += rec.delta
	return rec
}

// UnexecMove reverses ExecMove(from, to) given the record it returned.
func (b *Board) UnexecMove(from, to Square, rec MoveRecord) {
	if !rec.captured.Empty() {
		b.pieceCount++
	}
	b.squares[from.index()] = rec.moved
	b.squares[to.index()] = rec.captured
	if rec.moved.Kind == King {
		b.kings[rec.moved.Color] = from
	}
	if rec.castle != NoCastle {
		rookFrom, rookTo := castleRookSquares(from, rec.castle)
		b.squares[rookFrom.index()] = rec.rook
		b.squares[rookTo.index()] = Piece{}
	}
	b.castle = rec.rights
	b.material -= rec.delta
}

// revokeRookRight drops the right tied to a rook corner of color c when sq is
// that corner.
func (b *Board) revokeRookRight(c Color, sq Square) {
	if sq.Y != c.homeRank() {
		return
	}
	switch sq.X {
	case 0:
		b.castle[c].Queenside = false
	case 7:
		b.castle[c].Kingside = false
	}
}

func castleRookSquares(kingFrom Square, kind CastleKind) (from, to Square) {
	if kind == CastleKingside {
		return Square{X: 7, Y: kingFrom.Y}, Square{X: kingFrom.X + 1, Y: kingFrom.Y}
	}
	return Square{X: 0, Y: kingFrom.Y}, Square{X: kingFrom.X - 1, Y: kingFrom.Y}
}

func castleBonus(kind CastleKind) int32 {
	if kind == CastleKingside {
		return kingsideCastleBonus
	}
	return queensideCastleBonus
}
