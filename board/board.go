package board

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingKing indicates a placement without a king for some color.
	ErrMissingKing = errors.New("missing king")
	// ErrExtraKing indicates a placement with more than one king of a color.
	ErrExtraKing = errors.New("more than one king")
	// ErrInconsistent is returned by Validate when cached state has drifted.
	ErrInconsistent = errors.New("inconsistent board state")
)

// Sentinel scores returned by Eval.
const (
	Checkmate int32 = 1_000_000
	DrawScore int32 = 0
)

// CastleRights records which castles a color may still perform.
type CastleRights struct {
	Kingside  bool
	Queenside bool
}

// Board is an 8x8 position with cached king squares, castling rights, a
// running material score (white minus black) and a piece count.
//
// Boards are plain values: copying one (or calling Clone) yields an
// independent position.
type Board struct {
	squares    [64]Piece
	kings      [2]Square
	castle     [2]CastleRights
	material   int32
	pieceCount int
}

var backRank = [8]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// New returns the standard starting position.
func New() *Board {
	b := &Board{}
	for x := int8(0); x < 8; x++ {
		b.put(Square{X: x, Y: 0}, NewPiece(backRank[x], White))
		b.put(Square{X: x, Y: 1}, NewPiece(Pawn, White))
		b.put(Square{X: x, Y: 6}, NewPiece(Pawn, Black))
		b.put(Square{X: x, Y: 7}, NewPiece(backRank[x], Black))
	}
	b.kings[White] = Square{X: 4, Y: 0}
	b.kings[Black] = Square{X: 4, Y: 7}
	b.castle[White] = CastleRights{Kingside: true, Queenside: true}
	b.castle[Black] = CastleRights{Kingside: true, Queenside: true}
	return b
}

// FromPieces builds a board from an arbitrary placement. Each color must have
// exactly one king. Castling rights are granted where the king and rook are
// unmoved on their home squares.
func FromPieces(placement map[Square]Piece) (*Board, error) {
	b := &Board{}
	var kingCount [2]int
	for sq, p := range placement {
		if !sq.Valid() {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSquare, sq)
		}
		if p.Empty() {
			continue
		}
		if p.Kind == King {
			kingCount[p.Color]++
			b.kings[p.Color] = sq
		}
		b.put(sq, p)
	}
	for _, c := range []Color{White, Black} {
		switch {
		case kingCount[c] == 0:
			return nil, fmt.Errorf("%w: %v", ErrMissingKing, c)
		case kingCount[c] > 1:
			return nil, fmt.Errorf("%w: %v", ErrExtraKing, c)
		}
		b.castle[c] = b.deriveCastleRights(c)
	}
	return b, nil
}

func (b *Board) deriveCastleRights(c Color) CastleRights {
	rank := c.homeRank()
	king := b.PieceAt(Square{X: 4, Y: rank})
	if king.Kind != King || king.Color != c || king.HasMoved {
		return CastleRights{}
	}
	unmovedRook := func(x int8) bool {
		p := b.PieceAt(Square{X: x, Y: rank})
		return p.Kind == Rook && p.Color == c && !p.HasMoved
	}
	return CastleRights{Kingside: unmovedRook(7), Queenside: unmovedRook(0)}
}

// put places p on an empty square and updates the cached totals.
func (b *Board) put(sq Square, p Piece) {
	b.squares[sq.index()] = p
	b.material += p.signedValue()
	b.pieceCount++
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// PieceAt returns the piece on sq; Empty() when the square is vacant.
func (b *Board) PieceAt(sq Square) Piece { return b.squares[sq.index()] }

// Occupied reports whether any piece stands on sq.
func (b *Board) Occupied(sq Square) bool { return !b.squares[sq.index()].Empty() }

// IsColor reports whether sq holds a piece of color c.
func (b *Board) IsColor(sq Square, c Color) bool {
	p := b.squares[sq.index()]
	return !p.Empty() && p.Color == c
}

// King returns the cached king square of c.
func (b *Board) King(c Color) Square { return b.kings[c] }

// CastleRights returns the castling rights still held by c.
func (b *Board) CastleRights(c Color) CastleRights { return b.castle[c] }

// SetCastleRights overrides the rights of c. Rights that the position cannot
// support (king or rook missing from its home square) are dropped.
func (b *Board) SetCastleRights(c Color, rights CastleRights) {
	possible := b.deriveCastleRights(c)
	b.castle[c] = CastleRights{
		Kingside:  rights.Kingside && possible.Kingside,
		Queenside: rights.Queenside && possible.Queenside,
	}
}

// Material is the running white-minus-black value sum.
func (b *Board) Material() int32 { return b.material }

// PieceCount is the number of occupied squares.
func (b *Board) PieceCount() int { return b.pieceCount }

// Validate recomputes the cached totals from the squares and checks them.
func (b *Board) Validate() error {
	var material int32
	count := 0
	for _, p := range b.squares {
		if p.Empty() {
			continue
		}
		material += p.signedValue()
		count++
	}
	if material != b.material {
		return fmt.Errorf("%w: material %d, squares sum to %d", ErrInconsistent, b.material, material)
	}
	if count != b.pieceCount {
		return fmt.Errorf("%w: piece count %d, squares hold %d", ErrInconsistent, b.pieceCount, count)
	}
	for _, c := range []Color{White, Black} {
		p := b.PieceAt(b.kings[c])
		if p.Kind != King || p.Color != c {
			return fmt.Errorf("%w: %v king cached on %v", ErrInconsistent, c, b.kings[c])
		}
	}
	return nil
}
