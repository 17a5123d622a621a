package board

// Color is the side owning a piece.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

// Sign is +1 for white and -1 for black; material is kept from white's view.
func (c Color) Sign() int32 {
	if c == White {
		return 1
	}
	return -1
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// homeRank is the rank a color's back-row pieces start on.
func (c Color) homeRank() int8 {
	if c == White {
		return 0
	}
	return 7
}

// pawnRank is the rank a color's pawns start on.
func (c Color) pawnRank() int8 {
	if c == White {
		return 1
	}
	return 6
}

// forward is the direction that color's pawns advance.
func (c Color) forward() int8 {
	if c == White {
		return 1
	}
	return -1
}

// PieceKind is the colorless piece type. NoKind marks an empty square.
type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Base piece values. King is effectively infinite.
const (
	ValueKing   int32 = 99999
	ValueQueen  int32 = 850
	ValueRook   int32 = 500
	ValueBishop int32 = 350
	ValueKnight int32 = 300
	ValuePawn   int32 = 100
)

// BaseValue is the starting value for a kind.
func (k PieceKind) BaseValue() int32 {
	switch k {
	case Pawn:
		return ValuePawn
	case Knight:
		return ValueKnight
	case Bishop:
		return ValueBishop
	case Rook:
		return ValueRook
	case Queen:
		return ValueQueen
	case King:
		return ValueKing
	}
	return 0
}

// Char is the lower-case FEN letter for the kind.
func (k PieceKind) Char() byte {
	switch k {
	case Pawn:
		return 'p'
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	case King:
		return 'k'
	}
	return '?'
}

func kindFromChar(ch byte) (PieceKind, bool) {
	switch ch {
	case 'p':
		return Pawn, true
	case 'n':
		return Knight, true
	case 'b':
		return Bishop, true
	case 'r':
		return Rook, true
	case 'q':
		return Queen, true
	case 'k':
		return King, true
	}
	return NoKind, false
}

// Piece is a piece on the board. Value is mutated by some moves (pawn advance,
// knight centrality, castling) and restored on undo, so it is not a function
// of Kind alone.
type Piece struct {
	Kind     PieceKind
	Color    Color
	Value    int32
	HasMoved bool
}

// NewPiece returns an unmoved piece carrying its base value.
func NewPiece(kind PieceKind, color Color) Piece {
	if kind == NoKind || kind > King {
		panic("board: invalid piece kind")
	}
	return Piece{Kind: kind, Color: color, Value: kind.BaseValue()}
}

// Empty reports whether p is the zero piece (an empty square).
func (p Piece) Empty() bool { return p.Kind == NoKind }

// Char is the FEN letter, upper-case for white.
func (p Piece) Char() byte {
	if p.Empty() {
		return '.'
	}
	ch := p.Kind.Char()
	if p.Color == White {
		ch -= 'a' - 'A'
	}
	return ch
}

// signedValue is the piece's contribution to the white-minus-black material.
func (p Piece) signedValue() int32 { return p.Color.Sign() * p.Value }

// knightValue is the stored value of a knight standing on sq: base plus 3 for
// each axis that is not on an edge.
func knightValue(sq Square) int32 {
	return ValueKnight + centrality(sq.X) + centrality(sq.Y)
}

func centrality(c int8) int32 {
	if c == 0 || c == 7 {
		return 0
	}
	return 3
}
