package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMove is returned when move text cannot be parsed.
var ErrInvalidMove = errors.New("invalid move")

// Move is a from/to coordinate pair. Promotion is implicit (always a queen).
type Move struct {
	From, To Square
}

// String produces the coordinate form, e.g. "e2e4".
func (m Move) String() string { return m.From.String() + m.To.String() }

// ParseMove accepts "e2e4" or "e2 e4". A trailing promotion letter "q" is
// tolerated since promotion is always to a queen.
func ParseMove(text string) (Move, error) {
	text = strings.ToLower(strings.Join(strings.Fields(text), ""))
	if len(text) == 5 && text[4] == 'q' {
		text = text[:4]
	}
	if len(text) != 4 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, text)
	}
	from, err := ParseSquare(text[:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	to, err := ParseSquare(text[2:])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	return Move{From: from, To: to}, nil
}

// MustMove is ParseMove for literals known to be valid.
func MustMove(text string) Move {
	m, err := ParseMove(text)
	if err != nil {
		panic(err)
	}
	return m
}

// CastleKind identifies which side a king move castled to, if any.
type CastleKind uint8

const (
	NoCastle CastleKind = iota
	CastleKingside
	CastleQueenside
)

// Castle bonuses added to the point delta and to the castled rook's value.
const (
	kingsideCastleBonus  int32 = 3
	queensideCastleBonus int32 = 2
)

// MoveRecord holds everything needed to undo a move with UnexecMove. It must
// be passed back with the same from/to pair, in LIFO order.
type MoveRecord struct {
	delta    int32
	moved    Piece
	captured Piece
	promoted bool
	castle   CastleKind
	rook     Piece
	rights   [2]CastleRights
}

// Delta is the signed change applied to the material score.
func (r MoveRecord) Delta() int32 { return r.delta }

// Captured is the piece taken by the move; Empty() when nothing was taken.
func (r MoveRecord) Captured() Piece { return r.captured }

// Promoted reports whether a pawn became a queen.
func (r MoveRecord) Promoted() bool { return r.promoted }

// Castle reports which side the move castled to.
func (r MoveRecord) Castle() CastleKind { return r.castle }

