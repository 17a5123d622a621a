package board

import (
	"errors"
	"fmt"
)

// ErrInvalidSquare is returned when a coordinate cannot be parsed.
var ErrInvalidSquare = errors.New("invalid square")

// Square is a board coordinate. X is the file (0 = a) and Y the rank (0 = 1).
type Square struct {
	X, Y int8
}

// Offset returns the square displaced by (dx, dy). ok is false when the result
// leaves the board.
func (s Square) Offset(dx, dy int8) (Square, bool) {
	x, y := s.X+dx, s.Y+dy
	if x < 0 || x > 7 || y < 0 || y > 7 {
		return Square{}, false
	}
	return Square{X: x, Y: y}, true
}

func (s Square) index() int { return int(s.Y)*8 + int(s.X) }

func squareAt(idx int) Square { return Square{X: int8(idx % 8), Y: int8(idx / 8)} }

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool { return s.X >= 0 && s.X < 8 && s.Y >= 0 && s.Y < 8 }

// String renders the square as e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(s.X), '1' + byte(s.Y)})
}

// ParseSquare converts "e4" style text into a Square.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, text)
	}
	file, rank := text[0], text[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, text)
	}
	return Square{X: int8(file - 'a'), Y: int8(rank - '1')}, nil
}

// MustSquare is ParseSquare for literals known to be valid.
func MustSquare(text string) Square {
	sq, err := ParseSquare(text)
	if err != nil {
		panic(err)
	}
	return sq
}
