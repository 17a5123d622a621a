package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFEN indicates a malformed position string.
var ErrInvalidFEN = errors.New("invalid FEN")

// FENStartPos is the FEN string for the standard initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a board from a FEN string and returns the side to move.
// Only the placement, side and castling fields are used; en passant and the
// move clocks are accepted and ignored. Pawns off their start rank and pieces
// off their home squares are marked as moved.
func ParseFEN(fen string) (*Board, Color, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, White, fmt.Errorf("%w: empty string", ErrInvalidFEN)
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, White, fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	placement := make(map[Square]Piece, 32)
	for i, rankStr := range ranks {
		y := int8(7 - i)
		x := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				x += int(ch - '0')
				if x > 8 {
					return nil, White, fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, y+1)
				}
				continue
			}
			color := Black
			if ch >= 'A' && ch <= 'Z' {
				color = White
				ch += 'a' - 'A'
			}
			kind, ok := kindFromChar(ch)
			if !ok {
				return nil, White, fmt.Errorf("%w: unrecognized piece %q", ErrInvalidFEN, rankStr[j])
			}
			if x >= 8 {
				return nil, White, fmt.Errorf("%w: rank %d overflows", ErrInvalidFEN, y+1)
			}
			sq := Square{X: int8(x), Y: y}
			p := NewPiece(kind, color)
			p.HasMoved = !onStartSquare(sq, p)
			if kind == Knight && p.HasMoved {
				p.Value = knightValue(sq)
			}
			placement[sq] = p
			x++
		}
		if x != 8 {
			return nil, White, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, y+1, x)
		}
	}

	side := White
	if len(fields) > 1 {
		switch fields[1] {
		case "w":
		case "b":
			side = Black
		default:
			return nil, White, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
		}
	}

	b, err := FromPieces(placement)
	if err != nil {
		return nil, White, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	var rights [2]CastleRights
	if len(fields) > 2 && fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				rights[White].Kingside = true
			case 'Q':
				rights[White].Queenside = true
			case 'k':
				rights[Black].Kingside = true
			case 'q':
				rights[Black].Queenside = true
			default:
				return nil, White, fmt.Errorf("%w: castling field %q", ErrInvalidFEN, fields[2])
			}
		}
	}
	b.SetCastleRights(White, rights[White])
	b.SetCastleRights(Black, rights[Black])
	return b, side, nil
}

// onStartSquare reports whether p stands where a piece of its kind and color
// begins the game.
func onStartSquare(sq Square, p Piece) bool {
	if p.Kind == Pawn {
		return sq.Y == p.Color.pawnRank()
	}
	return sq.Y == p.Color.homeRank() && backRank[sq.X] == p.Kind
}

// FEN serializes the position with side to move. Castling rights are written
// from the cached rights; en passant is always "-".
func (b *Board) FEN(side Color) string {
	var sb strings.Builder
	b.writePlacement(&sb)
	sb.WriteByte(' ')
	if side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(b.castleField())
	sb.WriteString(" - 0 1")
	return sb.String()
}

// PlacementFEN is the piece placement field alone.
func (b *Board) PlacementFEN() string {
	var sb strings.Builder
	b.writePlacement(&sb)
	return sb.String()
}

func (b *Board) writePlacement(sb *strings.Builder) {
	for y := int8(7); y >= 0; y-- {
		empty := 0
		for x := int8(0); x < 8; x++ {
			p := b.PieceAt(Square{X: x, Y: y})
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if y > 0 {
			sb.WriteByte('/')
		}
	}
}

func (b *Board) castleField() string {
	var field []byte
	if b.castle[White].Kingside {
		field = append(field, 'K')
	}
	if b.castle[White].Queenside {
		field = append(field, 'Q')
	}
	if b.castle[Black].Kingside {
		field = append(field, 'k')
	}
	if b.castle[Black].Queenside {
		field = append(field, 'q')
	}
	if len(field) == 0 {
		return "-"
	}
	return string(field)
}
