package engine

import (
	"fmt"
	"strings"

	"chengine/board"
)

// MaxScore bounds every score the search can return.
const MaxScore int32 = 2 * board.Checkmate

// mateWindow is the largest ply distance still reported as a mate.
const mateWindow int32 = 1000

// FormatScore renders a score the way search info lines do: "mate N" when a
// forced mate was found (negative when being mated), "cp N" otherwise.
func FormatScore(score int32) string {
	if !IsMateScore(score) {
		return fmt.Sprintf("cp %d", score)
	}
	if score > 0 {
		plies := board.Checkmate - score
		return fmt.Sprintf("mate %d", (plies+1)/2)
	}
	plies := board.Checkmate + score
	return fmt.Sprintf("mate %d", -(plies+1)/2)
}

// IsMateScore reports whether score encodes a forced mate.
func IsMateScore(score int32) bool {
	return score >= board.Checkmate-mateWindow || score <= -board.Checkmate+mateWindow
}

func movesString(moves []board.Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}
