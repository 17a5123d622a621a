package main

import (
	"fmt"
	"io"
	"strings"

	"chengine/board"
)

// renderBoard draws b as text from the given side's point of view. Squares in
// marked are bracketed.
func renderBoard(w io.Writer, b *board.Board, perspective board.Color, marked map[board.Square]bool) {
	files := []int8{0, 1, 2, 3, 4, 5, 6, 7}
	ranks := []int8{7, 6, 5, 4, 3, 2, 1, 0}
	if perspective == board.Black {
		files, ranks = ranks, files
	}

	var sb strings.Builder
	border := "  +" + strings.Repeat("-", 3*len(files)) + "+\n"
	sb.WriteString(border)
	for _, y := range ranks {
		fmt.Fprintf(&sb, "%d |", y+1)
		for _, x := range files {
			sq := board.Square{X: x, Y: y}
			ch := b.PieceAt(sq).Char()
			if marked[sq] {
				fmt.Fprintf(&sb, "[%c]", ch)
			} else {
				fmt.Fprintf(&sb, " %c ", ch)
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border)
	sb.WriteString("   ")
	for _, x := range files {
		fmt.Fprintf(&sb, " %c ", 'a'+byte(x))
	}
	sb.WriteString("\n")
	io.WriteString(w, sb.String())
}
