package engine

import "chengine/board"

// PVLine is the principal variation found below a node.
type PVLine struct {
	Moves []board.Move
}

// Update sets the line to move followed by the child's line.
func (pv *PVLine) Update(move board.Move, child PVLine) {
	pv.Moves = append(pv.Moves[:0], move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

// Clear empties the line, keeping its storage.
func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// String renders the line in coordinate notation.
func (pv PVLine) String() string {
	return movesString(pv.Moves)
}
