package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"chengine/board"
)

// ErrInvalidBook is returned when an opening book file cannot be parsed.
var ErrInvalidBook = errors.New("invalid opening book")

// OpeningNode is one segment of the opening tree: a run of moves played in
// order (both sides alternating) followed by the branches that may continue
// it. Nodes are never modified once built and may be shared by any number of
// cursors.
type OpeningNode struct {
	Moves []board.Move
	Next  []*OpeningNode
}

func line(moves string, next ...*OpeningNode) *OpeningNode {
	node := &OpeningNode{Next: next}
	for _, text := range strings.Fields(moves) {
		node.Moves = append(node.Moves, board.MustMove(text))
	}
	return node
}

var (
	defaultOpeningsOnce sync.Once
	defaultOpenings     *OpeningNode
)

// DefaultOpenings returns the built-in opening tree. It is built on first use
// and shared afterwards.
func DefaultOpenings() *OpeningNode {
	defaultOpeningsOnce.Do(func() {
		finish := line("f3e5 f6e4 d1f3")
		defaultOpenings = line("e2e4",
			// Queen's gambit counter.
			line("d7d5 e4d5 d8d5 b1c3"),
			line("e7e5 g1f3",
				line("g8f6", finish),
				line("b8c6 f1b5 g8f6 b5c6",
					line("d7c6", finish),
					line("b7c6", finish),
				),
			),
		)
	})
	return defaultOpenings
}

// BookCursor walks an opening tree for one engine. It remembers the current
// segment and the index of the next expected move in it.
type BookCursor struct {
	node *OpeningNode
	seek int
}

// NewBookCursor starts a cursor at the root of tree.
func NewBookCursor(tree *OpeningNode) *BookCursor {
	return &BookCursor{node: tree}
}

// Next returns the book reply and advances past it. last is the opponent's
// previous move, or nil when the engine moves first. ok is false once the game
// has left the book; callers should then stop asking.
//
// At the end of a segment the engine takes the first branch when it is its own
// turn, and the branch starting with the opponent's move otherwise.
func (c *BookCursor) Next(last *board.Move) (move board.Move, ok bool) {
	if c.node == nil {
		return board.Move{}, false
	}
	for {
		if c.seek == len(c.node.Moves) {
			if last == nil {
				if len(c.node.Next) == 0 {
					return board.Move{}, false
				}
				c.node, c.seek = c.node.Next[0], 0
				continue
			}
			branch := c.branchFor(*last)
			if branch == nil {
				return board.Move{}, false
			}
			// The branch's first move is the one just played.
			c.node, c.seek, last = branch, 1, nil
			continue
		}

		expected := c.node.Moves[c.seek]
		if last == nil {
			c.seek++
			return expected, true
		}
		if expected != *last {
			return board.Move{}, false
		}
		c.seek++
		last = nil
	}
}

func (c *BookCursor) branchFor(m board.Move) *OpeningNode {
	for _, branch := range c.node.Next {
		if len(branch.Moves) > 0 && branch.Moves[0] == m {
			return branch
		}
	}
	return nil
}

var moveNumbers = regexp.MustCompile(`[0-9]+\.+`)

// ParseOpeningBook reads book lines from CSV records. The last field of each
// record holds a line of coordinate moves, optionally numbered ("1.e2e4 e7e5
// 2.g1f3"). A header record whose last field is "moves" is skipped. Lines are
// merged into one tree; where lines diverge on the engine's own move the
// earliest line in the file wins.
func ParseOpeningBook(r io.Reader) (*OpeningNode, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'

	root := &trieNode{}
	for lineNo := 1; ; lineNo++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBook, err)
		}
		text := strings.TrimSpace(record[len(record)-1])
		if lineNo == 1 && strings.EqualFold(text, "moves") {
			continue
		}
		text = moveNumbers.ReplaceAllString(text, " ")
		var moves []board.Move
		for _, field := range strings.Fields(text) {
			m, err := board.ParseMove(field)
			if err != nil {
				return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidBook, lineNo, err)
			}
			moves = append(moves, m)
		}
		root.insert(moves)
	}
	if len(root.children) == 0 {
		return nil, fmt.Errorf("%w: no lines", ErrInvalidBook)
	}
	if len(root.children) == 1 {
		return root.children[0].segment(), nil
	}
	tree := &OpeningNode{}
	for _, child := range root.children {
		tree.Next = append(tree.Next, child.segment())
	}
	return tree, nil
}

// trieNode holds one move per node while a book is being read.
type trieNode struct {
	move     board.Move
	children []*trieNode
}

func (t *trieNode) insert(moves []board.Move) {
	node := t
	for _, m := range moves {
		var next *trieNode
		for _, child := range node.children {
			if child.move == m {
				next = child
				break
			}
		}
		if next == nil {
			next = &trieNode{move: m}
			node.children = append(node.children, next)
		}
		node = next
	}
}

// segment collapses single-child chains into one OpeningNode.
func (t *trieNode) segment() *OpeningNode {
	node := &OpeningNode{Moves: []board.Move{t.move}}
	cur := t
	for len(cur.children) == 1 {
		cur = cur.children[0]
		node.Moves = append(node.Moves, cur.move)
	}
	for _, child := range cur.children {
		node.Next = append(node.Next, child.segment())
	}
	return node
}
