package engine

import (
	"chengine/board"
)

// Source tells where a Computer's move came from.
type Source uint8

const (
	SourceSearch Source = iota
	SourceBook
	SourceTablebase
)

func (s Source) String() string {
	switch s {
	case SourceBook:
		return "book"
	case SourceTablebase:
		return "tablebase"
	}
	return "search"
}

// Result is a move chosen by a Computer. Score and Search are only filled in
// for searched moves.
type Result struct {
	Move   board.Move
	Score  int32
	Source Source
	Search SearchResult
}

// Computer plays one color. It owns its position in the opening book; the
// tree itself is shared.
type Computer struct {
	color     board.Color
	cursor    *BookCursor
	following bool
	opts      Options
}

// NewComputer creates an engine for color. A nil book or opts.UseBook=false
// starts it out of book.
func NewComputer(color board.Color, book *OpeningNode, opts Options) *Computer {
	opts = opts.normalized()
	c := &Computer{color: color, opts: opts}
	if book != nil && opts.UseBook {
		c.cursor = NewBookCursor(book)
		c.following = true
	}
	return c
}

// Following reports whether the engine is still playing from the book.
func (c *Computer) Following() bool { return c.following }

// LeaveBook stops book lookups for the rest of the game.
func (c *Computer) LeaveBook() { c.following = false }

// GetMove picks a move for the engine's color on b. last is the opponent's
// previous move (nil when none). depth <= 0 uses Options.Depth. The board is
// not modified.
//
// The book is tried first, then the tablebase once few enough pieces remain,
// then search. A tablebase failure is logged and search takes over.
func (c *Computer) GetMove(b *board.Board, last *board.Move, depth int) (Result, error) {
	if depth <= 0 {
		depth = c.opts.Depth
	}
	logger := c.opts.Logger

	if c.following {
		if m, ok := c.cursor.Next(last); ok && b.IsLegal(c.color, m) {
			logger.Printf("info string book move %v\n", m)
			return Result{Move: m, Source: SourceBook}, nil
		}
		c.following = false
		logger.Println("info string leaving opening book")
	}

	if c.opts.Tablebase != nil && b.PieceCount() <= c.opts.TablebaseThreshold && b.HasLegalMoves(c.color) {
		fen := tablebaseFEN(b, c.color)
		m, err := c.opts.Tablebase.BestMove(fen)
		if err == nil {
			logger.Printf("info string tablebase move %v for %s\n", m, fen)
			return Result{Move: m, Source: SourceTablebase}, nil
		}
		logger.Printf("info string tablebase probe failed, searching instead: %v\n", err)
	}

	res, err := Search(b, c.color, depth, logger)
	if err != nil {
		return Result{}, err
	}
	return Result{Move: res.Move, Score: res.Score, Source: SourceSearch, Search: res}, nil
}
