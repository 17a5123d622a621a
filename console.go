package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"chengine/board"
	"chengine/engine"
)

// consoleConfig holds what the command line decides before a session starts.
type consoleConfig struct {
	Options     engine.Options
	Book        *engine.OpeningNode
	Perspective board.Color
}

type playedMove struct {
	move board.Move
	rec  board.MoveRecord
}

// console is one interactive game: the board, the side to move and the two
// engines that can be asked to play either side.
type console struct {
	cfg       consoleConfig
	out       io.Writer
	b         *board.Board
	side      board.Color
	history   []playedMove
	computers [2]*engine.Computer
	marked    map[board.Square]bool
}

func newConsole(out io.Writer, cfg consoleConfig) *console {
	c := &console{cfg: cfg, out: out}
	c.reset(board.New(), board.White)
	return c
}

func (c *console) reset(b *board.Board, side board.Color) {
	c.b = b
	c.side = side
	c.history = c.history[:0]
	c.marked = nil
	book := c.cfg.Book
	if b.FEN(side) != board.FENStartPos {
		book = nil
	}
	for _, color := range []board.Color{board.White, board.Black} {
		c.computers[color] = engine.NewComputer(color, book, c.cfg.Options)
	}
}

func (c *console) lastMove() *board.Move {
	if len(c.history) == 0 {
		return nil
	}
	m := c.history[len(c.history)-1].move
	return &m
}

var errUnknownCommand = errors.New("unknown command")

// runConsole reads commands from in until "quit", end of input or the end of
// the game.
func runConsole(in io.Reader, out io.Writer, cfg consoleConfig) error {
	c := newConsole(out, cfg)
	c.show()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		done, err := c.exec(strings.ToLower(tokens[0]), tokens[1:])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		if done {
			return nil
		}
	}
	return scanner.Err()
}

// exec runs one command. done is true when the session is over.
func (c *console) exec(cmd string, args []string) (done bool, err error) {
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "go":
		return c.goCmd(args)
	case "move":
		m, err := board.ParseMove(strings.Join(args, ""))
		if err != nil {
			return false, err
		}
		if !c.b.IsLegal(c.side, m) {
			return false, fmt.Errorf("%v is not legal for %v", m, c.side)
		}
		return c.play(m), nil
	case "query":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: query <square>")
		}
		sq, err := board.ParseSquare(strings.ToLower(args[0]))
		if err != nil {
			return false, err
		}
		c.query(sq)
	case "undo":
		c.undo()
	case "show":
		c.show()
	case "fen":
		if len(args) == 0 {
			fmt.Fprintln(c.out, c.b.FEN(c.side))
			return false, nil
		}
		b, side, err := board.ParseFEN(strings.Join(args, " "))
		if err != nil {
			return false, err
		}
		c.reset(b, side)
		c.show()
	case "new":
		c.reset(board.New(), board.White)
		c.show()
	default:
		return false, fmt.Errorf("%w %q", errUnknownCommand, cmd)
	}
	return false, nil
}

func (c *console) goCmd(args []string) (bool, error) {
	depth := c.cfg.Options.Depth
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			return false, fmt.Errorf("bad depth %q", args[0])
		}
		depth = d
	}
	start := time.Now()
	res, err := c.computers[c.side].GetMove(c.b, c.lastMove(), depth)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(c.out, "Found move %v (%s)\n", res.Move, res.Source)
	if res.Source == engine.SourceSearch {
		fmt.Fprintf(c.out, "Score: %s\nDepth: %d\nNodes: %d\n",
			engine.FormatScore(res.Score), res.Search.Depth, res.Search.Stats.TotalNodes())
	}
	fmt.Fprintf(c.out, "Time: %v\n", time.Since(start).Round(time.Millisecond))
	if !c.b.Occupied(res.Move.From) {
		return false, fmt.Errorf("engine proposed %v from an empty square", res.Move)
	}
	return c.play(res.Move), nil
}

// play executes m for the side to move, reports the new position and
// reports whether the game has ended.
func (c *console) play(m board.Move) bool {
	san := algebraic(c.b, c.side, m)
	rec := c.b.ExecMove(m.From, m.To)
	c.history = append(c.history, playedMove{move: m, rec: rec})
	c.marked = map[board.Square]bool{m.From: true, m.To: true}
	c.side = c.side.Other()
	c.show()

	if san != "" {
		fmt.Fprintf(c.out, "Move: %v to %v (%s)\n", m.From, m.To, san)
	} else {
		fmt.Fprintf(c.out, "Move: %v to %v\n", m.From, m.To)
	}
	fmt.Fprintf(c.out, "Eval (+white, -black): %d\n", c.b.Eval(board.White))
	fmt.Fprintf(c.out, "White in check: %v\nBlack in check: %v\n",
		c.b.KingInCheck(board.White), c.b.KingInCheck(board.Black))

	switch {
	case c.b.IsCheckmate(c.side):
		fmt.Fprintf(c.out, "%s wins\n", colorName(c.side.Other()))
		return true
	case c.b.IsStalemate(c.side):
		fmt.Fprintln(c.out, "Draw by stalemate")
		return true
	}
	return false
}

// undo takes back the last move. The engines cannot rewind their book
// position, so both leave the book.
func (c *console) undo() {
	if len(c.history) == 0 {
		fmt.Fprintln(c.out, "Nothing to undo")
		return
	}
	last := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.b.UnexecMove(last.move.From, last.move.To, last.rec)
	c.side = c.side.Other()
	for _, comp := range c.computers {
		comp.LeaveBook()
	}
	c.marked = nil
	c.show()
}

func (c *console) query(sq board.Square) {
	p := c.b.PieceAt(sq)
	if p.Empty() {
		fmt.Fprintf(c.out, "%v is empty\n", sq)
		return
	}
	c.marked = map[board.Square]bool{sq: true}
	var targets []string
	for _, m := range c.b.LegalMoves(p.Color) {
		if m.From == sq {
			c.marked[m.To] = true
			targets = append(targets, m.To.String())
		}
	}
	c.show()
	fmt.Fprintf(c.out, "%s %c on %v value %d moves: %s\n",
		colorName(p.Color), p.Char(), sq, p.Value, strings.Join(targets, " "))
}

func (c *console) show() {
	renderBoard(c.out, c.b, c.cfg.Perspective, c.marked)
	fmt.Fprintf(c.out, "%s to move\n", colorName(c.side))
}

func colorName(c board.Color) string {
	if c == board.White {
		return "White"
	}
	return "Black"
}
