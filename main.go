// Command chengine is an interactive console for playing against the engine.
//
// Commands: go [depth], move <from> <to>, query <square>, undo, show,
// fen [FEN], new, quit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"chengine/board"
	"chengine/engine"
)

func main() {
	opts := engine.DefaultOptions()
	depth := flag.Int("depth", opts.Depth, "search depth in plies")
	threshold := flag.Int("tablebase-pieces", opts.TablebaseThreshold, "probe the tablebase at or below this many pieces")
	tbURL := flag.String("tablebase", engine.DefaultTablebaseEndpoint, "tablebase endpoint; empty disables probing")
	noBook := flag.Bool("no-book", false, "do not play from the opening book")
	bookPath := flag.String("book", "", "opening book file (.csv, .csv.zst or .csv.bz2); default is the built-in book")
	perspective := flag.String("perspective", "black", "side shown at the bottom of the board (white|black)")
	verbose := flag.Bool("v", false, "log search info lines to stderr")
	flag.Parse()

	logger := log.New(os.Stderr, "", 0)
	if *verbose {
		opts.Logger = logger
	}
	opts.Depth = *depth
	opts.TablebaseThreshold = *threshold
	opts.UseBook = !*noBook
	if *tbURL == "" {
		opts.Tablebase = nil
	} else {
		opts.Tablebase = &engine.LichessTablebase{Endpoint: *tbURL}
	}

	cfg := consoleConfig{Options: opts, Book: engine.DefaultOpenings()}
	if *bookPath != "" {
		book, err := engine.LoadOpeningBook(*bookPath, opts.Logger)
		if err != nil {
			logger.Fatalf("load book: %v", err)
		}
		cfg.Book = book
	}
	switch strings.ToLower(*perspective) {
	case "white":
		cfg.Perspective = board.White
	case "black":
		cfg.Perspective = board.Black
	default:
		fmt.Fprintf(os.Stderr, "unknown perspective %q\n", *perspective)
		os.Exit(2)
	}

	if err := runConsole(os.Stdin, os.Stdout, cfg); err != nil {
		logger.Fatalf("console: %v", err)
	}
}
