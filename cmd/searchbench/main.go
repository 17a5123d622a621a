// Command searchbench times fixed-depth searches.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/profile"

	"chengine/board"
	"chengine/engine"
)

func main() {
	depthFlag := flag.Int("depth", engine.DefaultDepth, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	profileMode := flag.String("profile", "", "profile the run: cpu or mem")
	profileDir := flag.String("profiledir", ".", "directory for profile output")
	verbose := flag.Bool("v", false, "print search info lines")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*profileDir)).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*profileDir)).Stop()
	default:
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	fen := board.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	var logger *log.Logger
	if *verbose {
		logger = log.New(os.Stdout, "", 0)
	}

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", fen, *depthFlag, *repeatFlag)

	startAll := time.Now()
	var nodes uint64
	for i := 0; i < *repeatFlag; i++ {
		// Fresh position for each run
		pos, side, err := board.ParseFEN(fen)
		if err != nil {
			log.Fatalf("parse FEN: %v", err)
		}
		res, err := engine.Search(pos, side, *depthFlag, logger)
		if err != nil {
			log.Fatalf("search: %v", err)
		}
		nodes += res.Stats.TotalNodes()
		fmt.Printf("iteration %d: bestmove %v score %s nodes %d time=%v\n",
			i+1, res.Move, engine.FormatScore(res.Score), res.Stats.TotalNodes(), res.Elapsed)
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nodes: %d  nps: %.0f\n", totalElapsed, nodes, float64(nodes)/totalElapsed.Seconds())
}
