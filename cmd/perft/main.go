// Command perft counts move-generator leaf nodes and optionally checks them
// against the dragontoothmg generator.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chengine/board"
	"chengine/reference"
)

func main() {
	fen := flag.String("fen", board.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Compare against the reference generator (en passant and under-promotions excluded)")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write a CPU profile into this directory")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, side, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := make(map[string]uint64)
		for m, n := range board.PerftDivide(pos, side, *depth) {
			div[m.String()] = n
		}
		var ref map[string]uint64
		if *verify {
			ref = reference.Divide(*fen, *depth)
		}
		os.Exit(printDivide(div, ref))
	}

	if *cpuProf != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProf), profile.Quiet).Stop()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += board.Perft(pos, side, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *verify {
		want := reference.Perft(*fen, *depth) * uint64(*repeat)
		if want != totalNodes {
			fmt.Fprintf(os.Stderr, "mismatch: reference counts %d nodes\n", want)
			os.Exit(1)
		}
		fmt.Println("reference: ok")
	}
}

// printDivide prints per-move counts in move order. When ref is not nil every
// differing move is flagged and the exit code is 1.
func printDivide(div, ref map[string]uint64) int {
	keys := maps.Keys(div)
	for m := range ref {
		if _, ok := div[m]; !ok {
			keys = append(keys, m)
		}
	}
	slices.Sort(keys)

	code := 0
	var sum uint64
	for _, m := range keys {
		n := div[m]
		sum += n
		if ref == nil {
			fmt.Printf("%s: %d\n", m, n)
			continue
		}
		if want, ok := ref[m]; !ok || want != n {
			fmt.Printf("%s: %d (reference %d)\n", m, n, want)
			code = 1
			continue
		}
		fmt.Printf("%s: %d\n", m, n)
	}
	fmt.Printf("Total: %d\n", sum)
	return code
}
