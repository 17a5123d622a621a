package engine

import (
	"io"
	"log"
)

// Options configures a Computer.
type Options struct {
	// Depth is the search depth used when the caller does not pass one.
	Depth int
	// TablebaseThreshold is the piece count at or below which the tablebase
	// is consulted before searching.
	TablebaseThreshold int
	// Tablebase answers endgame positions. Nil disables probing.
	Tablebase Tablebase
	// UseBook enables the opening book.
	UseBook bool
	// Logger receives "info ..." lines. Nil discards them.
	Logger *log.Logger
}

const (
	DefaultDepth              = 5
	DefaultTablebaseThreshold = 7
)

// DefaultOptions returns the settings the console starts with.
func DefaultOptions() Options {
	return Options{
		Depth:              DefaultDepth,
		TablebaseThreshold: DefaultTablebaseThreshold,
		Tablebase:          NewLichessTablebase(),
		UseBook:            true,
		Logger:             discardLogger(),
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func (o Options) normalized() Options {
	if o.Depth < 1 {
		o.Depth = DefaultDepth
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	return o
}
