package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"chengine/board"
)

var (
	// ErrTablebaseUnreachable reports a transport failure or a non-200 reply.
	ErrTablebaseUnreachable = errors.New("tablebase unreachable")
	// ErrTablebaseResponse reports a reply that could not be understood.
	ErrTablebaseResponse = errors.New("unexpected tablebase response")
)

// DefaultTablebaseEndpoint is the lichess mainline endpoint.
const DefaultTablebaseEndpoint = "http://tablebase.lichess.ovh/standard/mainline"

// Tablebase answers the best move for a position given as FEN.
type Tablebase interface {
	BestMove(fen string) (board.Move, error)
}

// LichessTablebase queries the lichess tablebase over HTTP.
type LichessTablebase struct {
	Endpoint string
	Client   *http.Client
}

// NewLichessTablebase returns a client for DefaultTablebaseEndpoint.
func NewLichessTablebase() *LichessTablebase {
	return &LichessTablebase{Endpoint: DefaultTablebaseEndpoint, Client: http.DefaultClient}
}

type mainlineResponse struct {
	Mainline []struct {
		UCI string `json:"uci"`
	} `json:"mainline"`
}

// BestMove returns the first move of the mainline for fen.
func (t *LichessTablebase) BestMove(fen string) (board.Move, error) {
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	endpoint := t.Endpoint
	if endpoint == "" {
		endpoint = DefaultTablebaseEndpoint
	}

	resp, err := client.Get(endpoint + "?" + url.Values{"fen": {fen}}.Encode())
	if err != nil {
		return board.Move{}, fmt.Errorf("%w: %v", ErrTablebaseUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return board.Move{}, fmt.Errorf("%w: %s", ErrTablebaseUnreachable, resp.Status)
	}

	var body mainlineResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return board.Move{}, fmt.Errorf("%w: %v", ErrTablebaseResponse, err)
	}
	if len(body.Mainline) == 0 {
		return board.Move{}, fmt.Errorf("%w: empty mainline", ErrTablebaseResponse)
	}
	uci := body.Mainline[0].UCI
	if len(uci) == 5 && !strings.HasSuffix(uci, "q") {
		return board.Move{}, fmt.Errorf("%w: under-promotion %q", ErrTablebaseResponse, uci)
	}
	move, err := board.ParseMove(uci)
	if err != nil {
		return board.Move{}, fmt.Errorf("%w: %v", ErrTablebaseResponse, err)
	}
	return move, nil
}

// tablebaseFEN is the position string sent to the tablebase, with the
// castling field always "-".
func tablebaseFEN(b *board.Board, side board.Color) string {
	turn := "w"
	if side == board.Black {
		turn = "b"
	}
	return b.PlacementFEN() + " " + turn + " - - 0 1"
}
