package engine

import (
	"errors"
	"fmt"
	"log"
	"time"

	"chengine/board"
)

// ErrNoLegalMoves is returned when asked to move in a finished game.
var ErrNoLegalMoves = errors.New("no legal moves")

// SearchResult is the outcome of a fixed-depth search.
type SearchResult struct {
	Score   int32
	Move    board.Move
	PV      PVLine
	Depth   int
	Stats   SearchStats
	Elapsed time.Duration
}

// Search runs negamax to the given depth for side and returns the best move.
// The board is not modified. A position without legal moves for side is
// reported as ErrNoLegalMoves.
func Search(b *board.Board, side board.Color, depth int, logger *log.Logger) (SearchResult, error) {
	if logger == nil {
		logger = discardLogger()
	}
	if depth < 1 {
		depth = 1
	}
	if !b.HasLegalMoves(side) {
		state := "stalemate"
		if b.KingInCheck(side) {
			state = "checkmate"
		}
		return SearchResult{}, fmt.Errorf("%w: %v is in %s", ErrNoLegalMoves, side, state)
	}

	var s searcher
	start := time.Now()
	score, pv := s.negamaxWithMove(b, side, depth)
	elapsed := time.Since(start)

	ms := elapsed.Milliseconds()
	if ms == 0 {
		ms = 1
	}
	logger.Println(
		"info depth", depth,
		"score", FormatScore(score),
		"nodes", s.stats.TotalNodes(),
		"time", ms,
		"nps", s.stats.TotalNodes()*1000/uint64(ms),
		"pv", pv.String(),
	)
	s.stats.dump(logger)

	return SearchResult{
		Score:   score,
		Move:    pv.Moves[0],
		PV:      pv,
		Depth:   depth,
		Stats:   s.stats,
		Elapsed: elapsed,
	}, nil
}

type searcher struct {
	stats SearchStats
}

// negamaxWithMove is the root driver. Every candidate is played on its own
// clone so the caller's board is never touched; below the root one board is
// shared through ExecMove/UnexecMove.
func (s *searcher) negamaxWithMove(b *board.Board, side board.Color, depth int) (int32, PVLine) {
	alpha, beta := -MaxScore, MaxScore
	bestScore := -MaxScore
	var best, child PVLine

	moves := b.LegalMoves(side)
	orderMoves(b, moves)
	for _, move := range moves {
		pos := b.Clone()
		pos.ExecMove(move.From, move.To)
		child.Clear()
		score := -s.negamax(pos, side.Other(), -beta, -alpha, depth-1, 1, &child)

		if score > bestScore || len(best.Moves) == 0 {
			bestScore = score
			best.Update(move, child)
		}
		if score > alpha {
			alpha = score
			if alpha >= beta {
				s.stats.BetaCutoffs++
				break
			}
		}
	}
	return bestScore, best
}

// negamax is a fail-soft alpha-beta search over a shared board. Each move is
// undone before its score is examined, so breaking out of the loop always
// leaves the board as it was on entry.
func (s *searcher) negamax(b *board.Board, side board.Color, alpha, beta int32, depth, ply int, pvLine *PVLine) int32 {
	if depth <= 0 {
		return s.quiescence(b, side, alpha, beta, ply)
	}
	s.stats.Nodes++

	moves := b.LegalMoves(side)
	if len(moves) == 0 {
		if b.KingInCheck(side) {
			s.stats.MatesFound++
			return -board.Checkmate + int32(ply)
		}
		return board.DrawScore
	}
	orderMoves(b, moves)

	bestScore := -MaxScore
	var childPV PVLine
	for _, move := range moves {
		rec := b.ExecMove(move.From, move.To)
		score := -s.negamax(b, side.Other(), -beta, -alpha, depth-1, ply+1, &childPV)
		b.UnexecMove(move.From, move.To, rec)

		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
			pvLine.Update(move, childPV)
			if alpha >= beta {
				s.stats.BetaCutoffs++
				break
			}
		}
		childPV.Clear()
	}
	return bestScore
}

// quiescence extends the search through captures only. Standing pat at or
// above beta returns beta. There is no depth limit: every capture removes a
// piece.
func (s *searcher) quiescence(b *board.Board, side board.Color, alpha, beta int32, ply int) int32 {
	s.stats.QNodes++

	standPat := evaluate(b, side, ply)
	if standPat >= beta {
		s.stats.QStandPatCutoffs++
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	bestScore := standPat
	for _, move := range captureMoves(b, b.LegalMoves(side)) {
		rec := b.ExecMove(move.From, move.To)
		score := -s.quiescence(b, side.Other(), -beta, -alpha, ply+1)
		b.UnexecMove(move.From, move.To, rec)

		if score > bestScore {
			bestScore = score
		}
		if score > alpha {
			alpha = score
			if alpha >= beta {
				s.stats.QBetaCutoffs++
				break
			}
		}
	}
	return bestScore
}

// evaluate is Board.Eval with mate scores pulled toward zero by the distance
// from the root, so nearer mates are preferred.
func evaluate(b *board.Board, side board.Color, ply int) int32 {
	score := b.Eval(side)
	switch score {
	case board.Checkmate:
		return score - int32(ply)
	case -board.Checkmate:
		return score + int32(ply)
	}
	return score
}
