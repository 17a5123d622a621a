package board

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func mustFEN(t *testing.T, fen string) (*Board, Color) {
	t.Helper()
	b, side, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b, side
}

func diffBoards(want, got *Board) string {
	return cmp.Diff(*want, *got, cmp.AllowUnexported(Board{}))
}

func TestNewBoardInvariants(t *testing.T) {
	b := New()
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if b.PieceCount() != 32 {
		t.Errorf("piece count: got %d want 32", b.PieceCount())
	}
	if b.Material() != 0 {
		t.Errorf("material: got %d want 0", b.Material())
	}
	if got := b.King(White); got != MustSquare("e1") {
		t.Errorf("white king cached on %v", got)
	}
	if got := b.King(Black); got != MustSquare("e8") {
		t.Errorf("black king cached on %v", got)
	}
	want := CastleRights{Kingside: true, Queenside: true}
	if b.CastleRights(White) != want || b.CastleRights(Black) != want {
		t.Errorf("castle rights: got %+v / %+v", b.CastleRights(White), b.CastleRights(Black))
	}
}

func TestParseFENStartMatchesNew(t *testing.T) {
	b, side := mustFEN(t, FENStartPos)
	if side != White {
		t.Fatalf("side: got %v want white", side)
	}
	if diff := diffBoards(New(), b); diff != "" {
		t.Fatalf("start position mismatch (-New +ParseFEN):\n%s", diff)
	}
	if got := b.FEN(White); got != FENStartPos {
		t.Errorf("FEN round trip: got %q want %q", got, FENStartPos)
	}
}

func TestParseFENErrors(t *testing.T) {
	cases := []string{
		"",
		"8/8/8/8/8/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K3 x - - 0 1",
		// Digit runs that would wrap a small counter back to a legal width.
		"4k3/" + strings.Repeat("8", 32) + "p7/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range cases {
		if _, _, err := ParseFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q): got %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestFromPiecesPieceCount(t *testing.T) {
	b, err := FromPieces(map[Square]Piece{
		MustSquare("b1"): NewPiece(King, White),
		MustSquare("b5"): NewPiece(Rook, White),
		MustSquare("e4"): NewPiece(Knight, Black),
		MustSquare("f6"): NewPiece(King, Black),
	})
	if err != nil {
		t.Fatalf("FromPieces: %v", err)
	}
	if b.PieceCount() != 4 {
		t.Fatalf("piece count: got %d want 4", b.PieceCount())
	}
	if want := ValueRook - ValueKnight; b.Material() != want {
		t.Fatalf("material: got %d want %d", b.Material(), want)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestFromPiecesRequiresOneKingEach(t *testing.T) {
	_, err := FromPieces(map[Square]Piece{MustSquare("e1"): NewPiece(King, White)})
	if !errors.Is(err, ErrMissingKing) {
		t.Errorf("missing black king: got %v", err)
	}
	_, err = FromPieces(map[Square]Piece{
		MustSquare("e1"): NewPiece(King, White),
		MustSquare("e2"): NewPiece(King, White),
		MustSquare("e8"): NewPiece(King, Black),
	})
	if !errors.Is(err, ErrExtraKing) {
		t.Errorf("two white kings: got %v", err)
	}
}

func TestParseSquare(t *testing.T) {
	sq, err := ParseSquare("e4")
	if err != nil || sq != (Square{X: 4, Y: 3}) {
		t.Fatalf("ParseSquare(e4) = %v, %v", sq, err)
	}
	for _, text := range []string{"", "e", "i1", "a9", "a0", "e44"} {
		if _, err := ParseSquare(text); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q): got %v, want ErrInvalidSquare", text, err)
		}
	}
}

func TestSquareOffsetClamps(t *testing.T) {
	if _, ok := MustSquare("h8").Offset(1, 0); ok {
		t.Error("h8+(1,0) should leave the board")
	}
	if _, ok := MustSquare("a1").Offset(0, -1); ok {
		t.Error("a1+(0,-1) should leave the board")
	}
	if got, ok := MustSquare("b1").Offset(1, 2); !ok || got != MustSquare("c3") {
		t.Errorf("b1+(1,2) = %v, %v", got, ok)
	}
}

func TestParseMove(t *testing.T) {
	for _, text := range []string{"e2e4", "e2 e4", "E2E4"} {
		m, err := ParseMove(text)
		if err != nil || m != (Move{From: MustSquare("e2"), To: MustSquare("e4")}) {
			t.Errorf("ParseMove(%q) = %v, %v", text, m, err)
		}
	}
	if _, err := ParseMove("e2e9"); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("ParseMove(e2e9): got %v", err)
	}
}

// walkRoundTrips plays every legal move to the given depth and checks that
// undoing each one restores the exact prior state.
func walkRoundTrips(t *testing.T, b *Board, side Color, depth int) {
	t.Helper()
	if depth == 0 {
		return
	}
	for _, m := range b.LegalMoves(side) {
		before := b.Clone()
		rec := b.ExecMove(m.From, m.To)
		if err := b.Validate(); err != nil {
			t.Fatalf("after %v: %v", m, err)
		}
		walkRoundTrips(t, b, side.Other(), depth-1)
		b.UnexecMove(m.From, m.To, rec)
		if diff := diffBoards(before, b); diff != "" {
			t.Fatalf("undo %v did not restore the board (-before +after):\n%s", m, diff)
		}
	}
}

func TestExecUnexecRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		kiwipete,
		"n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			b, side := mustFEN(t, fen)
			walkRoundTrips(t, b, side, 2)
		})
	}
}

func TestLegalMovesKeepKingSafe(t *testing.T) {
	fens := []string{
		kiwipete,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/1b6/8/3P4/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		b, side := mustFEN(t, fen)
		for _, m := range b.LegalMoves(side) {
			rec := b.ExecMove(m.From, m.To)
			if b.KingInCheck(side) {
				t.Errorf("%s: %v leaves the %v king in check", fen, m, side)
			}
			b.UnexecMove(m.From, m.To, rec)
		}
	}
}

func TestPinnedPieceCannotMove(t *testing.T) {
	// The d2 pawn is pinned by the b4 bishop.
	b, _ := mustFEN(t, "4k3/8/8/8/1b6/8/3P4/4K3 w - - 0 1")
	for _, m := range b.LegalMoves(White) {
		if m.From == MustSquare("d2") {
			t.Fatalf("pinned pawn produced %v", m)
		}
	}
}

func TestCaptureAndUndoAdjustPieceCount(t *testing.T) {
	b, _ := mustFEN(t, "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	before := b.PieceCount()
	rec := b.ExecMove(MustSquare("e4"), MustSquare("d5"))
	if b.PieceCount() != before-1 {
		t.Fatalf("after capture: got %d want %d", b.PieceCount(), before-1)
	}
	if rec.Captured().Kind != Pawn || rec.Captured().Color != Black {
		t.Fatalf("captured: got %+v", rec.Captured())
	}
	// 100 for the pawn taken plus one rank of advance.
	if rec.Delta() != 101 {
		t.Fatalf("delta: got %d want 101", rec.Delta())
	}
	b.UnexecMove(MustSquare("e4"), MustSquare("d5"), rec)
	if b.PieceCount() != before {
		t.Fatalf("after undo: got %d want %d", b.PieceCount(), before)
	}
}

func TestPromotion(t *testing.T) {
	b, _ := mustFEN(t, "7k/8/5K2/8/8/8/1pP5/8 b - - 0 1")
	from, to := MustSquare("b2"), MustSquare("b1")
	pawnValue := b.PieceAt(from).Value
	before := b.Clone()

	rec := b.ExecMove(from, to)
	got := b.PieceAt(to)
	if got.Kind != Queen || got.Color != Black || got.Value != ValueQueen {
		t.Fatalf("promoted piece: got %+v", got)
	}
	if !rec.Promoted() {
		t.Fatal("record not flagged as promotion")
	}
	if want := before.Material() - (ValueQueen - pawnValue); b.Material() != want {
		t.Fatalf("material: got %d want %d", b.Material(), want)
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	b.UnexecMove(from, to, rec)
	if diff := diffBoards(before, b); diff != "" {
		t.Fatalf("undo promotion (-before +after):\n%s", diff)
	}
}

func TestCastling(t *testing.T) {
	cases := []struct {
		name      string
		king, to  string
		rookFrom  string
		rookTo    string
		kind      CastleKind
		rookValue int32
	}{
		{"kingside", "e1", "g1", "h1", "f1", CastleKingside, ValueRook + kingsideCastleBonus},
		{"queenside", "e1", "c1", "a1", "d1", CastleQueenside, ValueRook + queensideCastleBonus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, _ := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
			m := Move{From: MustSquare(tc.king), To: MustSquare(tc.to)}
			if !b.IsLegal(White, m) {
				t.Fatalf("%v not generated", m)
			}
			before := b.Clone()
			rec := b.ExecMove(m.From, m.To)
			if rec.Castle() != tc.kind {
				t.Fatalf("castle kind: got %v want %v", rec.Castle(), tc.kind)
			}
			rook := b.PieceAt(MustSquare(tc.rookTo))
			if rook.Kind != Rook || rook.Value != tc.rookValue {
				t.Fatalf("rook on %s: got %+v", tc.rookTo, rook)
			}
			if b.Occupied(MustSquare(tc.rookFrom)) {
				t.Fatalf("%s still occupied", tc.rookFrom)
			}
			if b.CastleRights(White) != (CastleRights{}) {
				t.Fatalf("white rights not revoked: %+v", b.CastleRights(White))
			}
			if b.CastleRights(Black) != before.CastleRights(Black) {
				t.Fatalf("black rights changed: %+v", b.CastleRights(Black))
			}
			if err := b.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			b.UnexecMove(m.From, m.To, rec)
			if diff := diffBoards(before, b); diff != "" {
				t.Fatalf("undo castle (-before +after):\n%s", diff)
			}
		})
	}
}

func TestCastlingPreconditions(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		move string
	}{
		{"through attacked square", "4kr2/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1"},
		{"out of check", "4r1k1/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1"},
		{"into attacked square", "4k1r1/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1"},
		{"blocked f-file", "4k3/8/8/8/8/8/8/4KB1R w K - 0 1", "e1g1"},
		{"blocked b-file", "4k3/8/8/8/8/8/8/RN2K3 w Q - 0 1", "e1c1"},
		{"no right", "4k3/8/8/8/8/8/8/4K2R w - - 0 1", "e1g1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, side := mustFEN(t, tc.fen)
			if b.IsLegal(side, MustMove(tc.move)) {
				t.Fatalf("%s should not be legal", tc.move)
			}
		})
	}
}

func TestRookMovesRevokeOwnRights(t *testing.T) {
	b, _ := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1")
	rec := b.ExecMove(MustSquare("h8"), MustSquare("h5"))
	if got := b.CastleRights(Black); got != (CastleRights{Queenside: true}) {
		t.Errorf("black rights after Rh5: %+v", got)
	}
	if got := b.CastleRights(White); got != (CastleRights{Kingside: true, Queenside: true}) {
		t.Errorf("white rights changed by a black rook move: %+v", got)
	}
	b.UnexecMove(MustSquare("h8"), MustSquare("h5"), rec)
	if got := b.CastleRights(Black); got != (CastleRights{Kingside: true, Queenside: true}) {
		t.Errorf("black rights after undo: %+v", got)
	}

	// Capturing a rook on its corner also removes the right.
	b, _ = mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	b.ExecMove(MustSquare("a1"), MustSquare("a8"))
	if got := b.CastleRights(Black); got != (CastleRights{Kingside: true}) {
		t.Errorf("black rights after Rxa8: %+v", got)
	}
	if got := b.CastleRights(White); got != (CastleRights{Kingside: true}) {
		t.Errorf("white rights after Rxa8: %+v", got)
	}
}

func TestPawnAndKnightValuesBackAndForth(t *testing.T) {
	b := New()
	g1, f3 := MustSquare("g1"), MustSquare("f3")

	steps := []struct {
		from, to Square
		value    int32
		material int32
	}{
		{g1, f3, ValueKnight + 6, 6},
		{f3, g1, ValueKnight + 3, 3},
		{g1, f3, ValueKnight + 6, 6},
		{f3, g1, ValueKnight + 3, 3},
		{MustSquare("e2"), MustSquare("e4"), ValuePawn + 2, 5},
		{MustSquare("e4"), MustSquare("e5"), ValuePawn + 3, 6},
		{MustSquare("d7"), MustSquare("d5"), ValuePawn + 2, 4},
	}
	var history []MoveRecord
	for _, s := range steps {
		history = append(history, b.ExecMove(s.from, s.to))
		if got := b.PieceAt(s.to).Value; got != s.value {
			t.Fatalf("%v%v: value got %d want %d", s.from, s.to, got, s.value)
		}
		if b.Material() != s.material {
			t.Fatalf("%v%v: material got %d want %d", s.from, s.to, b.Material(), s.material)
		}
		if err := b.Validate(); err != nil {
			t.Fatalf("%v%v: %v", s.from, s.to, err)
		}
	}
	for i := len(steps) - 1; i >= 0; i-- {
		b.UnexecMove(steps[i].from, steps[i].to, history[i])
	}
	if diff := diffBoards(New(), b); diff != "" {
		t.Fatalf("unwinding did not restore the start (-want +got):\n%s", diff)
	}
}

func TestIsSquareAttacked(t *testing.T) {
	b, _ := mustFEN(t, "4k3/8/8/3q4/8/2n5/5p2/4K3 w - - 0 1")
	cases := []struct {
		sq   string
		want bool
	}{
		{"d1", true},  // queen down the d-file
		{"a2", true},  // queen on the diagonal
		{"e1", true},  // f2 pawn
		{"g1", true},  // f2 pawn
		{"b1", true},  // c3 knight
		{"h1", true},  // long diagonal from d5
		{"h2", false},
		{"f1", false}, // pawn attacks diagonally only
		{"e7", true},  // next to the black king
	}
	for _, tc := range cases {
		if got := b.IsSquareAttacked(MustSquare(tc.sq), White); got != tc.want {
			t.Errorf("attacked(%s) = %v, want %v", tc.sq, got, tc.want)
		}
	}
}

func TestBackRankMate(t *testing.T) {
	b, _ := mustFEN(t, "6k1/5ppp/8/8/8/8/5PPP/r5K1 w - - 0 1")
	if !b.KingInCheck(White) {
		t.Fatal("white should be in check")
	}
	if !b.IsCheckmate(White) {
		t.Fatal("white should be mated")
	}
	if b.IsCheckmate(Black) {
		t.Fatal("black is not mated")
	}
	if got := b.Eval(White); got != -Checkmate {
		t.Errorf("Eval(white) = %d, want %d", got, -Checkmate)
	}
	if got := b.Eval(Black); got != Checkmate {
		t.Errorf("Eval(black) = %d, want %d", got, Checkmate)
	}
}

func TestStalemate(t *testing.T) {
	b, _ := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if !b.IsStalemate(Black) {
		t.Fatal("expected stalemate")
	}
	if b.IsCheckmate(Black) {
		t.Fatal("stalemate reported as mate")
	}
	if got, want := b.Eval(Black), -b.Material(); got != want {
		t.Errorf("Eval(black) = %d, want %d", got, want)
	}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestPreconditionViolationsPanic(t *testing.T) {
	b := New()
	expectPanic(t, "exec from empty square", func() {
		b.ExecMove(MustSquare("e4"), MustSquare("e5"))
	})

	b.squares[MustSquare("e1").index()] = Piece{}
	expectPanic(t, "missing king", func() {
		b.KingInCheck(White)
	})
}

func TestPerftStartPosition(t *testing.T) {
	want := []uint64{1, 20, 400, 8902}
	for depth, nodes := range want {
		if got := Perft(New(), White, depth); got != nodes {
			t.Errorf("perft(%d): got %d want %d", depth, got, nodes)
		}
	}
}

func TestPerftKiwipeteDepthOne(t *testing.T) {
	b, side := mustFEN(t, kiwipete)
	if got := Perft(b, side, 1); got != 48 {
		t.Fatalf("Kiwipete depth1: got %d want 48", got)
	}
	div := PerftDivide(b, side, 1)
	for _, castle := range []string{"e1g1", "e1c1"} {
		if div[MustMove(castle)] != 1 {
			t.Errorf("divide missing %s", castle)
		}
	}
}

func TestTablebaseStylePlacement(t *testing.T) {
	b, _ := mustFEN(t, "8/8/8/8/4p3/1K6/8/1k5R w - - 0 1")
	if got, want := b.PlacementFEN(), "8/8/8/8/4p3/1K6/8/1k5R"; got != want {
		t.Fatalf("placement: got %q want %q", got, want)
	}
	if got, want := b.FEN(Black), "8/8/8/8/4p3/1K6/8/1k5R b - - 0 1"; got != want {
		t.Fatalf("FEN: got %q want %q", got, want)
	}
}
