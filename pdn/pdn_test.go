package pdn

import (
	"errors"
	"testing"

	"checkers-local/board"
	"checkers-local/types"
)

func TestSquareNumbers(t *testing.T) {
	tests := []struct {
		sq, n int
	}{
		{0, 1},
		{13, 14},
		{31, 32},
	}
	for _, tt := range tests {
		if got := SquareNumber(tt.sq); got != tt.n {
			t.Errorf("SquareNumber(%d) = %d, want %d", tt.sq, got, tt.n)
		}
		if got := SquareIndex(tt.n); got != tt.sq {
			t.Errorf("SquareIndex(%d) = %d, want %d", tt.n, got, tt.sq)
		}
	}
	for _, n := range []int{0, 33, -4} {
		if got := SquareIndex(n); got != board.NoSquare {
			t.Errorf("SquareIndex(%d) = %d, want NoSquare", n, got)
		}
	}
}

func TestFormatFENStart(t *testing.T) {
	got := FormatFEN(board.NewStartPosition(types.Human))
	want := "B:B1,2,3,4,5,6,7,8,9,10,11,12:W21,22,23,24,25,26,27,28,29,30,31,32"
	if got != want {
		t.Errorf("FormatFEN(start) = %q, want %q", got, want)
	}
}

func TestParseFEN(t *testing.T) {
	p, err := ParseFEN("W:B14,K10:W18,K30.")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if p.SideToMove() != types.AI {
		t.Errorf("side = %v, want ai", p.SideToMove())
	}
	checks := map[int]types.Piece{
		13: types.MakePiece(types.Human, types.Man),
		9:  types.MakePiece(types.Human, types.King),
		17: types.MakePiece(types.AI, types.Man),
		29: types.MakePiece(types.AI, types.King),
	}
	for sq, want := range checks {
		if got := p.PieceAt(sq); got != want {
			t.Errorf("square %d = %v, want %v", SquareNumber(sq), got, want)
		}
	}
	if p.Total(types.Human)+p.Total(types.AI) != 4 {
		t.Errorf("expected 4 pieces, board:\n%s", p)
	}
}

func TestParseFENRanges(t *testing.T) {
	p, err := ParseFEN("B:B1-12:W21-32")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if p != board.NewStartPosition(types.Human) {
		t.Errorf("range FEN did not give the opening position:\n%s", p)
	}
}

func TestFENRoundTrip(t *testing.T) {
	positions := []string{
		"B:B1,2,K10:W21,K30",
		"W:B:W5,K6",
		"B:BK29:W",
	}
	for _, s := range positions {
		p, err := ParseFEN(s)
		if err != nil {
			t.Errorf("ParseFEN(%q): %v", s, err)
			continue
		}
		if got := FormatFEN(p); got != s {
			t.Errorf("FormatFEN(ParseFEN(%q)) = %q", s, got)
		}
	}
}

func TestParseFENErrors(t *testing.T) {
	bad := []string{
		"",
		"X:B1:W32",
		"B:Q1",
		"B:B0",
		"B:B33",
		"B:B1,1",
		"B:B1:W1",
		"B:B29",   // black man on its crowning row
		"B:W2",    // white man on its crowning row
		"B:B1-13", // thirteen pieces
		"B:B12-3",
		"B:Bx",
	}
	for _, s := range bad {
		_, err := ParseFEN(s)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("ParseFEN(%q) error = %v, want *ParseError", s, err)
		}
	}
}

func TestFormatMove(t *testing.T) {
	start := board.NewStartPosition(types.Human)
	if got := FormatMove(board.Successors(start, true)[0]); got != "9-14" {
		t.Errorf("first opening move = %q, want 9-14", got)
	}

	p, _ := ParseFEN("B:B14:W18,27")
	moves := board.Successors(p, true)
	if len(moves) != 1 {
		t.Fatalf("expected one capture, got %d", len(moves))
	}
	if got := FormatMove(moves[0]); got != "14x23x32" {
		t.Errorf("capture = %q, want 14x23x32", got)
	}

	list := FormatMoves(board.Successors(start, true)[:2])
	if len(list) != 2 || list[1] != "9-13" {
		t.Errorf("FormatMoves = %v", list)
	}
}

func TestParseMove(t *testing.T) {
	start := board.NewStartPosition(types.Human)
	m, err := ParseMove(start, true, "11-15")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m.From != 10 || m.To != 14 {
		t.Errorf("11-15 parsed as %d-%d", m.From, m.To)
	}

	p, _ := ParseFEN("B:B14:W18,27")
	for _, s := range []string{"14x23x32", "14x32", "14X32"} {
		m, err := ParseMove(p, true, s)
		if err != nil {
			t.Errorf("ParseMove(%q): %v", s, err)
			continue
		}
		if m.To != 31 || len(m.Captured) != 2 {
			t.Errorf("ParseMove(%q) = %+v", s, m)
		}
	}
}

func TestParseMoveErrors(t *testing.T) {
	start := board.NewStartPosition(types.Human)
	bad := []string{
		"9",
		"9-18",
		"21-17", // white piece
		"9x14",  // a step written as a capture
		"a-b",
	}
	for _, s := range bad {
		if _, err := ParseMove(start, true, s); err == nil {
			t.Errorf("ParseMove(%q) should fail", s)
		}
	}

	// Forced capture: the step is not legal.
	p, _ := ParseFEN("B:B9,14:W18")
	if _, err := ParseMove(p, true, "9-13"); err == nil {
		t.Error("step accepted while a capture is forced")
	}
	if _, err := ParseMove(p, false, "9-13"); err != nil {
		t.Errorf("step rejected without forced captures: %v", err)
	}
}

func TestParseMoveAmbiguous(t *testing.T) {
	// The king on 10 can loop round the four men either way and land back on
	// 10, so "10x10" names two chains.
	p := board.NewPosition(types.Human).
		WithPiece(9, types.MakePiece(types.Human, types.King)).
		WithPiece(13, types.MakePiece(types.AI, types.Man)).
		WithPiece(14, types.MakePiece(types.AI, types.Man)).
		WithPiece(21, types.MakePiece(types.AI, types.Man)).
		WithPiece(22, types.MakePiece(types.AI, types.Man))

	ends := map[int]int{}
	for _, m := range board.Successors(p, true) {
		ends[m.To]++
	}
	if ends[9] != 2 {
		t.Fatalf("expected two loops back to 10, got %v", ends)
	}
	for to, n := range ends {
		if n < 2 {
			continue
		}
		short := FormatMove(board.Move{From: 9, Path: []int{to}, Capture: true})
		_, err := ParseMove(p, true, short)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("ParseMove(%q) error = %v, want ambiguity", short, err)
		}
	}
}
