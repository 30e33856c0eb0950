package pdn

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"checkers-local/board"
)

// FormatMove writes a step as "9-14" and a capture with every landing square
// as "14x23x32".
func FormatMove(m board.Move) string {
	sep := "-"
	if m.Capture {
		sep = "x"
	}
	squares := append([]int{m.From}, m.Path...)
	return strings.Join(lo.Map(squares, func(sq int, _ int) string {
		return strconv.Itoa(SquareNumber(sq))
	}), sep)
}

// FormatMoves writes every move in order.
func FormatMoves(moves []board.Move) []string {
	return lo.Map(moves, func(m board.Move, _ int) string {
		return FormatMove(m)
	})
}

// ParseMove resolves move text against the legal moves of p. A capture may be
// written with only its first and last squares when that picks out a single
// chain.
func ParseMove(p board.Position, forceTakes bool, s string) (board.Move, error) {
	text := strings.TrimSpace(s)
	sep := "-"
	if strings.ContainsAny(text, "xX") {
		sep = "x"
		text = strings.ReplaceAll(text, "X", "x")
	}

	parts := strings.Split(text, sep)
	if len(parts) < 2 {
		return board.Move{}, &ParseError{Input: s, Msg: "need at least two squares"}
	}
	squares := make([]int, 0, len(parts))
	for _, part := range parts {
		sq, err := parseSquare(strings.TrimSpace(part))
		if err != nil {
			return board.Move{}, &ParseError{Input: s, Msg: err.Error()}
		}
		squares = append(squares, sq)
	}

	from, path := squares[0], squares[1:]
	matches := lo.Filter(board.Successors(p, forceTakes), func(m board.Move, _ int) bool {
		if m.From != from || m.Capture != (sep == "x") {
			return false
		}
		if len(path) == 1 {
			return m.To == path[0]
		}
		return slices.Equal(m.Path, path)
	})

	switch len(matches) {
	case 0:
		return board.Move{}, &ParseError{Input: s, Msg: "not a legal move"}
	case 1:
		return matches[0], nil
	}
	return board.Move{}, &ParseError{Input: s, Msg: fmt.Sprintf("ambiguous, %d captures match", len(matches))}
}
