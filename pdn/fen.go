// Package pdn reads and writes Portable Draughts Notation: FEN position
// strings and move text.
//
// Squares are numbered 1-32, one more than the board index. Black is the side
// whose men start on squares 1-12 (the human), White is the computer.
package pdn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"checkers-local/board"
	"checkers-local/types"
)

const maxPieces = 12

// ParseError reports text that could not be read.
type ParseError struct {
	Input string
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pdn: %s in %q", e.Msg, e.Input)
}

// SquareNumber converts a board index to its PDN number.
func SquareNumber(sq int) int {
	return sq + 1
}

// SquareIndex converts a PDN square number to a board index.
// Returns board.NoSquare when n is out of range.
func SquareIndex(n int) int {
	if n < 1 || n > board.NumSquares {
		return board.NoSquare
	}
	return n - 1
}

func colorLetter(o types.Owner) string {
	if o == types.AI {
		return "W"
	}
	return "B"
}

func letterColor(s string) (types.Owner, bool) {
	switch strings.ToUpper(s) {
	case "B":
		return types.Human, true
	case "W":
		return types.AI, true
	}
	return types.NoOwner, false
}

// FormatFEN writes p as "B:B1,2,K10:W21,K30". The chain origin is not
// represented.
func FormatFEN(p board.Position) string {
	var b strings.Builder
	b.WriteString(colorLetter(p.SideToMove()))
	for _, owner := range []types.Owner{types.Human, types.AI} {
		b.WriteByte(':')
		b.WriteString(colorLetter(owner))
		var squares []int
		for sq := 0; sq < board.NumSquares; sq++ {
			if pc := p.PieceAt(sq); !pc.IsEmpty() && pc.Owner() == owner {
				squares = append(squares, sq)
			}
		}
		b.WriteString(strings.Join(lo.Map(squares, func(sq int, _ int) string {
			n := strconv.Itoa(SquareNumber(sq))
			if p.PieceAt(sq).Rank() == types.King {
				return "K" + n
			}
			return n
		}), ","))
	}
	return b.String()
}

// ParseFEN reads a FEN string. Square ranges such as "1-12" are accepted.
func ParseFEN(s string) (board.Position, error) {
	text := strings.TrimSuffix(strings.TrimSpace(s), ".")
	fail := func(format string, args ...any) (board.Position, error) {
		return board.Position{}, &ParseError{Input: s, Msg: fmt.Sprintf(format, args...)}
	}

	fields := strings.Split(text, ":")
	if len(fields) < 1 || fields[0] == "" {
		return fail("missing side to move")
	}
	side, ok := letterColor(strings.TrimSpace(fields[0]))
	if !ok {
		return fail("bad side to move %q", fields[0])
	}

	p := board.NewPosition(side)
	seen := map[int]bool{}
	count := map[types.Owner]int{}
	for _, field := range fields[1:] {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		owner, ok := letterColor(field[:1])
		if !ok {
			return fail("bad colour %q", field[:1])
		}
		for _, tok := range strings.Split(field[1:], ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			rank := types.Man
			if tok[0] == 'K' || tok[0] == 'k' {
				rank = types.King
				tok = tok[1:]
			}
			squares, err := parseSquares(tok)
			if err != nil {
				return fail("%v", err)
			}
			for _, sq := range squares {
				if seen[sq] {
					return fail("square %d listed twice", SquareNumber(sq))
				}
				seen[sq] = true
				if rank == types.Man && sq/4 == board.PromotionRow(owner) {
					return fail("man on promotion square %d", SquareNumber(sq))
				}
				count[owner]++
				if count[owner] > maxPieces {
					return fail("more than %d pieces for %s", maxPieces, colorLetter(owner))
				}
				p = p.WithPiece(sq, types.MakePiece(owner, rank))
			}
		}
	}
	return p, nil
}

// parseSquares reads "17" or "1-12" as board indexes.
func parseSquares(tok string) ([]int, error) {
	first, last := tok, tok
	if i := strings.IndexByte(tok, '-'); i >= 0 {
		first, last = tok[:i], tok[i+1:]
	}
	a, err := parseSquare(first)
	if err != nil {
		return nil, err
	}
	b, err := parseSquare(last)
	if err != nil {
		return nil, err
	}
	if b < a {
		return nil, fmt.Errorf("bad square range %q", tok)
	}
	out := make([]int, 0, b-a+1)
	for sq := a; sq <= b; sq++ {
		out = append(out, sq)
	}
	return out, nil
}

func parseSquare(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return board.NoSquare, fmt.Errorf("bad square %q", s)
	}
	sq := SquareIndex(n)
	if sq == board.NoSquare {
		return board.NoSquare, fmt.Errorf("square %d out of range", n)
	}
	return sq, nil
}
