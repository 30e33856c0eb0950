// Package board holds the checkers position model and the legal move generator.
package board

import "checkers-local/types"

const (
	NumSquares = 32
	Size       = 8
	NoSquare   = -1
)

// Diagonal directions in generation order. North is toward row 0, east is
// toward column 7.
const (
	NE = iota
	NW
	SE
	SW
	numDirs
)

var dirDelta = [numDirs][2]int{
	NE: {-1, 1},
	NW: {-1, -1},
	SE: {1, 1},
	SW: {1, -1},
}

var (
	neighbor [NumSquares][numDirs]int
	jump     [NumSquares][numDirs]int
)

func init() {
	for sq := 0; sq < NumSquares; sq++ {
		row, col := RowCol(sq)
		for d := 0; d < numDirs; d++ {
			dr, dc := dirDelta[d][0], dirDelta[d][1]
			neighbor[sq][d] = SquareAt(row+dr, col+dc)
			jump[sq][d] = SquareAt(row+2*dr, col+2*dc)
		}
	}
}

// RowCol returns the grid row and column of a dark square.
func RowCol(sq int) (row, col int) {
	row = sq / 4
	col = 2*(sq%4) + 1 - row%2
	return row, col
}

// SquareAt returns the dark square index at row, col, or NoSquare for light
// squares and cells off the board.
func SquareAt(row, col int) int {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return NoSquare
	}
	if (row+col)%2 == 0 {
		return NoSquare
	}
	return row*4 + col/2
}

// Neighbors returns the one-step diagonal neighbors of sq in direction order,
// NoSquare where the board ends.
func Neighbors(sq int) [4]int {
	return neighbor[sq]
}

// Jumps returns the two-step landing squares of sq in direction order.
func Jumps(sq int) [4]int {
	return jump[sq]
}

// PosOf converts a square index to a grid position.
func PosOf(sq int) types.BoardPos {
	row, col := RowCol(sq)
	return types.BoardPos{X: col, Y: row}
}

// PromotionRow is the row on which a man of owner becomes a king. Human men
// start on squares 0-11 and advance toward row 7; the computer's advance
// toward row 0.
func PromotionRow(owner types.Owner) int {
	if owner == types.Human {
		return Size - 1
	}
	return 0
}

// forward reports whether direction d moves a man of owner toward its
// promotion row.
func forward(owner types.Owner, d int) bool {
	if owner == types.Human {
		return d == SE || d == SW
	}
	return d == NE || d == NW
}

func canMove(p types.Piece, d int) bool {
	return p.Rank() == types.King || forward(p.Owner(), d)
}
