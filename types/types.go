// Package types contains shared data structures for checkers-local.
package types

// Owner identifies which side a piece belongs to or which side is to move.
type Owner int8

const (
	NoOwner Owner = -1
	Human   Owner = 0
	AI      Owner = 1
)

// Opponent returns the other side. NoOwner has no opponent.
func (o Owner) Opponent() Owner {
	switch o {
	case Human:
		return AI
	case AI:
		return Human
	}
	return NoOwner
}

func (o Owner) String() string {
	switch o {
	case Human:
		return "human"
	case AI:
		return "ai"
	}
	return "none"
}

// Rank of a piece. Men move forward only; kings move in all four diagonals.
type Rank int8

const (
	Man  Rank = 0
	King Rank = 1
)

func (r Rank) String() string {
	if r == King {
		return "king"
	}
	return "man"
}

// Piece is 0 for an empty square, otherwise 1 + owner*2 + rank.
type Piece uint8

const Empty Piece = 0

// MakePiece builds a piece. NoOwner yields Empty.
func MakePiece(owner Owner, rank Rank) Piece {
	if owner == NoOwner {
		return Empty
	}
	return Piece(1 + uint8(owner)*2 + uint8(rank))
}

func (p Piece) IsEmpty() bool {
	return p == Empty
}

func (p Piece) Owner() Owner {
	if p == Empty {
		return NoOwner
	}
	return Owner((p - 1) / 2)
}

func (p Piece) Rank() Rank {
	if p == Empty {
		return Man
	}
	return Rank((p - 1) % 2)
}

// Promote returns the king of the same owner.
func (p Piece) Promote() Piece {
	if p == Empty {
		return Empty
	}
	return MakePiece(p.Owner(), King)
}

// SwapOwner returns the same rank for the other side.
func (p Piece) SwapOwner() Piece {
	if p == Empty {
		return Empty
	}
	return MakePiece(p.Owner().Opponent(), p.Rank())
}

func (p Piece) String() string {
	if p == Empty {
		return "empty"
	}
	return p.Owner().String() + " " + p.Rank().String()
}

// BoardPos represents a cell on the full 8x8 grid, light squares included.
// X is the column (0-7, left to right), Y is the row (0-7, top to bottom).
type BoardPos struct {
	X int
	Y int
}
