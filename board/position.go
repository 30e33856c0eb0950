package board

import (
	"strings"

	"checkers-local/types"
)

// Position is an immutable snapshot of a game: piece layout, side to move and
// the square a multi-jump must continue from. Positions are plain values and
// compare with ==.
type Position struct {
	squares [NumSquares]types.Piece
	side    types.Owner
	chain   int8
}

// NewPosition returns an empty board with side to move.
func NewPosition(side types.Owner) Position {
	return Position{side: side, chain: NoSquare}
}

// NewStartPosition returns the standard opening layout. Human men fill
// squares 0-11, AI men fill squares 20-31.
func NewStartPosition(first types.Owner) Position {
	p := NewPosition(first)
	for sq := 0; sq < 12; sq++ {
		p.squares[sq] = types.MakePiece(types.Human, types.Man)
	}
	for sq := 20; sq < NumSquares; sq++ {
		p.squares[sq] = types.MakePiece(types.AI, types.Man)
	}
	return p
}

// WithPiece returns a copy of p with sq set to piece.
func (p Position) WithPiece(sq int, piece types.Piece) Position {
	p.squares[sq] = piece
	return p
}

// WithChainOrigin returns a copy of p in which the side to move must continue
// capturing from sq. NoSquare clears it.
func (p Position) WithChainOrigin(sq int) Position {
	p.chain = int8(sq)
	return p
}

// WithSideToMove returns a copy of p with a different side to move.
func (p Position) WithSideToMove(side types.Owner) Position {
	p.side = side
	return p
}

func (p Position) PieceAt(sq int) types.Piece {
	if sq < 0 || sq >= NumSquares {
		return types.Empty
	}
	return p.squares[sq]
}

func (p Position) SideToMove() types.Owner {
	return p.side
}

// ChainOrigin returns the square a capture chain must continue from, or
// NoSquare.
func (p Position) ChainOrigin() int {
	return int(p.chain)
}

// CountPieces counts pieces of the given owner and rank.
func (p Position) CountPieces(owner types.Owner, rank types.Rank) int {
	want := types.MakePiece(owner, rank)
	n := 0
	for _, pc := range p.squares {
		if pc == want {
			n++
		}
	}
	return n
}

// Total returns the number of pieces owner has on the board.
func (p Position) Total(owner types.Owner) int {
	return p.CountPieces(owner, types.Man) + p.CountPieces(owner, types.King)
}

// IsTerminal reports whether the side to move has no legal move.
func (p Position) IsTerminal() bool {
	return !HasMoves(p)
}

// Winner returns the side that won a terminal position, NoOwner otherwise.
func (p Position) Winner() types.Owner {
	if !p.IsTerminal() {
		return types.NoOwner
	}
	return p.side.Opponent()
}

// Mirror rotates the board half a turn and swaps the owners of every piece and
// the side to move. Legal moves map one to one onto the mirrored position.
func (p Position) Mirror() Position {
	m := NewPosition(p.side.Opponent())
	for sq, pc := range p.squares {
		m.squares[NumSquares-1-sq] = pc.SwapOwner()
	}
	if p.chain != NoSquare {
		m.chain = int8(NumSquares - 1 - int(p.chain))
	}
	return m
}

// String draws the board with h/H for human men/kings and a/A for AI ones.
func (p Position) String() string {
	var b strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sq := SquareAt(row, col)
			if sq == NoSquare {
				b.WriteByte(' ')
				continue
			}
			b.WriteByte(pieceChar(p.squares[sq]))
		}
		b.WriteByte('\n')
	}
	b.WriteString("to move: ")
	b.WriteString(p.side.String())
	if p.chain != NoSquare {
		b.WriteString(" (chain)")
	}
	return b.String()
}

func pieceChar(pc types.Piece) byte {
	switch pc {
	case types.MakePiece(types.Human, types.Man):
		return 'h'
	case types.MakePiece(types.Human, types.King):
		return 'H'
	case types.MakePiece(types.AI, types.Man):
		return 'a'
	case types.MakePiece(types.AI, types.King):
		return 'A'
	}
	return '.'
}
