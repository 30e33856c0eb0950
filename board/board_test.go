package board

import (
	"math/rand"
	"testing"

	"github.com/matryer/is"

	"checkers-local/types"
)

var (
	humanMan  = types.MakePiece(types.Human, types.Man)
	humanKing = types.MakePiece(types.Human, types.King)
	aiMan     = types.MakePiece(types.AI, types.Man)
	aiKing    = types.MakePiece(types.AI, types.King)
)

func setup(side types.Owner, pieces map[int]types.Piece) Position {
	p := NewPosition(side)
	for sq, pc := range pieces {
		p = p.WithPiece(sq, pc)
	}
	return p
}

func TestGeometry(t *testing.T) {
	is := is.New(t)

	for sq := 0; sq < NumSquares; sq++ {
		row, col := RowCol(sq)
		is.Equal(SquareAt(row, col), sq)
		is.Equal((row+col)%2, 1) // dark squares only
	}
	is.Equal(SquareAt(0, 0), NoSquare)
	is.Equal(SquareAt(-1, 1), NoSquare)
	is.Equal(SquareAt(8, 1), NoSquare)

	is.Equal(Neighbors(14), [4]int{10, 9, 18, 17})
	is.Equal(Jumps(14), [4]int{7, 5, 23, 21})
	is.Equal(Neighbors(0), [4]int{NoSquare, NoSquare, 5, 4})
	is.Equal(Jumps(0), [4]int{NoSquare, NoSquare, 9, NoSquare})
	is.Equal(Neighbors(31), [4]int{27, 26, NoSquare, NoSquare})
}

func TestPromotionRowFacesHomeRows(t *testing.T) {
	is := is.New(t)
	start := NewStartPosition(types.Human)

	is.Equal(PromotionRow(types.Human), 7)
	is.Equal(PromotionRow(types.AI), 0)
	for sq := 0; sq < NumSquares; sq++ {
		row, _ := RowCol(sq)
		switch start.PieceAt(sq).Owner() {
		case types.Human:
			is.True(row < 3) // human men start far from row 7
		case types.AI:
			is.True(row > 4) // computer men start far from row 0
		}
	}
}

func TestOpeningMoves(t *testing.T) {
	is := is.New(t)
	p := NewStartPosition(types.Human)

	moves := Successors(p, true)
	is.Equal(len(moves), 7)

	var got [][2]int
	for _, m := range moves {
		is.True(!m.Capture)
		is.Equal(m.Next.SideToMove(), types.AI)
		got = append(got, [2]int{m.From, m.To})
	}
	want := [][2]int{{8, 13}, {8, 12}, {9, 14}, {9, 13}, {10, 15}, {10, 14}, {11, 15}}
	is.Equal(got, want)

	is.Equal(len(Successors(NewStartPosition(types.AI), true)), 7)
}

func TestSingleForcedCapture(t *testing.T) {
	is := is.New(t)
	p := setup(types.Human, map[int]types.Piece{13: humanMan, 17: aiMan})

	moves := Successors(p, true)
	is.Equal(len(moves), 1)
	m := moves[0]
	is.True(m.Capture)
	is.Equal(m.From, 13)
	is.Equal(m.To, 22)
	is.Equal(m.Captured, []int{17})
	is.Equal(m.Next.PieceAt(22), humanMan)
	is.True(m.Next.PieceAt(17).IsEmpty())
	is.True(m.Next.PieceAt(13).IsEmpty())
	is.Equal(m.Next.SideToMove(), types.AI)
}

func TestCaptureOptionalWithoutForceTakes(t *testing.T) {
	is := is.New(t)
	p := setup(types.Human, map[int]types.Piece{13: humanMan, 17: aiMan})

	moves := Successors(p, false)
	is.Equal(len(moves), 2)
	is.True(moves[0].Capture) // SE comes before SW
	is.Equal(moves[0].To, 22)
	is.True(!moves[1].Capture)
	is.Equal(moves[1].To, 16)
}

func TestMultiJump(t *testing.T) {
	is := is.New(t)
	p := setup(types.Human, map[int]types.Piece{13: humanMan, 17: aiMan, 26: aiMan})

	moves := Successors(p, true)
	is.Equal(len(moves), 1)
	m := moves[0]
	is.Equal(m.From, 13)
	is.Equal(m.To, 31)
	is.Equal(m.Path, []int{22, 31})
	is.Equal(m.Captured, []int{17, 26})
	is.Equal(m.Next.PieceAt(31), humanKing) // row 7 crowns
	is.Equal(m.Next.Total(types.AI), 0)
	is.Equal(m.Next.SideToMove(), types.AI)
	is.Equal(m.Next.ChainOrigin(), NoSquare)
}

func TestMultiJumpBranches(t *testing.T) {
	is := is.New(t)
	// After 9x18 the man can continue over 22 or over 23.
	p := setup(types.Human, map[int]types.Piece{9: humanMan, 14: aiMan, 22: aiMan, 23: aiMan})

	moves := Successors(p, true)
	is.Equal(len(moves), 2)
	is.Equal(moves[0].Path, []int{18, 27})
	is.Equal(moves[1].Path, []int{18, 25})
	for _, m := range moves {
		is.Equal(len(m.Captured), 2)
		is.Equal(m.Next.Total(types.AI), 1)
	}
}

func TestPromotionHaltsChain(t *testing.T) {
	is := is.New(t)
	// 21x30 crowns on row 7; as a king it could go on over 26 to 23.
	p := setup(types.Human, map[int]types.Piece{21: humanMan, 25: aiMan, 26: aiMan})

	moves := Successors(p, true)
	is.Equal(len(moves), 1)
	m := moves[0]
	is.Equal(m.Path, []int{30})
	is.Equal(m.Next.PieceAt(30), humanKing)
	is.Equal(m.Next.PieceAt(26), aiMan)
	is.Equal(m.Next.SideToMove(), types.AI)
}

func TestKingContinuesChain(t *testing.T) {
	is := is.New(t)
	// A king that was already crowned keeps jumping, backwards included.
	p := setup(types.Human, map[int]types.Piece{21: humanKing, 25: aiMan, 26: aiMan})

	moves := Successors(p, true)
	is.Equal(len(moves), 1)
	is.Equal(moves[0].Path, []int{30, 23})
	is.Equal(moves[0].Next.Total(types.AI), 0)
}

func TestKingMobility(t *testing.T) {
	is := is.New(t)
	p := setup(types.AI, map[int]types.Piece{14: aiKing})

	moves := Successors(p, true)
	is.Equal(len(moves), 4)
	var dests []int
	for _, m := range moves {
		dests = append(dests, m.To)
		is.Equal(m.Next.PieceAt(m.To), aiKing)
	}
	is.Equal(dests, []int{10, 9, 18, 17})
}

func TestAIManMovesTowardRowZero(t *testing.T) {
	is := is.New(t)
	p := setup(types.AI, map[int]types.Piece{5: aiMan})

	moves := Successors(p, true)
	is.Equal(len(moves), 2)
	for _, m := range moves {
		row, _ := RowCol(m.To)
		is.Equal(row, 0)
		is.Equal(m.Next.PieceAt(m.To), aiKing)
	}
}

func TestTerminalDetection(t *testing.T) {
	is := is.New(t)
	p := setup(types.Human, map[int]types.Piece{0: humanMan, 4: aiMan, 5: aiMan, 9: aiMan})

	is.Equal(len(Successors(p, true)), 0)
	is.True(p.IsTerminal())
	is.Equal(p.Winner(), types.AI)

	is.True(!NewStartPosition(types.Human).IsTerminal())
	is.Equal(NewStartPosition(types.Human).Winner(), types.NoOwner)

	noPieces := setup(types.AI, map[int]types.Piece{3: humanMan})
	is.True(noPieces.IsTerminal())
	is.Equal(noPieces.Winner(), types.Human)
}

func TestChainOrigin(t *testing.T) {
	is := is.New(t)
	p := setup(types.Human, map[int]types.Piece{
		13: humanMan, 17: aiMan,
		8: humanMan,
	}).WithChainOrigin(13)

	moves := Successors(p, false)
	is.Equal(len(moves), 1) // only the chain piece, only captures
	is.Equal(moves[0].From, 13)
	is.Equal(moves[0].Next.ChainOrigin(), NoSquare)

	stuck := setup(types.Human, map[int]types.Piece{13: humanMan, 8: humanMan}).WithChainOrigin(13)
	is.Equal(len(Successors(stuck, false)), 0)
	is.True(stuck.IsTerminal())

	wrong := setup(types.Human, map[int]types.Piece{13: aiMan}).WithChainOrigin(13)
	is.Equal(len(Successors(wrong, true)), 0)
}

func TestPositionsAreValues(t *testing.T) {
	is := is.New(t)
	p := NewStartPosition(types.Human)
	before := p

	moves := Successors(p, true)
	is.True(len(moves) > 0)
	is.Equal(p, before)
	is.True(moves[0].Next != p)

	q := p.WithPiece(11, types.Empty)
	is.Equal(p.PieceAt(11), humanMan)
	is.True(q.PieceAt(11).IsEmpty())
}

func TestCountPieces(t *testing.T) {
	is := is.New(t)
	p := setup(types.AI, map[int]types.Piece{1: humanMan, 2: humanKing, 3: humanKing, 30: aiMan})

	is.Equal(p.CountPieces(types.Human, types.Man), 1)
	is.Equal(p.CountPieces(types.Human, types.King), 2)
	is.Equal(p.CountPieces(types.AI, types.Man), 1)
	is.Equal(p.CountPieces(types.AI, types.King), 0)
	is.Equal(p.Total(types.Human), 3)
}

func TestMirrorSymmetry(t *testing.T) {
	is := is.New(t)
	positions := []Position{
		NewStartPosition(types.Human),
		setup(types.Human, map[int]types.Piece{13: humanMan, 17: aiMan, 26: aiMan}),
		setup(types.AI, map[int]types.Piece{14: aiKing, 9: humanMan, 18: humanKing}),
		setup(types.Human, map[int]types.Piece{21: humanMan, 25: aiMan, 26: aiMan}),
	}
	for _, p := range positions {
		m := p.Mirror()
		is.Equal(m.Mirror(), p)

		want := map[Position]bool{}
		for _, mv := range Successors(p, true) {
			want[mv.Next.Mirror()] = true
		}
		got := map[Position]bool{}
		for _, mv := range Successors(m, true) {
			got[mv.Next] = true
		}
		is.Equal(got, want)
	}
}

func TestRandomPlayoutInvariants(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(7))

	for game := 0; game < 40; game++ {
		forceTakes := game%2 == 0
		p := NewStartPosition(types.Owner(game % 2))
		for ply := 0; ply < 200; ply++ {
			moves := Successors(p, forceTakes)
			is.Equal(len(moves) == 0, p.IsTerminal())
			if len(moves) == 0 {
				break
			}

			anyCapture := false
			for _, m := range moves {
				anyCapture = anyCapture || m.Capture
			}
			if forceTakes && anyCapture {
				for _, m := range moves {
					is.True(m.Capture)
				}
			}

			m := moves[rng.Intn(len(moves))]
			next := m.Next
			is.True(next.Total(types.Human) <= p.Total(types.Human))
			is.True(next.Total(types.AI) <= p.Total(types.AI))
			is.True(next.Total(types.Human) <= 12)
			is.True(next.Total(types.AI) <= 12)
			is.Equal(next.ChainOrigin(), NoSquare)
			is.Equal(next.SideToMove(), p.SideToMove().Opponent())
			is.Equal(len(m.Captured), p.Total(p.SideToMove().Opponent())-next.Total(p.SideToMove().Opponent()))

			for col := 0; col < Size; col++ {
				if sq := SquareAt(7, col); sq != NoSquare {
					is.True(next.PieceAt(sq) != humanMan)
				}
				if sq := SquareAt(0, col); sq != NoSquare {
					is.True(next.PieceAt(sq) != aiMan)
				}
			}
			p = next
		}
	}
}

func TestMoveString(t *testing.T) {
	is := is.New(t)
	p := setup(types.Human, map[int]types.Piece{13: humanMan, 17: aiMan, 26: aiMan})
	is.Equal(Successors(p, true)[0].String(), "13x22x31")
	is.Equal(Successors(NewStartPosition(types.Human), true)[0].String(), "8-13")
}
