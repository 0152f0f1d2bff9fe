package tablut

import "sync"

var (
	zobristOnce sync.Once

	// [cell][sq]，cell 取 CellWhite/CellBlack/CellKing，空格不用
	zobristCells [4][NumSquares]uint64
	zobristBlack uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}
		for _, c := range []Cell{CellWhite, CellBlack, CellKing} {
			for sq := 0; sq < NumSquares; sq++ {
				zobristCells[c][sq] = next()
			}
		}
		zobristBlack = next()
	})
}

func cellHashKey(c Cell, sq Square) uint64 {
	if c == CellEmpty || !sq.Valid() {
		return 0
	}
	return zobristCells[c][sq.Index()]
}

// turnHashKey 只有黑方走时异或一次；终局不区分
func turnHashKey(t Turn) uint64 {
	if t == BlackToMove {
		return zobristBlack
	}
	return 0
}

// CalculateHash 全量计算 (棋盘, 走子方) 的 Zobrist 哈希。
func (s *GameState) CalculateHash() uint64 {
	initZobrist()

	var h uint64
	for idx := 0; idx < NumSquares; idx++ {
		sq := squareAt(idx)
		h ^= cellHashKey(s.Board.At(sq), sq)
	}
	return h ^ turnHashKey(s.Turn)
}
