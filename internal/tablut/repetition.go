package tablut

// RepetitionTable 记录对局中 (棋盘, 走子方) 出现的次数，超过 Allowed 判和。
// 吃子后之前的局面不可能再出现，直接清空。
type RepetitionTable struct {
	Allowed int
	seen    map[uint64]int
}

func NewRepetitionTable(allowed int) *RepetitionTable {
	return &RepetitionTable{Allowed: allowed, seen: make(map[uint64]int)}
}

// Record 在 s 走完一步之后调用；如果触发重复判和，把 s.Turn 改成 Draw 并返回 true。
func (rt *RepetitionTable) Record(s *GameState) bool {
	if s.HasLastAction() && s.CapturedLast() > 0 {
		clear(rt.seen)
	}
	rt.seen[s.Hash]++
	if s.Turn.Terminal() {
		return false
	}
	if rt.seen[s.Hash] > rt.Allowed {
		s.Turn = Draw
		s.Hash = s.CalculateHash()
		return true
	}
	return false
}

func (rt *RepetitionTable) Count(s *GameState) int { return rt.seen[s.Hash] }

func (rt *RepetitionTable) Reset() { clear(rt.seen) }
