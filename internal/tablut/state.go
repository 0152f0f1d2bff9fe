package tablut

import (
	"errors"
	"fmt"
)

// GameState = 棋盘 + 轮次 + 双方的可走表。
//
// whiteMoves / blackMoves 的 key 恰好是该方存活棋子所在的格子（王算白方），
// value 是它现在能走到的格子；子数直接用 len(map)，不另外存。
// value 切片刷新时整块替换、从不原地修改，所以 Clone 时可以共享。
type GameState struct {
	Board      Board
	Turn       Turn
	KingSquare Square
	TurnNumber int
	LastAction Action
	Hash       uint64

	// 上一步之前的子数，评估函数用来看这步有没有吃子
	PrevWhiteCount int
	PrevBlackCount int

	whiteMoves map[Square][]Square
	blackMoves map[Square][]Square
}

// NewInitialState 标准开局，白先
func NewInitialState() *GameState {
	return NewState(NewInitialBoard(), WhiteToMove)
}

// NewState 从任意盘面构造局面，重建双方可走表。
func NewState(b Board, turn Turn) *GameState {
	s := &GameState{
		Board:      b,
		Turn:       turn,
		KingSquare: NoSquare,
		LastAction: noAction,
		whiteMoves: make(map[Square][]Square, 9),
		blackMoves: make(map[Square][]Square, 16),
	}
	for idx := 0; idx < NumSquares; idx++ {
		sq := squareAt(idx)
		switch b.At(sq) {
		case CellKing:
			s.KingSquare = sq
			s.whiteMoves[sq] = nil
		case CellWhite:
			s.whiteMoves[sq] = nil
		case CellBlack:
			s.blackMoves[sq] = nil
		}
	}
	s.RefreshAll(White)
	s.RefreshAll(Black)
	s.PrevWhiteCount = s.WhiteCount()
	s.PrevBlackCount = s.BlackCount()
	s.Hash = s.CalculateHash()
	return s
}

// Clone 深拷贝棋盘和两张可走表；搜索每个分支都用自己的副本。
func (s *GameState) Clone() *GameState {
	ns := *s
	ns.whiteMoves = make(map[Square][]Square, len(s.whiteMoves))
	for k, v := range s.whiteMoves {
		ns.whiteMoves[k] = v
	}
	ns.blackMoves = make(map[Square][]Square, len(s.blackMoves))
	for k, v := range s.blackMoves {
		ns.blackMoves[k] = v
	}
	return &ns
}

func (s *GameState) movesOf(side Side) map[Square][]Square {
	if side == Black {
		return s.blackMoves
	}
	return s.whiteMoves
}

func (s *GameState) WhiteCount() int { return len(s.whiteMoves) }
func (s *GameState) BlackCount() int { return len(s.blackMoves) }

func (s *GameState) Count(side Side) int { return len(s.movesOf(side)) }

func (s *GameState) IsTerminal() bool { return s.Turn.Terminal() }

// HasLastAction 开局局面没有上一步
func (s *GameState) HasLastAction() bool { return !s.LastAction.IsZero() }

// Destinations 计算 from 上的棋子四个方向能到的空格。
// 遇到有子的格、王座、或者不属于自己营地组的营地就停，和 Check 的路径规则一致。
func (s *GameState) Destinations(from Square) []Square {
	var out []Square
	home := CitadelCluster(from)
	for _, d := range directions {
		for to := from.Step(d, 1); to.Valid(); to = to.Step(d, 1) {
			if s.Board.At(to) != CellEmpty {
				break
			}
			cls := Classify(to)
			if cls == ThroneSquare {
				break
			}
			if cls == Citadel && CitadelCluster(to) != home {
				break
			}
			out = append(out, to)
		}
	}
	return out
}

// CachedDestinations 可走表里记录的落点；不是该方棋子返回 nil
func (s *GameState) CachedDestinations(from Square) []Square {
	if v, ok := s.whiteMoves[from]; ok {
		return v
	}
	return s.blackMoves[from]
}

// RefreshAll 重算一方所有棋子的落点（对方走子可能挡住或放开任何一条线）
func (s *GameState) RefreshAll(side Side) {
	m := s.movesOf(side)
	for from := range m {
		m[from] = s.Destinations(from)
	}
}

// RemoveCaptured 把已经不在棋盘上的棋子从可走表里去掉
func (s *GameState) RemoveCaptured(side Side) {
	m := s.movesOf(side)
	for from := range m {
		if s.Board.At(from).Side() != side {
			delete(m, from)
		}
	}
}

// Roster 一方棋子所在格，按行优先排好
func (s *GameState) Roster(side Side) []Square {
	m := s.movesOf(side)
	out := make([]Square, 0, len(m))
	for idx := 0; idx < NumSquares; idx++ {
		sq := squareAt(idx)
		if _, ok := m[sq]; ok {
			out = append(out, sq)
		}
	}
	return out
}

// LegalActions 展开可走表；顺序固定（起点行优先，落点按上下左右生成顺序）
func (s *GameState) LegalActions(side Side) []Action {
	m := s.movesOf(side)
	n := 0
	for _, v := range m {
		n += len(v)
	}
	out := make([]Action, 0, n)
	for _, from := range s.Roster(side) {
		for _, to := range m[from] {
			out = append(out, Action{From: from, To: to, Mover: side})
		}
	}
	return out
}

func (s *GameState) HasLegalAction(side Side) bool {
	for _, v := range s.movesOf(side) {
		if len(v) > 0 {
			return true
		}
	}
	return false
}

var errDesync = errors.New("tablut: state desynchronized")

// Validate 检查可走表、王的位置和棋盘是否一致
func (s *GameState) Validate() error {
	king := NoSquare
	whites, blacks := 0, 0
	for idx := 0; idx < NumSquares; idx++ {
		sq := squareAt(idx)
		c := s.Board.At(sq)
		switch c {
		case CellKing:
			if king != NoSquare {
				return fmt.Errorf("%w: two kings at %v and %v", errDesync, king, sq)
			}
			king = sq
			fallthrough
		case CellWhite:
			whites++
			if _, ok := s.whiteMoves[sq]; !ok {
				return fmt.Errorf("%w: white piece at %v missing from roster", errDesync, sq)
			}
		case CellBlack:
			blacks++
			if _, ok := s.blackMoves[sq]; !ok {
				return fmt.Errorf("%w: black piece at %v missing from roster", errDesync, sq)
			}
		}
	}
	if whites != len(s.whiteMoves) || blacks != len(s.blackMoves) {
		return fmt.Errorf("%w: roster has %d/%d entries, board has %d/%d",
			errDesync, len(s.whiteMoves), len(s.blackMoves), whites, blacks)
	}
	if king != s.KingSquare {
		return fmt.Errorf("%w: king square is %v, board has king at %v", errDesync, s.KingSquare, king)
	}
	for _, side := range []Side{White, Black} {
		for from, cached := range s.movesOf(side) {
			fresh := s.Destinations(from)
			if len(fresh) != len(cached) {
				return fmt.Errorf("%w: stale destinations for %v", errDesync, from)
			}
			for i := range fresh {
				if fresh[i] != cached[i] {
					return fmt.Errorf("%w: stale destinations for %v", errDesync, from)
				}
			}
		}
	}
	if s.Hash != s.CalculateHash() {
		return fmt.Errorf("%w: hash mismatch", errDesync)
	}
	return nil
}

func (s *GameState) String() string {
	return s.Board.String() + "-\n" + s.Turn.String()
}
