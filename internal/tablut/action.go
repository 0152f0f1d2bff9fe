package tablut

import "fmt"

// Action 一步棋。Score 只给搜索排序用，不参与 JSON。
type Action struct {
	From  Square  `json:"from"`
	To    Square  `json:"to"`
	Mover Side    `json:"turn"`
	Score float64 `json:"-"`
}

// noAction 开局时的 LastAction，对应服务器协议里的 "z0"
var noAction = Action{From: NoSquare, To: NoSquare, Mover: NoSide}

// ParseAction 从两个格子名构造走法，格式错误返回 *MoveError。
func ParseAction(from, to string, mover Side) (Action, error) {
	a := Action{From: NoSquare, To: NoSquare, Mover: mover}
	f, errFrom := ParseSquare(from)
	t, errTo := ParseSquare(to)
	for _, kind := range []error{ErrMalformedAction, ErrOutOfBoard} {
		if errFrom == kind || errTo == kind {
			return a, &MoveError{Kind: kind, From: from, To: to, Mover: mover}
		}
	}
	a.From, a.To = f, t
	return a, nil
}

// Direction 只对横竖走法有意义
func (a Action) Direction() Direction {
	if a.From.Row == a.To.Row {
		if a.From.Col > a.To.Col {
			return Left
		}
		return Right
	}
	if a.From.Row > a.To.Row {
		return Up
	}
	return Down
}

// Distance 横竖走法的步数
func (a Action) Distance() int {
	dr := int(a.To.Row) - int(a.From.Row)
	dc := int(a.To.Col) - int(a.From.Col)
	return abs(dr) + abs(dc)
}

func (a Action) IsZero() bool { return a.From == NoSquare && a.To == NoSquare }

func (a Action) String() string {
	return fmt.Sprintf("%v %v->%v", a.Mover, a.From, a.To)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
