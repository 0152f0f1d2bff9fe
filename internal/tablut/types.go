package tablut

import (
	"fmt"
	"strings"
)

type Side int8

const (
	NoSide Side = -1
	White  Side = 0
	Black  Side = 1
)

func (s Side) Opponent() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case White:
		return "WHITE"
	case Black:
		return "BLACK"
	}
	return "NONE"
}

func (s Side) MarshalText() ([]byte, error) {
	if s != White && s != Black {
		return nil, fmt.Errorf("tablut: cannot marshal side %d", s)
	}
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	side, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// ParseSide 接受 "WHITE"/"BLACK"，也接受服务器常用的缩写 "W"/"B"（大小写不敏感）。
func ParseSide(v string) (Side, error) {
	switch strings.ToUpper(v) {
	case "WHITE", "W":
		return White, nil
	case "BLACK", "B":
		return Black, nil
	}
	return NoSide, fmt.Errorf("tablut: unknown side %q", v)
}

type Cell int8

const (
	CellEmpty Cell = iota
	CellWhite
	CellBlack
	CellKing
)

// Side 王算白方
func (c Cell) Side() Side {
	switch c {
	case CellWhite, CellKing:
		return White
	case CellBlack:
		return Black
	}
	return NoSide
}

func (c Cell) String() string {
	switch c {
	case CellWhite:
		return "WHITE"
	case CellBlack:
		return "BLACK"
	case CellKing:
		return "KING"
	}
	return "EMPTY"
}

// Turn = 轮到谁走，或者终局结果
type Turn int8

const (
	WhiteToMove Turn = iota
	BlackToMove
	WhiteWin
	BlackWin
	Draw
)

var turnNames = [...]string{
	WhiteToMove: "WHITE",
	BlackToMove: "BLACK",
	WhiteWin:    "WHITEWIN",
	BlackWin:    "BLACKWIN",
	Draw:        "DRAW",
}

func TurnFor(side Side) Turn {
	if side == Black {
		return BlackToMove
	}
	return WhiteToMove
}

func WinFor(side Side) Turn {
	if side == Black {
		return BlackWin
	}
	return WhiteWin
}

func (t Turn) String() string {
	if t < 0 || int(t) >= len(turnNames) {
		return "UNKNOWN"
	}
	return turnNames[t]
}

func (t Turn) Terminal() bool {
	return t == WhiteWin || t == BlackWin || t == Draw
}

// Side 返回走子方；终局返回 NoSide。
func (t Turn) Side() Side {
	switch t {
	case WhiteToMove:
		return White
	case BlackToMove:
		return Black
	}
	return NoSide
}

// Winner 终局的赢家；平局或未终局返回 NoSide。
func (t Turn) Winner() Side {
	switch t {
	case WhiteWin:
		return White
	case BlackWin:
		return Black
	}
	return NoSide
}

func ParseTurn(v string) (Turn, error) {
	for i, name := range turnNames {
		if name == v {
			return Turn(i), nil
		}
	}
	return WhiteToMove, fmt.Errorf("tablut: unknown turn %q", v)
}

func (t Turn) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Turn) UnmarshalText(b []byte) error {
	v, err := ParseTurn(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
