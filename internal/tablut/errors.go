package tablut

import (
	"errors"
	"fmt"
)

// 走法合法性错误，每种前置条件一个
var (
	ErrMalformedAction         = errors.New("malformed action")
	ErrOutOfBoard              = errors.New("square outside the board")
	ErrThroneDestination       = errors.New("destination is the throne")
	ErrOccupiedDestination     = errors.New("destination is occupied")
	ErrIllegalCitadelEntry     = errors.New("cannot enter a citadel from outside")
	ErrIllegalCitadelSpan      = errors.New("cannot move into another citadel")
	ErrNoOpMove                = errors.New("piece does not move")
	ErrWrongOwner              = errors.New("piece does not belong to the mover")
	ErrDiagonalMove            = errors.New("diagonal move")
	ErrBlockedPath             = errors.New("path is blocked")
	ErrBlockedByForeignCitadel = errors.New("path crosses a citadel")
	ErrGameOver                = errors.New("game is over")
)

var kindNames = map[error]string{
	ErrMalformedAction:         "MalformedAction",
	ErrOutOfBoard:              "OutOfBoard",
	ErrThroneDestination:       "ThroneDestination",
	ErrOccupiedDestination:     "OccupiedDestination",
	ErrIllegalCitadelEntry:     "IllegalCitadelEntry",
	ErrIllegalCitadelSpan:      "IllegalCitadelSpan",
	ErrNoOpMove:                "NoOpMove",
	ErrWrongOwner:              "WrongOwner",
	ErrDiagonalMove:            "DiagonalMove",
	ErrBlockedPath:             "BlockedPath",
	ErrBlockedByForeignCitadel: "BlockedByForeignCitadel",
	ErrGameOver:                "GameOver",
}

// MoveError 包一层，带上出错的走法；用 errors.Is 判断种类。
type MoveError struct {
	Kind  error
	From  string
	To    string
	Mover Side
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%v: %s -> %s (%v)", e.Kind, e.From, e.To, e.Mover)
}

func (e *MoveError) Unwrap() error { return e.Kind }

func moveErr(kind error, a Action) *MoveError {
	return &MoveError{Kind: kind, From: a.From.String(), To: a.To.String(), Mover: a.Mover}
}

// KindName 给外部（HTTP 等）用的错误种类名；非走法错误返回空串。
func KindName(err error) string {
	var me *MoveError
	if errors.As(err, &me) {
		return kindNames[me.Kind]
	}
	for kind, name := range kindNames {
		if errors.Is(err, kind) {
			return name
		}
	}
	return ""
}
