package tablut

import (
	"errors"
	"math/rand"
	"testing"
)

func act(t *testing.T, from, to string, mover Side) Action {
	t.Helper()
	a, err := ParseAction(from, to, mover)
	if err != nil {
		t.Fatalf("ParseAction(%s,%s): %v", from, to, err)
	}
	return a
}

func TestCheckInitialPosition(t *testing.T) {
	s := NewInitialState()
	before := s.Encode()
	cases := []struct {
		name     string
		from, to string
		mover    Side
		want     error
	}{
		{"king onto own pawn", "e5", "e4", White, ErrOccupiedDestination},
		{"king onto citadel pawn", "e5", "e1", White, ErrOccupiedDestination},
		{"pawn to edge", "e3", "a3", White, nil},
		{"pawn onto occupied citadel", "e3", "e2", White, ErrOccupiedDestination},
		{"white moves black pawn", "a4", "a3", White, ErrWrongOwner},
		{"black out of turn", "a4", "a3", Black, ErrWrongOwner},
		{"empty source", "c3", "c2", White, ErrWrongOwner},
		{"diagonal", "e3", "d2", White, ErrDiagonalMove},
		{"pawn onto citadel pawn", "d5", "d1", White, ErrOccupiedDestination},
		{"no-op on empty square", "c3", "c3", White, ErrNoOpMove},
		{"column c is open", "c5", "c1", White, nil},
		{"column g is open", "g5", "g9", White, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(s, act(t, tc.from, tc.to, tc.mover))
			if !errors.Is(err, tc.want) {
				t.Fatalf("Check(%s->%s) = %v, want %v", tc.from, tc.to, err, tc.want)
			}
		})
	}
	if s.Encode() != before {
		t.Fatalf("Check modified the state")
	}
}

func TestCheckOnSparseBoards(t *testing.T) {
	cases := []struct {
		name     string
		pieces   map[string]Cell
		turn     Turn
		from, to string
		want     error
	}{
		{
			name:   "citadel entry from outside",
			pieces: map[string]Cell{"e3": CellWhite, "g7": CellKing, "h8": CellBlack},
			turn:   WhiteToMove, from: "e3", to: "e2", want: ErrIllegalCitadelEntry,
		},
		{
			name:   "throne destination",
			pieces: map[string]Cell{"e3": CellWhite, "g7": CellKing, "h8": CellBlack},
			turn:   WhiteToMove, from: "e3", to: "e5", want: ErrThroneDestination,
		},
		{
			name:   "throne in the path",
			pieces: map[string]Cell{"d5": CellWhite, "g7": CellKing, "h8": CellBlack},
			turn:   WhiteToMove, from: "d5", to: "f5", want: ErrBlockedPath,
		},
		{
			name:   "pawn in the path",
			pieces: map[string]Cell{"c3": CellWhite, "c5": CellWhite, "g7": CellKing, "h8": CellBlack},
			turn:   WhiteToMove, from: "c3", to: "c7", want: ErrBlockedPath,
		},
		{
			name:   "crossing a citadel",
			pieces: map[string]Cell{"a3": CellWhite, "g7": CellKing, "h8": CellBlack},
			turn:   WhiteToMove, from: "a3", to: "a7", want: ErrBlockedByForeignCitadel,
		},
		{
			name:   "citadel to another cluster",
			pieces: map[string]Cell{"d1": CellBlack, "g7": CellKing},
			turn:   BlackToMove, from: "d1", to: "d9", want: ErrIllegalCitadelSpan,
		},
		{
			name:   "inside own cluster",
			pieces: map[string]Cell{"a4": CellBlack, "g7": CellKing},
			turn:   BlackToMove, from: "a4", to: "a6", want: nil,
		},
		{
			name:   "leaving a citadel",
			pieces: map[string]Cell{"b5": CellBlack, "g7": CellKing},
			turn:   BlackToMove, from: "b5", to: "b1", want: nil,
		},
		{
			name:   "black from outside crosses a citadel",
			pieces: map[string]Cell{"c1": CellBlack, "g7": CellKing},
			turn:   BlackToMove, from: "c1", to: "g1", want: ErrBlockedByForeignCitadel,
		},
		{
			name:   "game over first",
			pieces: map[string]Cell{"a1": CellKing, "h8": CellBlack},
			turn:   WhiteWin, from: "z9", to: "e5", want: ErrGameOver,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := stateFrom(t, tc.pieces, tc.turn)
			a := Action{From: NoSquare, To: NoSquare, Mover: tc.turn.Side()}
			if sq, err := ParseSquare(tc.from); err == nil {
				a.From = sq
			}
			if sq, err := ParseSquare(tc.to); err == nil {
				a.To = sq
			}
			err := Check(s, a)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Check = %v, want %v", err, tc.want)
			}
			if err != nil {
				var me *MoveError
				if !errors.As(err, &me) {
					t.Fatalf("error %T is not a *MoveError", err)
				}
			}
		})
	}
}

func TestApplyMoveLeavesInputUntouched(t *testing.T) {
	s := NewInitialState()
	before := s.Encode()
	hash := s.Hash

	next, err := ApplyMove(s, act(t, "e3", "a3", White))
	if err != nil {
		t.Fatalf("ApplyMove: %v", err)
	}
	if s.Encode() != before || s.Hash != hash || s.Turn != WhiteToMove {
		t.Fatalf("ApplyMove mutated its input")
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("input invalid after ApplyMove: %v", err)
	}
	if err := next.Validate(); err != nil {
		t.Fatalf("successor invalid: %v", err)
	}
	if next.Turn != BlackToMove || next.TurnNumber != 1 || next.CapturedLast() != 0 {
		t.Fatalf("successor turn %v number %d captured %d", next.Turn, next.TurnNumber, next.CapturedLast())
	}
	if next.Board.At(mustSquare(t, "a3")) != CellWhite || next.Board.At(mustSquare(t, "e3")) != CellEmpty {
		t.Fatalf("piece did not move")
	}

	if _, err := ApplyMove(s, act(t, "e5", "e4", White)); !errors.Is(err, ErrOccupiedDestination) {
		t.Fatalf("want ErrOccupiedDestination, got %v", err)
	}
	if err := s.Apply(act(t, "a4", "a3", Black)); !errors.Is(err, ErrWrongOwner) {
		t.Fatalf("want ErrWrongOwner, got %v", err)
	}
	if s.Encode() != before {
		t.Fatalf("rejected Apply mutated the state")
	}
}

// legalSet 暴力枚举所有 (from,to)，以 Check 为准
func legalSet(s *GameState, side Side) map[Action]bool {
	out := make(map[Action]bool)
	for i := 0; i < NumSquares; i++ {
		for j := 0; j < NumSquares; j++ {
			a := Action{From: squareAt(i), To: squareAt(j), Mover: side}
			if Check(s, a) == nil {
				out[a] = true
			}
		}
	}
	return out
}

func TestLegalActionsMatchCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewInitialState()
	for ply := 0; ply < 120 && !s.IsTerminal(); ply++ {
		side := s.Turn.Side()
		actions := s.LegalActions(side)
		want := legalSet(s, side)
		if len(actions) != len(want) {
			t.Fatalf("ply %d: %d generated actions, %d accepted by Check", ply, len(actions), len(want))
		}
		for _, a := range actions {
			if !want[a] {
				t.Fatalf("ply %d: generated %v rejected by Check: %v", ply, a, Check(s, a))
			}
			if a.From.Row != a.To.Row && a.From.Col != a.To.Col {
				t.Fatalf("ply %d: diagonal action %v", ply, a)
			}
			if a.To == Throne {
				t.Fatalf("ply %d: action onto the throne %v", ply, a)
			}
		}
		next, err := ApplyMove(s, actions[rng.Intn(len(actions))])
		if err != nil {
			t.Fatalf("ply %d: ApplyMove: %v", ply, err)
		}
		if err := next.Validate(); err != nil {
			t.Fatalf("ply %d: %v", ply, err)
		}
		s = next
	}
}

func TestLegalActionsDeterministic(t *testing.T) {
	s := NewInitialState()
	a1 := s.LegalActions(White)
	a2 := s.Clone().LegalActions(White)
	if len(a1) == 0 || len(a1) != len(a2) {
		t.Fatalf("lengths %d/%d", len(a1), len(a2))
	}
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("order differs at %d: %v vs %v", i, a1[i], a2[i])
		}
		if i > 0 && a1[i-1].From.Index() > a1[i].From.Index() {
			t.Fatalf("sources not row-major at %d", i)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewInitialState()
	c := s.Clone()
	if err := c.Apply(act(t, "e3", "a3", White)); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("original corrupted by clone play: %v", err)
	}
	if s.Board.At(mustSquare(t, "e3")) != CellWhite {
		t.Fatalf("original board changed")
	}
}
