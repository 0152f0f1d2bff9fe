package tablut

import "testing"

func TestIncrementalHash(t *testing.T) {
	s := NewInitialState()
	if s.Hash == 0 || s.Hash != s.CalculateHash() {
		t.Fatalf("initial hash not set")
	}
	for _, mv := range [][2]string{{"e3", "a3"}, {"a4", "b4"}, {"e4", "c4"}} {
		side := s.Turn.Side()
		if err := s.Apply(act(t, mv[0], mv[1], side)); err != nil {
			t.Fatalf("Apply %v: %v", mv, err)
		}
		if s.Hash != s.CalculateHash() {
			t.Fatalf("incremental hash drifted after %v", mv)
		}
	}

	// 同一盘面不同走子方哈希不同
	w := NewState(NewInitialBoard(), WhiteToMove)
	b := NewState(NewInitialBoard(), BlackToMove)
	if w.Hash == b.Hash {
		t.Fatalf("side to move not hashed")
	}
}

func TestRepetitionDraw(t *testing.T) {
	s := stateFrom(t, map[string]Cell{"c3": CellWhite, "e5": CellKing, "g7": CellBlack}, WhiteToMove)
	rt := NewRepetitionTable(1)
	if rt.Record(s) {
		t.Fatalf("first occurrence cannot draw")
	}
	shuffle := [][2]string{{"c3", "c2"}, {"g7", "g8"}, {"c2", "c3"}, {"g8", "g7"}}
	for i, mv := range shuffle {
		if err := s.Apply(act(t, mv[0], mv[1], s.Turn.Side())); err != nil {
			t.Fatalf("Apply %v: %v", mv, err)
		}
		drew := rt.Record(s)
		if want := i == len(shuffle)-1; drew != want {
			t.Fatalf("after %v draw = %v, want %v", mv, drew, want)
		}
	}
	if s.Turn != Draw || !s.IsTerminal() {
		t.Fatalf("turn = %v, want DRAW", s.Turn)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestRepetitionResetsOnCapture(t *testing.T) {
	s := stateFrom(t, map[string]Cell{
		"c2": CellWhite, "d4": CellBlack, "e4": CellWhite, "g7": CellKing, "h8": CellBlack,
	}, WhiteToMove)
	rt := NewRepetitionTable(5)
	rt.Record(s)
	if rt.Count(s) != 1 {
		t.Fatalf("count = %d", rt.Count(s))
	}
	before := s.Clone()
	if err := s.Apply(act(t, "c2", "c4", White)); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rt.Record(s) {
		t.Fatalf("capture position should be fresh")
	}
	if rt.Count(before) != 0 {
		t.Fatalf("table not cleared after capture")
	}
}
