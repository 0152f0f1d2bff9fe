package tablut

// 白方吃子时不算夹子的营地：四组营地最外侧中间那格
var whiteAnchorExcluded = map[Square]bool{
	Sq(4, 0): true, // a5
	Sq(0, 4): true, // e1
	Sq(8, 4): true, // e9
	Sq(4, 8): true, // i5
}

// 紧挨王座的四格；王在这里要三面被黑围
var throneNeighbours = map[Square]bool{
	Sq(3, 4): true, // e4
	Sq(5, 4): true, // e6
	Sq(4, 3): true, // d5
	Sq(4, 5): true, // f5
}

// isAnchor: F 格能不能和落子方一起夹住对方
func isAnchor(b *Board, f Square, mover Side) bool {
	cls := Classify(f)
	if cls == ThroneSquare {
		return true
	}
	c := b.At(f)
	switch mover {
	case White:
		if c == CellWhite || c == CellKing {
			return true
		}
		return cls == Citadel && !whiteAnchorExcluded[f]
	case Black:
		return c == CellBlack || cls == Citadel
	}
	return false
}

// kingSurrounded: 王在 king，落子方从 king-d 方向靠上来
func kingSurrounded(b *Board, king Square, d Direction) bool {
	switch {
	case king == Throne, throneNeighbours[king]:
		for _, dd := range directions {
			n := king.Step(dd, 1)
			if n == Throne {
				continue
			}
			if b.cellAt(n) != CellBlack {
				return false
			}
		}
		return true
	default:
		f := king.Step(d, 1)
		if !f.Valid() {
			return false
		}
		return b.At(f) == CellBlack || Classify(f) == Citadel
	}
}

// resolveCaptures 落子到 to 以后逐方向判吃，返回吃了几个子和王有没有被擒。
func resolveCaptures(b *Board, to Square, mover Side) (captured []Square, kingTaken bool) {
	for _, d := range directions {
		n := to.Step(d, 1)
		f := to.Step(d, 2)
		if !n.Valid() {
			continue
		}
		target := b.At(n)
		switch mover {
		case White:
			if target == CellBlack && f.Valid() && isAnchor(b, f, White) {
				captured = append(captured, n)
			}
		case Black:
			if target == CellWhite && f.Valid() && isAnchor(b, f, Black) {
				captured = append(captured, n)
			}
			if target == CellKing && kingSurrounded(b, n, d) {
				kingTaken = true
			}
		}
	}
	for _, sq := range captured {
		b.Set(sq, CellEmpty)
	}
	return captured, kingTaken
}
