package tablut

// Check 按固定顺序检查走法，第一条不满足的前置条件决定错误种类。不修改 s。
func Check(s *GameState, a Action) error {
	if s.Turn.Terminal() {
		return moveErr(ErrGameOver, a)
	}
	if !a.From.Valid() || !a.To.Valid() {
		return moveErr(ErrOutOfBoard, a)
	}
	if Classify(a.To) == ThroneSquare {
		return moveErr(ErrThroneDestination, a)
	}
	if s.Board.At(a.To) != CellEmpty {
		return moveErr(ErrOccupiedDestination, a)
	}
	home := CitadelCluster(a.From)
	if Classify(a.To) == Citadel {
		if home < 0 {
			return moveErr(ErrIllegalCitadelEntry, a)
		}
		if CitadelCluster(a.To) != home {
			return moveErr(ErrIllegalCitadelSpan, a)
		}
	}
	if a.From == a.To {
		return moveErr(ErrNoOpMove, a)
	}
	if a.Mover != s.Turn.Side() || s.Board.At(a.From).Side() != a.Mover {
		return moveErr(ErrWrongOwner, a)
	}
	if a.From.Row != a.To.Row && a.From.Col != a.To.Col {
		return moveErr(ErrDiagonalMove, a)
	}
	d := a.Direction()
	for i := 1; i < a.Distance(); i++ {
		sq := a.From.Step(d, i)
		if s.Board.At(sq) != CellEmpty || Classify(sq) == ThroneSquare {
			return moveErr(ErrBlockedPath, a)
		}
		if Classify(sq) == Citadel && CitadelCluster(sq) != home {
			return moveErr(ErrBlockedByForeignCitadel, a)
		}
	}
	return nil
}

// ApplyMove 检查并在副本上执行，原局面不变。
func ApplyMove(s *GameState, a Action) (*GameState, error) {
	if err := Check(s, a); err != nil {
		return nil, err
	}
	ns := s.Clone()
	ns.execute(a)
	return ns, nil
}

// Apply 原地执行，对局用；出错时 s 不变。
func (s *GameState) Apply(a Action) error {
	if err := Check(s, a); err != nil {
		return err
	}
	s.execute(a)
	return nil
}

// CapturedLast 上一步吃掉的对方子数
func (s *GameState) CapturedLast() int {
	switch s.LastAction.Mover {
	case White:
		return s.PrevBlackCount - s.BlackCount()
	case Black:
		return s.PrevWhiteCount - s.WhiteCount()
	}
	return 0
}

// execute 假定 a 已经通过 Check
func (s *GameState) execute(a Action) {
	initZobrist()

	mover := a.Mover
	opp := mover.Opponent()
	piece := s.Board.At(a.From)

	s.PrevWhiteCount = s.WhiteCount()
	s.PrevBlackCount = s.BlackCount()
	s.Hash ^= turnHashKey(s.Turn)

	s.Board.Set(a.From, CellEmpty)
	s.Board.Set(a.To, piece)
	s.Hash ^= cellHashKey(piece, a.From) ^ cellHashKey(piece, a.To)
	if piece == CellKing {
		s.KingSquare = a.To
	}
	m := s.movesOf(mover)
	delete(m, a.From)
	m[a.To] = nil

	a.Score = 0
	s.LastAction = a
	s.TurnNumber++

	captured, kingTaken := resolveCaptures(&s.Board, a.To, mover)
	oppPiece := CellBlack
	if opp == White {
		oppPiece = CellWhite
	}
	for _, sq := range captured {
		s.Hash ^= cellHashKey(oppPiece, sq)
	}
	if len(captured) > 0 {
		s.RemoveCaptured(opp)
	}
	s.RefreshAll(White)
	s.RefreshAll(Black)

	switch {
	case piece == CellKing && IsEscape(a.To):
		s.Turn = WhiteWin
	case kingTaken:
		s.Turn = BlackWin
	case !s.HasLegalAction(opp):
		// 对方无子可动，走子方胜
		s.Turn = WinFor(mover)
	default:
		s.Turn = TurnFor(opp)
	}
	s.Hash ^= turnHashKey(s.Turn)
}
