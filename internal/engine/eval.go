package engine

import (
	"tablut/internal/config"
	"tablut/internal/tablut"
)

// Evaluator 给非终局局面打分，站在 side 的角度：正数对 side 有利。
// 返回值应该落在 (UtilMin, UtilMax) 之内，引擎会再夹一次。
type Evaluator interface {
	Evaluate(s *tablut.GameState, side tablut.Side) float64
}

type EvaluatorFunc func(s *tablut.GameState, side tablut.Side) float64

func (f EvaluatorFunc) Evaluate(s *tablut.GameState, side tablut.Side) float64 { return f(s, side) }

// MaterialEvaluator 只看子数差
type MaterialEvaluator struct{}

func (MaterialEvaluator) Evaluate(s *tablut.GameState, side tablut.Side) float64 {
	return float64(s.Count(side) - s.Count(side.Opponent()))
}

// DefaultEvaluator 子力 + 王的安全/出路
type DefaultEvaluator struct {
	W config.Weights
}

func NewDefaultEvaluator(w config.Weights) *DefaultEvaluator {
	return &DefaultEvaluator{W: w}
}

func (d *DefaultEvaluator) Evaluate(s *tablut.GameState, side tablut.Side) float64 {
	score := d.whiteScore(s)
	if side == tablut.Black {
		return -score
	}
	return score
}

// 从白方视角
func (d *DefaultEvaluator) whiteScore(s *tablut.GameState) float64 {
	w := d.W

	// 白兵按两个黑子算，开局 16:16 持平
	pawns := s.WhiteCount()
	if s.KingSquare != tablut.NoSquare {
		pawns--
	}
	score := w.Material * float64(2*pawns-s.BlackCount())

	switch s.LastAction.Mover {
	case tablut.White:
		score += w.CaptureBonus * float64(s.CapturedLast())
	case tablut.Black:
		score -= w.CaptureBonus * float64(s.CapturedLast())
	}

	king := s.KingSquare
	if king == tablut.NoSquare {
		return score
	}

	freedom := 0
	for _, to := range s.CachedDestinations(king) {
		if tablut.IsEscape(to) {
			freedom++
		}
	}
	score += w.KingFreedom * float64(freedom)
	score -= w.KingPressure * float64(kingPressure(s, king))

	blocked := 0
	nearest := -1
	for _, sq := range escapeSquares {
		switch s.Board.At(sq) {
		case tablut.CellBlack:
			blocked++
		case tablut.CellEmpty:
			if tablut.Classify(sq) != tablut.Plain {
				continue
			}
			dist := manhattan(king, sq)
			if nearest < 0 || dist < nearest {
				nearest = dist
			}
		}
	}
	score -= w.BlockedEscape * float64(blocked)
	if nearest >= 0 {
		score -= w.KingDistance * float64(nearest)
	}
	return score
}

// 四邻里的黑子数
func kingPressure(s *tablut.GameState, king tablut.Square) int {
	n := 0
	for _, d := range []tablut.Direction{tablut.Up, tablut.Down, tablut.Left, tablut.Right} {
		sq := king.Step(d, 1)
		if sq.Valid() && s.Board.At(sq) == tablut.CellBlack {
			n++
		}
	}
	return n
}

var escapeSquares = func() []tablut.Square {
	var out []tablut.Square
	for r := 0; r < tablut.Size; r++ {
		for c := 0; c < tablut.Size; c++ {
			if sq := tablut.Sq(r, c); tablut.IsEscape(sq) {
				out = append(out, sq)
			}
		}
	}
	return out
}()

func manhattan(a, b tablut.Square) int {
	return abs(int(a.Row)-int(b.Row)) + abs(int(a.Col)-int(b.Col))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
