package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"tablut/internal/tablut"
)

var (
	ErrNoLegalActions = errors.New("engine: no legal actions")
	ErrNotSideToMove  = errors.New("engine: side is not to move")
)

// 搜索配置
type SearchConfig struct {
	MaxDepth  int           // 最大搜索深度（ply），0 用 Engine.MaxDepth
	TimeLimit time.Duration // 搜索时间上限（0 表示不限制）
	Workers   int           // 0 用 Engine.Workers
}

// 搜索结果
type SearchResult struct {
	Action   tablut.Action
	Score    float64       // 站在搜索方角度
	Depth    int           // 所有 worker 都完成了的深度
	Nodes    int64         // 节点数
	TimeUsed time.Duration // 花费时间
	Workers  int           // 实际用了几个 worker
}

// Search 按 cfg 构造截止时间，替当前走子方搜索。
func (e *Engine) Search(ctx context.Context, s *tablut.GameState, cfg SearchConfig) (SearchResult, error) {
	run := *e
	if cfg.MaxDepth > 0 {
		run.MaxDepth = cfg.MaxDepth
	}
	if cfg.Workers > 0 {
		run.Workers = cfg.Workers
	}
	var deadline time.Time
	if cfg.TimeLimit > 0 {
		deadline = time.Now().Add(cfg.TimeLimit)
	}
	return run.ChooseAction(ctx, s, s.Turn.Side(), deadline)
}

// ChooseAction 根节点走法分成 K 段，每段一个 goroutine 各自迭代加深；
// 只采用完整跑完的那一层的结果。deadline 为零值表示不限时。
func (e *Engine) ChooseAction(ctx context.Context, s *tablut.GameState, side tablut.Side, deadline time.Time) (SearchResult, error) {
	start := time.Now()
	if s.IsTerminal() {
		return SearchResult{}, fmt.Errorf("engine: %w", tablut.ErrGameOver)
	}
	if s.Turn.Side() != side {
		return SearchResult{}, fmt.Errorf("%w: %v (turn %v)", ErrNotSideToMove, side, s.Turn)
	}
	actions := s.LegalActions(side)
	if len(actions) == 0 {
		return SearchResult{}, ErrNoLegalActions
	}

	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	limit := e.MaxDepth
	if limit <= 0 {
		if deadline.IsZero() {
			limit = defaultDepth
		} else {
			limit = maxPly
		}
	}

	// 截止时间只写一次；ctx 取消时改成 1，相当于立刻到期
	var dl atomic.Int64
	if !deadline.IsZero() {
		dl.Store(deadline.UnixNano())
	}
	stop := context.AfterFunc(ctx, func() { dl.Store(1) })
	defer stop()
	if ctx.Err() != nil {
		dl.Store(1)
	}

	k := e.Workers
	if k <= 0 {
		k = 1
	}
	if k > len(actions) {
		k = len(actions)
	}

	var nodes atomic.Int64
	results := make([]sliceResult, k)
	g := errgroup.Group{}
	for i := 0; i < k; i++ {
		i := i
		part :=actions[i*len(actions)/k : (i+1)*len(actions)/k]
		g.Go(func() error {
			// 每个 goroutine 用自己的 searcher，结果只写自己的下标
			w := &searcher{e: e, side: side, deadline: &dl, maxDepth: limit}
			results[i] = w.run(s, part)
			nodes.Add(w.nodes)
			return nil
		})
	}
	_ = g.Wait()

	best := results[0]
	depth := best.depth
	for _, r := range results[1:] {
		if r.score > best.score {
			best = r
		}
		if r.depth < depth {
			depth = r.depth
		}
	}

	return SearchResult{
		Action:   best.action,
		Score:    best.score,
		Depth:    depth,
		Nodes:    nodes.Load(),
		TimeUsed: time.Since(start),
		Workers:  k,
	}, nil
}

type sliceResult struct {
	action tablut.Action
	score  float64
	depth  int
}

type searcher struct {
	e        *Engine
	side     tablut.Side
	deadline *atomic.Int64
	maxDepth int

	depthLimit int
	heuristic  bool // 本层用到了评估函数（没有整棵解完）
	nodes      int64
}

func (w *searcher) timeUp() bool {
	d := w.deadline.Load()
	return d != 0 && time.Now().UnixNano() >= d
}

// run 对 actions 这一段做迭代加深。第 1 层无论多慢都跑完，所以结果一定有值。
func (w *searcher) run(root *tablut.GameState, actions []tablut.Action) sliceResult {
	var best sliceResult
	for depth := 1; depth <= w.maxDepth; depth++ {
		if depth > 1 && w.timeUp() {
			break
		}
		w.depthLimit = depth
		w.heuristic = false

		iter := sliceResult{score: math.Inf(-1), depth: depth}
		second := math.Inf(-1)
		for i, a := range actions {
			v := w.minValue(w.apply(root, a), math.Inf(-1), math.Inf(1), 1)
			if i == 0 || v > iter.score {
				second = iter.score
				iter.action, iter.score = a, v
			} else if v > second {
				second = v
			}
			if depth > 1 && w.timeUp() {
				break
			}
		}
		// 超时后节点直接返回估值，这一层不完整，丢掉
		if depth > 1 && w.timeUp() {
			break
		}
		best = iter

		if best.score >= w.e.UtilMax || best.score <= w.e.UtilMin {
			break
		}
		if w.e.SignificantlyBetter != nil && w.e.SignificantlyBetter(best.score, second) {
			break
		}
		if !w.heuristic {
			break
		}
	}
	return best
}

func (w *searcher) apply(s *tablut.GameState, a tablut.Action) *tablut.GameState {
	next, err := tablut.ApplyMove(s, a)
	if err != nil {
		// 可走表里的走法被规则拒绝：可走表和棋盘不同步了
		panic(fmt.Errorf("engine: listed action %v rejected: %w", a, err))
	}
	return next
}

func (w *searcher) cutoff(s *tablut.GameState, depth int) bool {
	return s.IsTerminal() || depth >= w.depthLimit || w.timeUp()
}

func (w *searcher) maxValue(s *tablut.GameState, alpha, beta float64, depth int) float64 {
	w.nodes++
	if w.cutoff(s, depth) {
		return w.eval(s)
	}
	actions := s.LegalActions(s.Turn.Side())
	if len(actions) == 0 {
		return w.eval(s)
	}
	v := math.Inf(-1)
	for _, a := range actions {
		v = math.Max(v, w.minValue(w.apply(s, a), alpha, beta, depth+1))
		if v >= beta {
			return v
		}
		alpha = math.Max(alpha, v)
	}
	return v
}

func (w *searcher) minValue(s *tablut.GameState, alpha, beta float64, depth int) float64 {
	w.nodes++
	if w.cutoff(s, depth) {
		return w.eval(s)
	}
	actions := s.LegalActions(s.Turn.Side())
	if len(actions) == 0 {
		return w.eval(s)
	}
	v := math.Inf(1)
	for _, a := range actions {
		v = math.Min(v, w.maxValue(w.apply(s, a), alpha, beta, depth+1))
		if v <= alpha {
			return v
		}
		beta = math.Min(beta, v)
	}
	return v
}

func (w *searcher) eval(s *tablut.GameState) float64 {
	switch s.Turn {
	case tablut.Draw:
		return 0
	case tablut.WhiteWin, tablut.BlackWin:
		if s.Turn.Winner() == w.side {
			return w.e.UtilMax
		}
		return w.e.UtilMin
	}
	w.heuristic = true
	return w.e.clamp(w.e.Evaluator.Evaluate(s, w.side))
}
