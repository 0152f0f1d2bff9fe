package engine

import (
	"runtime"

	"tablut/internal/config"
)

const (
	UtilMax = 10000.0
	UtilMin = -10000.0

	// 没给时限也没给深度时的默认深度
	defaultDepth = 3
	// 有时限时的深度上限
	maxPly = 64
)

type Engine struct {
	Evaluator Evaluator
	UtilMin   float64
	UtilMax   float64
	Workers   int
	MaxDepth  int // <=0 表示只受时间限制

	// SignificantlyBetter 为 true 时 worker 不再加深；nil 等于永远 false
	SignificantlyBetter func(best, second float64) bool
}

func NewEngine() *Engine {
	return &Engine{
		Evaluator: NewDefaultEvaluator(config.DefaultWeights()),
		UtilMin:   UtilMin,
		UtilMax:   UtilMax,
		Workers:   runtime.NumCPU(),
	}
}

// NewEngineFromConfig 用环境变量里的权重和并发数
func NewEngineFromConfig(cfg config.Config) *Engine {
	e := NewEngine()
	e.Evaluator = NewDefaultEvaluator(cfg.Weights)
	if cfg.Search.Workers > 0 {
		e.Workers = cfg.Search.Workers
	}
	e.MaxDepth = cfg.Search.MaxDepth
	return e
}

// clamp 启发式分数严格落在终局分之内，保证 >=UtilMax 只可能是真赢
func (e *Engine) clamp(v float64) float64 {
	if v >= e.UtilMax {
		return e.UtilMax - 1
	}
	if v <= e.UtilMin {
		return e.UtilMin + 1
	}
	return v
}
