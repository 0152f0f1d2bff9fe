package main

import (
	"context"
	"fmt"
	"log"

	"tablut/internal/config"
	"tablut/internal/engine"
	"tablut/internal/tablut"
)

type player struct {
	Name   string
	Engine *engine.Engine
}

// runBenchmark 默认评估 vs 纯子力，每盘交换颜色
func runBenchmark(cfg config.Config, sc engine.SearchConfig, games, maxMoves int) {
	heuristic := player{Name: "default", Engine: engine.NewEngineFromConfig(cfg)}
	material := player{Name: "material", Engine: engine.NewEngineFromConfig(cfg)}
	material.Engine.Evaluator = engine.MaterialEvaluator{}

	wins := map[string]int{}
	draws := 0
	for g := 0; g < games; g++ {
		white, black := heuristic, material
		if g%2 == 1 {
			white, black = material, heuristic
		}

		fmt.Printf("\n=== Game %d: White [%s] vs Black [%s] ===\n", g+1, white.Name, black.Name)
		final, plies := playGame(cfg, sc, white, black, maxMoves)
		switch final {
		case tablut.WhiteWin:
			wins[white.Name]++
			fmt.Printf("Result: %s wins as White in %d plies\n", white.Name, plies)
		case tablut.BlackWin:
			wins[black.Name]++
			fmt.Printf("Result: %s wins as Black in %d plies\n", black.Name, plies)
		default:
			draws++
			fmt.Printf("Result: %v after %d plies\n", final, plies)
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", heuristic.Name, wins[heuristic.Name])
	fmt.Printf("%s: %d\n", material.Name, wins[material.Name])
	fmt.Printf("Draws / unfinished: %d\n", draws)
}

// playGame 返回终局 Turn；打满 maxMoves 还没结束就返回当时的 Turn
func playGame(cfg config.Config, sc engine.SearchConfig, white, black player, maxMoves int) (tablut.Turn, int) {
	s := tablut.NewInitialState()
	rep := tablut.NewRepetitionTable(cfg.Server.RepeatedAllowed)
	rep.Record(s)

	for i := 0; i < maxMoves && !s.IsTerminal(); i++ {
		p := white
		if s.Turn == tablut.BlackToMove {
			p = black
		}
		res, err := p.Engine.Search(context.Background(), s, sc)
		if err != nil {
			log.Printf("%s: %v", p.Name, err)
			break
		}
		if err := s.Apply(res.Action); err != nil {
			log.Fatalf("%s picked a rejected action %v: %v", p.Name, res.Action, err)
		}
		rep.Record(s)
	}
	return s.Turn, s.TurnNumber
}
