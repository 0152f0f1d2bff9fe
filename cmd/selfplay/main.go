package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"tablut/internal/config"
	"tablut/internal/engine"
	"tablut/internal/tablut"
)

func main() {
	depth := flag.Int("depth", 3, "search depth (0 = iterative deepening until time runs out)")
	timeMs := flag.Int("time-ms", 0, "per-move time limit in ms (0 = no limit)")
	workers := flag.Int("workers", 0, "search workers (0 = TABLUT_WORKERS / NumCPU)")
	maxMoves := flag.Int("maxmoves", 200, "max plies to play")
	games := flag.Int("games", 1, "games to play; >1 runs the default evaluator against plain material")
	pprof := flag.Bool("pprof", false, "serve pprof on localhost:6060")
	flag.Parse()

	if *pprof {
		go func() {
			log.Println("pprof listening on :6060")
			if err := http.ListenAndServe("localhost:6060", nil); err != nil {
				log.Printf("pprof failed: %v", err)
			}
		}()
	}

	cfg := config.Load()
	e := engine.NewEngineFromConfig(cfg)
	sc := engine.SearchConfig{
		MaxDepth:  *depth,
		TimeLimit: time.Duration(*timeMs) * time.Millisecond,
		Workers:   *workers,
	}

	if *games > 1 {
		runBenchmark(cfg, sc, *games, *maxMoves)
		return
	}

	s := tablut.NewInitialState()
	rep := tablut.NewRepetitionTable(cfg.Server.RepeatedAllowed)
	rep.Record(s)
	for i := 0; i < *maxMoves && !s.IsTerminal(); i++ {
		log.Printf("--- ply %d, %v ---", i+1, s.Turn)

		res, err := e.Search(context.Background(), s, sc)
		if err != nil {
			log.Printf("search stopped: %v", err)
			break
		}
		nps := int64(float64(res.Nodes) / max(res.TimeUsed.Seconds(), 1e-3))
		fmt.Printf("%v score=%.1f depth=%d nodes=%d time=%v nps=%d\n",
			res.Action, res.Score, res.Depth, res.Nodes, res.TimeUsed, nps)

		if err := s.Apply(res.Action); err != nil {
			log.Fatalf("engine picked a rejected action %v: %v", res.Action, err)
		}
		rep.Record(s)
	}

	fmt.Println(s)
	log.Printf("selfplay finished: %v after %d plies", s.Turn, s.TurnNumber)
}
