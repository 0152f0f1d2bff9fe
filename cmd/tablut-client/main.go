package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"tablut/internal/client"
	"tablut/internal/config"
	"tablut/internal/engine"
	"tablut/internal/tablut"
)

func main() {
	cfg := config.Load()

	role := flag.String("role", "white", "white or black")
	name := flag.String("name", cfg.Client.Name, "player name sent to the server")
	host := flag.String("host", cfg.Client.Host, "tournament server host")
	timeout := flag.Int("timeout", int(cfg.Search.Timeout/time.Second), "server move timeout in seconds")
	workers := flag.Int("workers", cfg.Search.Workers, "search workers")
	flag.Parse()

	side, err := tablut.ParseSide(*role)
	if err != nil {
		log.Fatalf("bad -role: %v", err)
	}
	cfg.Search.Timeout = time.Duration(*timeout) * time.Second
	cfg.Search.Workers = *workers

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	conn, err := client.Dial(ctx, *host, cfg.Client.WhitePort, cfg.Client.BlackPort, side)
	if err != nil {
		log.Fatal(err)
	}

	eng := engine.NewEngineFromConfig(cfg)
	c := client.New(conn, side, *name, eng, cfg.Search.Budget())
	defer c.Close()

	log.Printf("%s playing %v against %s, %d workers, %v per move", *name, side, conn.RemoteAddr(), eng.Workers, cfg.Search.Budget())
	final, err := c.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
	switch final.Winner() {
	case side:
		log.Printf("result: %v, we won", final)
	case tablut.NoSide:
		log.Printf("result: %v", final)
	default:
		log.Printf("result: %v, we lost", final)
	}
}
