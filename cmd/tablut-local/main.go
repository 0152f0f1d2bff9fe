package main

import (
	"flag"
	"log"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"tablut/internal/config"
	"tablut/internal/engine"
	"tablut/internal/server/game"
	httpserver "tablut/internal/server/http"
	"tablut/internal/server/ws"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 没有图形界面时会失败，忽略
}

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.Server.HTTPAddr, "listen address")
	webDir := flag.String("web", "./web", "directory with index.html / js (empty = API only)")
	browser := flag.Bool("browser", false, "open the board page in the default browser")
	flag.Parse()

	eng := engine.NewEngineFromConfig(cfg)
	m := game.NewManager(eng, cfg.Server.RepeatedAllowed)
	hub := ws.NewHub()
	r := httpserver.NewRouter(m, hub, cfg, *webDir)

	log.Printf("listening on %s, serving static from %q, %d workers, %v per AI move",
		*addr, *webDir, eng.Workers, cfg.Search.Budget())

	if *browser {
		// 等 100ms，服务器起来了再开
		go func() {
			time.Sleep(100 * time.Millisecond)
			host := *addr
			if strings.HasPrefix(host, ":") {
				host = "127.0.0.1" + host
			}
			openBrowser("http://" + host)
		}()
	}

	if err := r.Run(*addr); err != nil {
		log.Fatal(err)
	}
}
