package httpserver

import (
	"github.com/gin-gonic/gin"

	"tablut/internal/config"
	"tablut/internal/server/game"
	"tablut/internal/server/ws"
)

// NewRouter /api/*、/ws 和静态页面都挂在同一个 gin.Engine 上。
// webDir 为空时不挂静态页面。
func NewRouter(m *game.Manager, hub *ws.Hub, cfg config.Config, webDir string) *gin.Engine {
	r := gin.Default()

	h := NewHandler(m, hub, cfg.Search.Budget())
	api := r.Group("/api")
	{
		api.POST("/new_game", h.handleNewGame)
		api.POST("/state", h.handleState)
		api.POST("/play", h.handlePlay)
		api.POST("/ai_move", h.handleAiMove)
	}

	r.GET("/ws", hub.HandleWS)

	if webDir != "" {
		RegisterStaticRoutes(r, webDir)
	}
	return r
}
