package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Hub 按 game_id 分组的观战连接；只往外推，不处理客户端发来的内容。
type Hub struct {
	mu    sync.RWMutex
	games map[string]map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{games: make(map[string]map[*websocket.Conn]struct{})}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 本地对局，不限来源
	},
}

type Message struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

func (h *Hub) HandleWS(c *gin.Context) {
	gameID := c.Query("game_id")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing game_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	if _, ok := h.games[gameID]; !ok {
		h.games[gameID] = make(map[*websocket.Conn]struct{})
	}
	h.games[gameID][conn] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.games[gameID], conn)
		if len(h.games[gameID]) == 0 {
			delete(h.games, gameID)
		}
		h.mu.Unlock()
		_ = conn.Close()
	}()

	// 读到错误（对方断开）就退出
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Clients 当前订阅某盘棋的连接数
func (h *Hub) Clients(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}

func (h *Hub) Broadcast(gameID string, action string, data any) {
	if h == nil {
		return
	}

	// WriteJSON 不能并发，整段持写锁
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.games[gameID]
	if !ok {
		return
	}
	msg := Message{Action: action, Data: data}
	for conn := range clients {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("ws send failed: %v", err)
			_ = conn.Close()
			delete(clients, conn)
		}
	}
}
