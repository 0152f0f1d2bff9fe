package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tablut/internal/engine"
	"tablut/internal/server/game"
	"tablut/internal/server/ws"
	"tablut/internal/tablut"
)

// Handler /api/* 的处理函数；对局都在 Manager 里
type Handler struct {
	games *game.Manager
	hub   *ws.Hub

	// 单次 ai_move 的默认/最大思考时间
	budget time.Duration
}

func NewHandler(m *game.Manager, hub *ws.Hub, budget time.Duration) *Handler {
	return &Handler{games: m, hub: hub, budget: budget}
}

func (h *Handler) handleNewGame(c *gin.Context) {
	g := h.games.NewGame()
	s := g.Snapshot()

	resp := NewGameResponse{
		GameID:     g.ID,
		Position:   s.Encode(),
		Turn:       s.Turn.String(),
		LegalMoves: movesToDTO(s.LegalActions(s.Turn.Side())),
	}
	log.Printf("new game %s", g.ID)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleState(c *gin.Context) {
	var req StateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad json"})
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stateToDTO(g.ID, g.Snapshot()))
}

func (h *Handler) handlePlay(c *gin.Context) {
	var req PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad json"})
		return
	}
	g, err := h.games.Get(req.GameID)
	if err != nil {
		writeError(c, err)
		return
	}

	side := g.Snapshot().Turn.Side()
	a, err := tablut.ParseAction(req.Move.From, req.Move.To, side)
	if err != nil {
		writeError(c, err)
		return
	}

	s, err := h.games.Play(g.ID, a)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := stateToDTO(g.ID, s)
	h.hub.Broadcast(g.ID, "move", resp)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleAiMove(c *gin.Context) {
	var req AiMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad json"})
		return
	}

	limit := h.budget
	if req.TimeMs > 0 {
		if d := time.Duration(req.TimeMs) * time.Millisecond; limit <= 0 || d < limit {
			limit = d
		}
	}
	cfg := engine.SearchConfig{
		MaxDepth:  req.MaxDepth,
		TimeLimit: limit,
		Workers:   req.Workers,
	}

	// 客户端断开就停止思考
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	res, s, err := h.games.AIMove(ctx, req.GameID, cfg)
	if err != nil {
		writeError(c, err)
		return
	}

	state := stateToDTO(req.GameID, s)
	resp := AiMoveResponse{
		BestMove: moveToDTO(res.Action),
		Score:    res.Score,
		Depth:    res.Depth,
		Nodes:    res.Nodes,
		Workers:  res.Workers,
		TimeMs:   res.TimeUsed.Milliseconds(),
		State:    state,
	}
	log.Printf("ai move %s: %v score=%.1f depth=%d nodes=%d time=%v",
		req.GameID, res.Action, res.Score, res.Depth, res.Nodes, res.TimeUsed)
	h.hub.Broadcast(req.GameID, "move", state)
	c.JSON(http.StatusOK, resp)
}

// writeError 按错误种类选状态码
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, game.ErrStateChanged):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, engine.ErrNoLegalActions), errors.Is(err, engine.ErrNotSideToMove):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		if kind := tablut.KindName(err); kind != "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: kind})
			return
		}
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}
