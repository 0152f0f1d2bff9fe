package httpserver

import "tablut/internal/tablut"

// 前端用的招法结构，格子用 "e4" 这种名字
type MoveDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func moveToDTO(a tablut.Action) MoveDTO {
	return MoveDTO{From: a.From.String(), To: a.To.String()}
}

func movesToDTO(as []tablut.Action) []MoveDTO {
	out := make([]MoveDTO, len(as))
	for i, a := range as {
		out[i] = moveToDTO(a)
	}
	return out
}

// NewGame 返回
type NewGameResponse struct {
	GameID     string    `json:"game_id"`
	Position   string    `json:"position"` // Encode() 字符串
	Turn       string    `json:"turn"`
	LegalMoves []MoveDTO `json:"legal_moves"`
}

// State 请求：前端刷新时用 game_id 来要当前盘面
type StateRequest struct {
	GameID string `json:"game_id"`
}

type StateResponse struct {
	GameID     string    `json:"game_id"`
	Position   string    `json:"position"`
	Turn       string    `json:"turn"`
	LegalMoves []MoveDTO `json:"legal_moves"`
	Status     string    `json:"status"` // "ongoing" / "white_win" / "black_win" / "draw"
	WhiteCount int       `json:"white_count"`
	BlackCount int       `json:"black_count"`
	LastMove   *MoveDTO  `json:"last_move,omitempty"`
}

// Play 请求
type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

// AiMoveRequest 让 AI 替当前走子方走一步
type AiMoveRequest struct {
	GameID   string `json:"game_id"`
	TimeMs   int64  `json:"time_ms"`
	Workers  int    `json:"workers"`
	MaxDepth int    `json:"max_depth"`
}

type AiMoveResponse struct {
	BestMove MoveDTO       `json:"best_move"`
	Score    float64       `json:"score"`
	Depth    int           `json:"depth"`
	Nodes    int64         `json:"nodes"`
	Workers  int           `json:"workers"`
	TimeMs   int64         `json:"time_ms"`
	State    StateResponse `json:"state"` // AI 落子后局面
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func statusOf(t tablut.Turn) string {
	switch t {
	case tablut.WhiteWin:
		return "white_win"
	case tablut.BlackWin:
		return "black_win"
	case tablut.Draw:
		return "draw"
	}
	return "ongoing"
}

func stateToDTO(id string, s *tablut.GameState) StateResponse {
	resp := StateResponse{
		GameID:     id,
		Position:   s.Encode(),
		Turn:       s.Turn.String(),
		LegalMoves: []MoveDTO{},
		Status:     statusOf(s.Turn),
		WhiteCount: s.WhiteCount(),
		BlackCount: s.BlackCount(),
	}
	if !s.IsTerminal() {
		resp.LegalMoves = movesToDTO(s.LegalActions(s.Turn.Side()))
	}
	if s.HasLastAction() {
		last := moveToDTO(s.LastAction)
		resp.LastMove = &last
	}
	return resp
}
