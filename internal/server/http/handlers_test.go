package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tablut/internal/config"
	"tablut/internal/engine"
	"tablut/internal/server/game"
	"tablut/internal/server/ws"
)

func newTestRouter(t *testing.T) (*gin.Engine, *game.Manager, *ws.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	eng := engine.NewEngine()
	eng.Workers = 2
	m := game.NewManager(eng, 2)
	hub := ws.NewHub()
	cfg := config.Config{Search: config.Search{Timeout: 5 * time.Second, Margin: time.Second}}
	return NewRouter(m, hub, cfg, ""), m, hub
}

func post(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func TestNewGameAndState(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := post(t, r, "/api/new_game", struct{}{})
	if w.Code != http.StatusOK {
		t.Fatalf("new_game status %d", w.Code)
	}
	ng := decodeBody[NewGameResponse](t, w)
	if ng.GameID == "" || ng.Turn != "WHITE" || len(ng.LegalMoves) == 0 {
		t.Fatalf("unexpected new game %+v", ng)
	}

	w = post(t, r, "/api/state", StateRequest{GameID: ng.GameID})
	st := decodeBody[StateResponse](t, w)
	if st.Status != "ongoing" || st.WhiteCount != 9 || st.BlackCount != 16 || st.LastMove != nil {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.Position != ng.Position {
		t.Fatalf("position changed: %q vs %q", st.Position, ng.Position)
	}

	w = post(t, r, "/api/state", StateRequest{GameID: "missing"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing game status %d", w.Code)
	}
}

func TestPlay(t *testing.T) {
	r, _, _ := newTestRouter(t)
	ng := decodeBody[NewGameResponse](t, post(t, r, "/api/new_game", struct{}{}))

	w := post(t, r, "/api/play", PlayRequest{GameID: ng.GameID, Move: MoveDTO{From: "e3", To: "a3"}})
	if w.Code != http.StatusOK {
		t.Fatalf("play status %d: %s", w.Code, w.Body.String())
	}
	st := decodeBody[StateResponse](t, w)
	if st.Turn != "BLACK" || st.LastMove == nil || *st.LastMove != (MoveDTO{From: "e3", To: "a3"}) {
		t.Fatalf("unexpected state after play %+v", st)
	}

	tests := []struct {
		name string
		move MoveDTO
		code int
		kind string
	}{
		{"occupied", MoveDTO{From: "a4", To: "a3"}, http.StatusBadRequest, "OccupiedDestination"},
		{"wrong owner", MoveDTO{From: "e4", To: "d4"}, http.StatusBadRequest, "WrongOwner"},
		{"off board", MoveDTO{From: "z9", To: "a3"}, http.StatusBadRequest, "OutOfBoard"},
		{"malformed", MoveDTO{From: "e", To: "a3"}, http.StatusBadRequest, "MalformedAction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, r, "/api/play", PlayRequest{GameID: ng.GameID, Move: tt.move})
			if w.Code != tt.code {
				t.Fatalf("status %d, want %d", w.Code, tt.code)
			}
			if got := decodeBody[ErrorResponse](t, w); got.Kind != tt.kind {
				t.Fatalf("kind %q, want %q", got.Kind, tt.kind)
			}
		})
	}
}

func TestAiMove(t *testing.T) {
	r, _, _ := newTestRouter(t)
	ng := decodeBody[NewGameResponse](t, post(t, r, "/api/new_game", struct{}{}))

	w := post(t, r, "/api/ai_move", AiMoveRequest{GameID: ng.GameID, MaxDepth: 1, TimeMs: 2000})
	if w.Code != http.StatusOK {
		t.Fatalf("ai_move status %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody[AiMoveResponse](t, w)
	if resp.Depth != 1 || resp.State.Turn != "BLACK" {
		t.Fatalf("unexpected ai response %+v", resp)
	}
	if resp.State.LastMove == nil || *resp.State.LastMove != resp.BestMove {
		t.Fatalf("best move %v not applied", resp.BestMove)
	}
}

func TestMoveIsBroadcast(t *testing.T) {
	r, m, hub := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	g := m.NewGame()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?game_id=" + g.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// 等服务端登记连接
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients(g.ID) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	w := post(t, r, "/api/play", PlayRequest{GameID: g.ID, Move: MoveDTO{From: "e3", To: "a3"}})
	if w.Code != http.StatusOK {
		t.Fatalf("play status %d", w.Code)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Action string        `json:"action"`
		Data   StateResponse `json:"data"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Action != "move" || msg.Data.GameID != g.ID || msg.Data.Turn != "BLACK" {
		t.Fatalf("unexpected broadcast %+v", msg)
	}
}

func TestRootRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterStaticRoutes(r, t.TempDir())

	req := httptest.NewRequest(http.MethodGet, "/?view=compact", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/web/?layout=compact" {
		t.Fatalf("redirect %d %q", w.Code, w.Header().Get("Location"))
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), viewCookieName+"=compact") {
		t.Fatalf("view cookie not set: %q", w.Header().Get("Set-Cookie"))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Location") != "/web/" {
		t.Fatalf("desktop redirect %q", w.Header().Get("Location"))
	}
}
