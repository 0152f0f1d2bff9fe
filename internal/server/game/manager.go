package game

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"tablut/internal/engine"
	"tablut/internal/tablut"
)

var (
	ErrGameNotFound = errors.New("game not found")
	// AI 思考期间局面被人走了一步
	ErrStateChanged = errors.New("game state changed during search")
)

type Manager struct {
	mu    sync.RWMutex
	games map[string]*Session

	engine          *engine.Engine
	repeatedAllowed int
}

func NewManager(eng *engine.Engine, repeatedAllowed int) *Manager {
	if eng == nil {
		eng = engine.NewEngine()
	}
	return &Manager{
		games:           make(map[string]*Session),
		engine:          eng,
		repeatedAllowed: repeatedAllowed,
	}
}

func (m *Manager) NewGame() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	g := newSession(id, m.repeatedAllowed)
	m.games[id] = g
	return g
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g, nil
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.games, id)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Play 人类走一步；规则错误原样返回（*tablut.MoveError）。
func (m *Manager) Play(id string, a tablut.Action) (*tablut.GameState, error) {
	g, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.apply(a); err != nil {
		return nil, err
	}
	return g.state.Clone(), nil
}

// AIMove 在副本上搜索（不持锁），搜完再确认局面没变才落子。
func (m *Manager) AIMove(ctx context.Context, id string, cfg engine.SearchConfig) (engine.SearchResult, *tablut.GameState, error) {
	g, err := m.Get(id)
	if err != nil {
		return engine.SearchResult{}, nil, err
	}
	snap := g.Snapshot()

	res, err := m.engine.Search(ctx, snap, cfg)
	if err != nil {
		return res, nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.Hash != snap.Hash || g.state.TurnNumber != snap.TurnNumber {
		return res, nil, ErrStateChanged
	}
	if err := g.apply(res.Action); err != nil {
		return res, nil, fmt.Errorf("apply ai move: %w", err)
	}
	return res, g.state.Clone(), nil
}
