package game

import (
	"sync"
	"time"

	"tablut/internal/tablut"
)

// Session 一盘对局。State 只在持有 mu 时读写，对外给 Snapshot 的副本。
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	mu         sync.RWMutex
	state      *tablut.GameState
	repetition *tablut.RepetitionTable
	history    []tablut.Action
}

func newSession(id string, repeatedAllowed int) *Session {
	now := time.Now()
	s := &Session{
		ID:         id,
		CreatedAt:  now,
		UpdatedAt:  now,
		state:      tablut.NewInitialState(),
		repetition: tablut.NewRepetitionTable(repeatedAllowed),
	}
	s.repetition.Record(s.state)
	return s
}

// Snapshot 当前局面的副本
func (s *Session) Snapshot() *tablut.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *Session) History() []tablut.Action {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]tablut.Action(nil), s.history...)
}

// apply 调用方持有写锁
func (s *Session) apply(a tablut.Action) error {
	if err := s.state.Apply(a); err != nil {
		return err
	}
	s.history = append(s.history, a)
	s.repetition.Record(s.state)
	s.UpdatedAt = time.Now()
	return nil
}
