package session

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain/model"

	"github.com/google/uuid"
)

// Manager はプロセス内のセッション表。
// サーバー再起動でセッションとカートは消える（サインインし直し）。
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// ttl は最終アクセスからの有効期間。0以下なら期限なし。
func NewManager(ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// サインイン時に作る
func (m *Manager) Start(userID string, role model.Role) *Session {
	s := newSession(m.newID(), userID, role, m.now())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// 期限切れは見つからない扱いにして破棄する
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	now := m.now()
	if m.expired(s, now) {
		m.End(id)
		return nil, false
	}

	s.touch(now)
	return s, true
}

// サインアウト時に破棄（カートも一緒に消える）
func (m *Manager) End(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// 期限切れを掃除して、消した件数を返す
func (m *Manager) Sweep() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// ctxが終わるまで interval ごとに Sweep する
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 || interval <= 0 {
		return
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Sweep()
		}
	}
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	if m.ttl <= 0 {
		return false
	}
	return now.Sub(s.idleSince()) > m.ttl
}
