package session

import (
	"sync"
	"time"

	"storefront/internal/domain/cart"
	"storefront/internal/domain/model"
)

// Session はサインインからサインアウトまでの利用者コンテキスト。
// ロールと権限はサインイン時に1回だけ解決する。
type Session struct {
	ID        string
	UserID    string
	Role      model.Role
	CreatedAt time.Time

	caps map[model.Capability]struct{}

	mu   sync.Mutex
	cart *cart.Cart

	// カートのロックとは分ける（チェックアウト中でも期限判定できるように）
	seenMu   sync.Mutex
	lastSeen time.Time
}

func newSession(id, userID string, role model.Role, now time.Time) *Session {
	caps := make(map[model.Capability]struct{})
	for _, c := range role.Capabilities() {
		caps[c] = struct{}{}
	}

	return &Session{
		ID:        id,
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		caps:      caps,
		cart:      cart.New(),
		lastSeen:  now,
	}
}

func (s *Session) Can(c model.Capability) bool {
	_, ok := s.caps[c]
	return ok
}

// 表示順はロール定義の順
func (s *Session) Capabilities() []model.Capability {
	return s.Role.Capabilities()
}

// WithCart はカートを排他して fn を実行する。
// 同じセッションのリクエストはここで直列になる。
func (s *Session) WithCart(fn func(c *cart.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.cart)
}

func (s *Session) touch(now time.Time) {
	s.seenMu.Lock()
	s.lastSeen = now
	s.seenMu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.seenMu.Lock()
	defer s.seenMu.Unlock()
	return s.lastSeen
}
