package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hitoshi/clipvault/internal/middleware"
	"github.com/hitoshi/clipvault/internal/model"
	"github.com/hitoshi/clipvault/internal/repository"
	"github.com/hitoshi/clipvault/internal/session"
)

// --- テスト共通のモック定義 ---

// memorySessionRepo はテスト用のインメモリセッションリポジトリ。
type memorySessionRepo struct {
	sessions map[string]*model.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *memorySessionRepo) Create(ctx context.Context, s *model.Session) error {
	copied := *s
	m.sessions[s.ID] = &copied
	return nil
}

func (m *memorySessionRepo) FindByID(ctx context.Context, id string) (*model.Session, error) {
	s, ok := m.sessions[id]
	if !ok || time.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (m *memorySessionRepo) UpdateEmail(ctx context.Context, id, email string) error {
	s, ok := m.sessions[id]
	if !ok {
		return fmt.Errorf("session not found: %s", id)
	}
	s.Email = email
	return nil
}

func (m *memorySessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	var n int64
	for id, s := range m.sessions {
		if time.Now().After(s.ExpiresAt) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

var _ repository.SessionRepository = (*memorySessionRepo)(nil)

// sessionRequest はセッションハンドル付きのリクエストを生成する。
// emailが空の場合はメール未キャプチャのセッションになる。
func sessionRequest(method, target, sessionID, email string, repo repository.SessionRepository) *http.Request {
	req, _ := http.NewRequest(method, target, nil)
	handle := session.NewHandle(&model.Session{
		ID:        sessionID,
		Email:     email,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}, repo)
	ctx := middleware.ContextWithSession(req.Context(), handle)
	return req.WithContext(ctx)
}
