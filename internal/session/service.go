// Package session はサーバーサイドセッションの解決と署名付きCookie値の
// エンコード/デコードを提供する。
package session

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hitoshi/clipvault/internal/model"
	"github.com/hitoshi/clipvault/internal/repository"
)

// CookieName はセッションIDを保持するCookieの名前。
const CookieName = "clipvault_session"

// ServiceConfig はセッションサービスの設定。
type ServiceConfig struct {
	Secret string // Cookie値のHMAC署名に使用するアプリケーションシークレット
	MaxAge int    // セッション有効期間（秒）
}

// Service はセッションの解決・作成・更新を提供する。
type Service struct {
	repo   repository.SessionRepository
	config ServiceConfig
}

// NewService はServiceを生成する。
func NewService(repo repository.SessionRepository, config ServiceConfig) *Service {
	return &Service{
		repo:   repo,
		config: config,
	}
}

// Handle はハンドラーに渡されるセッションの明示的なハンドル。
// セッション状態へのアクセスをEmail/SetEmailに限定する。
type Handle struct {
	session *model.Session
	repo    repository.SessionRepository
}

// NewHandle は既存のセッションモデルからハンドルを生成する。
// 通常はResolveが返すハンドルを使用する。主にテストでの利用を想定している。
func NewHandle(sess *model.Session, repo repository.SessionRepository) *Handle {
	return &Handle{session: sess, repo: repo}
}

// ID はセッションIDを返す。
func (h *Handle) ID() string {
	return h.session.ID
}

// Email はキャプチャ済みメールアドレスと、その有無を返す。
func (h *Handle) Email() (string, bool) {
	return h.session.Email, h.session.HasEmail()
}

// SetEmail は検証済みメールアドレスをセッションに保存する。
func (h *Handle) SetEmail(ctx context.Context, email string) error {
	if err := h.repo.UpdateEmail(ctx, h.session.ID, email); err != nil {
		return fmt.Errorf("failed to store email in session: %w", err)
	}
	h.session.Email = email
	return nil
}

// Resolve はCookie値から既存セッションを解決する。Cookieが空・署名不正・
// セッション未存在・期限切れのいずれの場合も新しい空セッションを作成する。
// 第2戻り値は新規作成されたかどうかを示す。
func (s *Service) Resolve(ctx context.Context, cookieValue string) (*Handle, bool, error) {
	if id, ok := s.verify(cookieValue); ok {
		sess, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, false, fmt.Errorf("failed to resolve session: %w", err)
		}
		if sess != nil {
			return &Handle{session: sess, repo: s.repo}, false, nil
		}
	}

	sess, err := s.create(ctx)
	if err != nil {
		return nil, false, err
	}

	// 新規作成のついでに期限切れ行を掃除する。失敗しても本処理には影響しない。
	if n, err := s.repo.DeleteExpired(ctx); err == nil && n > 0 {
		slog.Debug("expired sessions removed", slog.Int64("count", n))
	}

	return &Handle{session: sess, repo: s.repo}, true, nil
}

// CookieValue はハンドルのセッションIDを署名付きCookie値にエンコードする。
func (s *Service) CookieValue(h *Handle) string {
	return s.sign(h.session.ID)
}

// MaxAge はセッション有効期間（秒）を返す。Cookie側のMax-Ageに使用する。
func (s *Service) MaxAge() int {
	return s.config.MaxAge
}

// create は新しい空セッションを作成して永続化する。
func (s *Service) create(ctx context.Context) (*model.Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	sess := &model.Session{
		ID:        id,
		ExpiresAt: time.Now().Add(time.Duration(s.config.MaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return sess, nil
}

// sign はセッションIDを "id.hexhmac" 形式の署名付き値にエンコードする。
func (s *Service) sign(id string) string {
	mac := hmac.New(sha256.New, []byte(s.config.Secret))
	mac.Write([]byte(id))
	return id + "." + hex.EncodeToString(mac.Sum(nil))
}

// verify は署名付きCookie値を検証し、セッションIDを取り出す。
// 形式不正または署名不一致の場合はfalseを返す。
func (s *Service) verify(value string) (string, bool) {
	id, sig, found := strings.Cut(value, ".")
	if !found || id == "" || sig == "" {
		return "", false
	}

	expected := s.sign(id)
	_, expectedSig, _ := strings.Cut(expected, ".")
	if subtle.ConstantTimeCompare([]byte(sig), []byte(expectedSig)) != 1 {
		return "", false
	}

	return id, true
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
