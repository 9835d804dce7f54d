package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/clipvault/internal/middleware"
	"github.com/hitoshi/clipvault/internal/model"
	"github.com/hitoshi/clipvault/internal/session"
	"github.com/hitoshi/clipvault/internal/view"
)

// --- モック定義 ---

type mockEmailValidator struct {
	valid bool
}

func (m *mockEmailValidator) Validate(candidate string) bool {
	return m.valid
}

func newTestRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	r, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return r
}

// emailFormRequest はメール送信フォームのPOSTリクエストを生成する。
func emailFormRequest(email, sessionEmail string, repo *memorySessionRepo, sessionID string) *http.Request {
	form := url.Values{}
	form.Set("email", email)

	req := httptest.NewRequest(http.MethodPost, "/email", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	handle := session.NewHandle(&model.Session{
		ID:        sessionID,
		Email:     sessionEmail,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}, repo)
	ctx := middleware.ContextWithSession(req.Context(), handle)
	return req.WithContext(ctx)
}

// --- ShowForm のテスト ---

func TestEmailHandler_ShowForm_RendersForm(t *testing.T) {
	h := NewEmailHandler(&mockEmailValidator{valid: true}, newTestRenderer(t))

	req := sessionRequest(http.MethodGet, "/email", "s1", "", nil)
	w := httptest.NewRecorder()

	h.ShowForm(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	body := w.Body.String()
	if !strings.Contains(body, `action="/email"`) {
		t.Error("form action missing from rendered page")
	}
	if !strings.Contains(body, `name="email"`) {
		t.Error("email input missing from rendered page")
	}
}

func TestEmailHandler_ShowForm_CapturedEmail_RedirectsToRoot(t *testing.T) {
	h := NewEmailHandler(&mockEmailValidator{valid: true}, newTestRenderer(t))

	req := sessionRequest(http.MethodGet, "/email", "s1", "user@example.com", nil)
	w := httptest.NewRecorder()

	h.ShowForm(w, req)

	if w.Result().StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusFound)
	}
	if loc := w.Result().Header.Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}
}

// --- Submit のテスト ---

func TestEmailHandler_Submit_ValidEmail_StoresAndRedirects(t *testing.T) {
	repo := newMemorySessionRepo()
	repo.Create(context.Background(), &model.Session{
		ID:        "s1",
		ExpiresAt: time.Now().Add(1 * time.Hour),
	})

	h := NewEmailHandler(&mockEmailValidator{valid: true}, newTestRenderer(t))

	req := emailFormRequest("user@example.com", "", repo, "s1")
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Result().StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusFound)
	}
	if loc := w.Result().Header.Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}

	stored, _ := repo.FindByID(context.Background(), "s1")
	if stored == nil || stored.Email != "user@example.com" {
		t.Errorf("stored email = %v, want user@example.com", stored)
	}
}

func TestEmailHandler_Submit_InvalidEmail_RendersInlineError(t *testing.T) {
	repo := newMemorySessionRepo()
	h := NewEmailHandler(&mockEmailValidator{valid: false}, newTestRenderer(t))

	req := emailFormRequest("not-an-email", "", repo, "s1")
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Result().StatusCode, http.StatusOK)
	}

	body := w.Body.String()
	if !strings.Contains(body, model.MsgInvalidEmail) {
		t.Errorf("inline error %q missing from rendered page", model.MsgInvalidEmail)
	}
	if !strings.Contains(body, `name="email"`) {
		t.Error("email input missing from re-rendered form")
	}
}

func TestEmailHandler_Submit_TrimsWhitespace(t *testing.T) {
	repo := newMemorySessionRepo()
	repo.Create(context.Background(), &model.Session{
		ID:        "s1",
		ExpiresAt: time.Now().Add(1 * time.Hour),
	})

	h := NewEmailHandler(&mockEmailValidator{valid: true}, newTestRenderer(t))

	req := emailFormRequest("  user@example.com  ", "", repo, "s1")
	w := httptest.NewRecorder()

	h.Submit(w, req)

	stored, _ := repo.FindByID(context.Background(), "s1")
	if stored == nil || stored.Email != "user@example.com" {
		t.Errorf("stored email = %v, want trimmed user@example.com", stored)
	}
}

func TestEmailHandler_Submit_RepositoryError_Returns500(t *testing.T) {
	// リポジトリに存在しないセッションIDでUpdateEmailが失敗する
	repo := newMemorySessionRepo()
	h := NewEmailHandler(&mockEmailValidator{valid: true}, newTestRenderer(t))

	req := emailFormRequest("user@example.com", "", repo, "missing-session")
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Result().StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusInternalServerError)
	}
}
