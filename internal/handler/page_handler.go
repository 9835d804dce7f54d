package handler

import (
	"log/slog"
	"net/http"

	"github.com/hitoshi/clipvault/internal/middleware"
	"github.com/hitoshi/clipvault/internal/view"
)

// PageHandler はHTMLページと静的アセットのハンドラー。
type PageHandler struct {
	renderer *view.Renderer
}

// NewPageHandler はPageHandlerを生成する。
func NewPageHandler(renderer *view.Renderer) *PageHandler {
	return &PageHandler{renderer: renderer}
}

// Root はトップページを処理する。
// GET /
// セッションにメールアドレスがなければメールキャプチャページへリダイレクトし、
// あれば録画・一覧ページを表示する。
func (h *PageHandler) Root(w http.ResponseWriter, r *http.Request) {
	handle, err := middleware.SessionFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/email", http.StatusFound)
		return
	}

	email, ok := handle.Email()
	if !ok {
		http.Redirect(w, r, "/email", http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, view.ViewVideo, view.PageData{Email: email}); err != nil {
		slog.Error("failed to render video page", slog.String("error", err.Error()))
	}
}

// Favicon は埋め込みのファビコンを返す。
// GET /favicon.ico
func (h *PageHandler) Favicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/x-icon")
	w.Write(view.Favicon())
}

// Robots はクローラー向けのrobots.txtを返す。
// GET /robots.txt
func (h *PageHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(view.Robots())
}
