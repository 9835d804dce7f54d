package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/clipvault/internal/middleware"
	"github.com/hitoshi/clipvault/internal/model"
	"github.com/hitoshi/clipvault/internal/view"
)

// EmailValidatorInterface はメールアドレス検証のインターフェース。
type EmailValidatorInterface interface {
	Validate(candidate string) bool
}

// EmailHandler はメールキャプチャのHTTPハンドラー。
type EmailHandler struct {
	validator EmailValidatorInterface
	renderer  *view.Renderer
}

// NewEmailHandler はEmailHandlerを生成する。
func NewEmailHandler(validator EmailValidatorInterface, renderer *view.Renderer) *EmailHandler {
	return &EmailHandler{
		validator: validator,
		renderer:  renderer,
	}
}

// ShowForm はメールキャプチャフォームを表示する。
// GET /email
// 既にメールがキャプチャ済みの場合はトップページへリダイレクトする。
func (h *EmailHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	if handle, err := middleware.SessionFromContext(r.Context()); err == nil {
		if _, ok := handle.Email(); ok {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, view.ViewEmail, view.PageData{}); err != nil {
		slog.Error("failed to render email page", slog.String("error", err.Error()))
	}
}

// Submit はメールアドレスの送信を処理する。
// POST /email
// 検証に失敗した場合はインラインエラー付きでフォームを再表示し、
// 成功した場合はセッションに保存してトップページへリダイレクトする。
func (h *EmailHandler) Submit(w http.ResponseWriter, r *http.Request) {
	handle, err := middleware.SessionFromContext(r.Context())
	if err != nil {
		http.Redirect(w, r, "/email", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderInvalid(w)
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	if !h.validator.Validate(email) {
		h.renderInvalid(w)
		return
	}

	if err := handle.SetEmail(r.Context(), email); err != nil {
		slog.Error("failed to store email in session",
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// renderInvalid はインラインエラー付きでメールフォームを再表示する。
func (h *EmailHandler) renderInvalid(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, view.ViewEmail, view.PageData{Error: model.MsgInvalidEmail}); err != nil {
		slog.Error("failed to render email page", slog.String("error", err.Error()))
	}
}
