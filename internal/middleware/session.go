// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hitoshi/clipvault/internal/session"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// sessionContextKey はリクエストコンテキストにセッションハンドルを格納するためのキー。
var sessionContextKey = contextKey("session")

// SessionService はセッションミドルウェアが必要とするサービスインターフェース。
// session.Serviceの部分集合として定義する。
type SessionService interface {
	Resolve(ctx context.Context, cookieValue string) (*session.Handle, bool, error)
	CookieValue(h *session.Handle) string
	MaxAge() int
}

// CookieOptions はセッションCookieの属性設定。
type CookieOptions struct {
	Secure bool
	Domain string
}

// NewSessionMiddleware は署名付きCookieからセッションを解決するミドルウェアを返す。
// 有効なセッションがない場合は新しい空セッションを作成してCookieを設定する。
// 解決したセッションハンドルをリクエストコンテキストに注入する。
func NewSessionMiddleware(svc SessionService, opts CookieOptions) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var cookieValue string
			if cookie, err := r.Cookie(session.CookieName); err == nil {
				cookieValue = cookie.Value
			}

			handle, created, err := svc.Resolve(r.Context(), cookieValue)
			if err != nil {
				slog.Error("failed to resolve session",
					slog.String("error", err.Error()),
				)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     session.CookieName,
					Value:    svc.CookieValue(handle),
					Path:     "/",
					Domain:   opts.Domain,
					MaxAge:   svc.MaxAge(),
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteStrictMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, handle)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext はリクエストコンテキストからセッションハンドルを取得する。
// セッションミドルウェアを通過したリクエストでのみ有効。
func SessionFromContext(ctx context.Context) (*session.Handle, error) {
	handle, ok := ctx.Value(sessionContextKey).(*session.Handle)
	if !ok || handle == nil {
		return nil, fmt.Errorf("session not found in context")
	}
	return handle, nil
}

// ContextWithSession はコンテキストにセッションハンドルを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithSession(ctx context.Context, handle *session.Handle) context.Context {
	return context.WithValue(ctx, sessionContextKey, handle)
}
