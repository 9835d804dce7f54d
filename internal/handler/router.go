package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/clipvault/internal/metrics"
	"github.com/hitoshi/clipvault/internal/middleware"
	"github.com/hitoshi/clipvault/internal/view"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger         *slog.Logger
	SessionService middleware.SessionService
	CookieOptions  middleware.CookieOptions
	RateLimiter    *middleware.RateLimiter
	HTTPMetrics    middleware.HTTPMetrics

	// ハンドラー依存
	EmailValidator EmailValidatorInterface
	VideoService   VideoServiceInterface
	VideoConfig    VideoHandlerConfig
	Renderer       *view.Renderer
	DB             Pinger

	// メトリクスエンドポイント
	Gatherer prometheus.Gatherer
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → Logging → Session → RateLimit(General)
//
// 静的アセット・ヘルスチェック・メトリクスはセッションミドルウェアの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.HTTPMetrics))

	pageHandler := NewPageHandler(deps.Renderer)
	emailHandler := NewEmailHandler(deps.EmailValidator, deps.Renderer)
	videoHandler := NewVideoHandler(deps.VideoService, deps.VideoConfig)
	healthHandler := NewHealthHandler(deps.DB)

	// --- セッション不要のルート ---

	r.Get("/favicon.ico", pageHandler.Favicon)
	r.Get("/robots.txt", pageHandler.Robots)
	r.Get("/health", healthHandler.Check)

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- セッションが必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionService, deps.CookieOptions))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/", pageHandler.Root)

		r.Get("/email", emailHandler.ShowForm)
		r.Post("/email", emailHandler.Submit)

		// POST /video - 動画アップロード（専用レート制限を追加）
		r.With(deps.RateLimiter.UploadMiddleware()).Post("/video", videoHandler.Upload)

		r.Get("/my-videos", videoHandler.List)
		r.Get("/delete-video/{video_id}", videoHandler.Delete)
	})

	return r
}
