package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/clipvault/internal/middleware"
	"github.com/hitoshi/clipvault/internal/model"
)

// VideoServiceInterface は動画ハンドラーが必要とするサービスインターフェース。
type VideoServiceInterface interface {
	// Upload は動画をオブジェクトストレージに保存し、動画IDを返す。
	Upload(ctx context.Context, email string, file io.Reader, size int64) (string, error)
	// List はユーザーの動画一覧を署名付きURL付きで返す。
	List(ctx context.Context, email string) ([]model.VideoEntry, error)
	// Delete は動画をアーカイブ領域へ移動する。
	Delete(ctx context.Context, email, videoID string) error
}

// VideoHandlerConfig は動画ハンドラーの設定。
type VideoHandlerConfig struct {
	MaxUploadSize int64 // アップロードの最大サイズ（バイト）
}

// VideoHandler は動画のアップロード・一覧・削除のHTTPハンドラー。
type VideoHandler struct {
	service VideoServiceInterface
	config  VideoHandlerConfig
}

// NewVideoHandler はVideoHandlerを生成する。
func NewVideoHandler(service VideoServiceInterface, config VideoHandlerConfig) *VideoHandler {
	return &VideoHandler{
		service: service,
		config:  config,
	}
}

// uploadResponse は動画アップロード成功時のレスポンス。
type uploadResponse struct {
	Success bool   `json:"success"`
	VideoID string `json:"video_id"`
}

// deleteResponse は動画削除成功時のレスポンス。
type deleteResponse struct {
	Success bool `json:"success"`
}

// Upload は動画のアップロードを処理する。
// POST /video
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, model.MsgSessionExpired)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)

	file, header, err := r.FormFile("video")
	if err != nil {
		writeError(w, http.StatusBadRequest, model.MsgNoVideoFile)
		return
	}
	defer file.Close()

	if header.Size == 0 {
		writeError(w, http.StatusBadRequest, model.MsgEmptyFile)
		return
	}

	videoID, err := h.service.Upload(r.Context(), email, file, header.Size)
	if err != nil {
		slog.Error("failed to upload video",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{Success: true, VideoID: videoID})
}

// List はユーザーの動画一覧を返す。
// GET /my-videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, model.MsgUnauthorized)
		return
	}

	entries, err := h.service.List(r.Context(), email)
	if err != nil {
		slog.Error("failed to list videos",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Delete は動画をアーカイブへ移動する。
// GET /delete-video/{video_id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email, ok := sessionEmail(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, model.MsgUnauthorized)
		return
	}

	videoID := chi.URLParam(r, "video_id")

	if err := h.service.Delete(r.Context(), email, videoID); err != nil {
		slog.Error("failed to delete video",
			slog.String("error", err.Error()),
			slog.String("video_id", videoID),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, deleteResponse{Success: true})
}

// sessionEmail はリクエストのセッションからキャプチャ済みメールアドレスを取得する。
func sessionEmail(r *http.Request) (string, bool) {
	handle, err := middleware.SessionFromContext(r.Context())
	if err != nil {
		return "", false
	}
	return handle.Email()
}
