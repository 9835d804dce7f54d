// Package video は動画クリップのアップロード・一覧・アーカイブ削除の
// ビジネスロジックを提供する。
package video

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/clipvault/internal/metrics"
	"github.com/hitoshi/clipvault/internal/model"
	"github.com/hitoshi/clipvault/internal/storage"
)

// contentType はアップロードされるクリップのContent-Type。
const contentType = "video/webm"

// ServiceConfig は動画サービスの設定。
type ServiceConfig struct {
	Bucket     string
	PresignTTL time.Duration // 一覧の署名付きURLの有効期間
}

// Service は動画クリップの操作を提供する。
// オブジェクトキーは常にセッションのメールアドレス由来のプレフィックス
// 配下に閉じ、他セッションのオブジェクトには決して触れない。
type Service struct {
	store    storage.ObjectStore
	recorder metrics.Recorder
	config   ServiceConfig
}

// NewService はServiceを生成する。
func NewService(store storage.ObjectStore, recorder metrics.Recorder, config ServiceConfig) *Service {
	return &Service{
		store:    store,
		recorder: recorder,
		config:   config,
	}
}

// Upload は動画ストリームを新しいランダムIDでアップロードし、IDを返す。
// 既存キーとの衝突チェックは行わない（UUID v4の衝突は実用上無視できる）。
func (s *Service) Upload(ctx context.Context, email string, file io.Reader, size int64) (string, error) {
	videoID := uuid.NewString()
	key := storage.VideoKey(email, videoID)

	if err := s.store.Put(ctx, s.config.Bucket, key, file, size, contentType); err != nil {
		s.recorder.RecordUploadFailure()
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	s.recorder.RecordUploadSuccess(size)
	slog.Info("video uploaded",
		slog.String("key", key),
		slog.Int64("size", size),
	)

	return videoID, nil
}

// List はセッションのプレフィックス配下の動画一覧を返す。
// .webm以外のオブジェクトは除外し、各エントリに時限付きの署名付きURLを付与する。
// 並び順はストレージサービスの返却順のまま（ソート保証なし）。
func (s *Service) List(ctx context.Context, email string) ([]model.VideoEntry, error) {
	objects, err := s.store.List(ctx, s.config.Bucket, storage.VideoPrefix(email))
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	entries := make([]model.VideoEntry, 0, len(objects))
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, storage.VideoExt) {
			continue
		}

		url, err := s.store.PresignGet(ctx, s.config.Bucket, obj.Key, s.config.PresignTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to presign video %s: %w", obj.Key, err)
		}

		entries = append(entries, model.VideoEntry{
			Name: path.Base(obj.Key),
			URL:  url,
			Date: obj.LastModified.Format(time.RFC3339),
		})
	}

	s.recorder.RecordVideosListed(len(entries))
	return entries, nil
}

// Delete は動画をアーカイブキーへコピーしてから元キーを削除する。
// コピーと削除はアトミックではないため、コピー成功後に削除が失敗すると
// 両方のキーにオブジェクトが残る。補償は行わず、エラーをそのまま返す。
func (s *Service) Delete(ctx context.Context, email, videoID string) error {
	srcKey := storage.VideoKey(email, videoID)
	dstKey := storage.ArchiveKey(email, videoID)

	if err := s.store.Copy(ctx, s.config.Bucket, srcKey, dstKey); err != nil {
		s.recorder.RecordDeleteFailure()
		return fmt.Errorf("failed to archive video: %w", err)
	}

	if err := s.store.Remove(ctx, s.config.Bucket, srcKey); err != nil {
		s.recorder.RecordDeleteFailure()
		slog.Error("video archived but source removal failed; duplicate remains",
			slog.String("src", srcKey),
			slog.String("dst", dstKey),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to remove archived video source: %w", err)
	}

	s.recorder.RecordDeleteSuccess()
	slog.Info("video archived",
		slog.String("src", srcKey),
		slog.String("dst", dstKey),
	)

	return nil
}
