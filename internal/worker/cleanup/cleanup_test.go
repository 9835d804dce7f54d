package cleanup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"
)

// SessionDeleter インターフェースに対するモック実装
type mockDeleter struct {
	callCount int
	deleted   int64
	err       error
}

func (m *mockDeleter) DeleteExpired(ctx context.Context) (int64, error) {
	m.callCount++
	return m.deleted, m.err
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func TestNewCleanupJob_DefaultInterval(t *testing.T) {
	var buf bytes.Buffer
	job := NewCleanupJob(&mockDeleter{}, newTestLogger(&buf))

	if job.Interval != 1*time.Hour {
		t.Errorf("Interval = %v, want 1h", job.Interval)
	}
}

func TestCleanupJob_Run_DeletesExpiredSessions(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockDeleter{deleted: 7}
	job := NewCleanupJob(mock, newTestLogger(&buf))

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if mock.callCount != 1 {
		t.Errorf("DeleteExpired called %d times, want 1", mock.callCount)
	}

	// 削除件数がログに含まれること
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["deleted_count"] != float64(7) {
		t.Errorf("deleted_count = %v, want 7", entry["deleted_count"])
	}
}

func TestCleanupJob_Run_NoExpiredSessions_Succeeds(t *testing.T) {
	var buf bytes.Buffer
	job := NewCleanupJob(&mockDeleter{deleted: 0}, newTestLogger(&buf))

	if err := job.Run(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCleanupJob_Run_RepositoryError_ReturnsError(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockDeleter{err: errors.New("connection lost")}
	job := NewCleanupJob(mock, newTestLogger(&buf))

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestCleanupJob_Start_StopsOnContextCancel(t *testing.T) {
	var buf bytes.Buffer
	mock := &mockDeleter{}
	job := NewCleanupJob(mock, newTestLogger(&buf))
	job.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()

	// 起動直後の実行と数回のtickを待つ
	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Start did not stop after context cancel")
	}

	if mock.callCount < 2 {
		t.Errorf("DeleteExpired called %d times, want at least 2", mock.callCount)
	}
}
