package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo はオブジェクト一覧の1エントリを表す。
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStore はオブジェクトストレージサービスへの薄いアダプタの
// インターフェース。エラーはそのまま呼び出し元に伝播し、リトライや
// 部分失敗の補償は行わない。
type ObjectStore interface {
	// Put は固定長のバイトストリームを指定キーにアップロードする。
	// 既存キーは事前チェックなしで上書きされる。
	Put(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error

	// List は指定プレフィックス配下のオブジェクト一覧を返す。
	// 並び順はストレージサービス定義で、ソートは保証されない。
	List(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)

	// PresignGet は追加認証なしで読み取り可能な時限付きURLを生成する。
	PresignGet(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)

	// Copy はバケット内でオブジェクトを複製する。
	Copy(ctx context.Context, bucket, srcKey, dstKey string) error

	// Remove は指定キーのオブジェクトを削除する。
	Remove(ctx context.Context, bucket, key string) error
}
