// Package model はドメインモデルを定義する。
package model

import "time"

// Session は訪問者ごとのサーバーサイドセッションを表す。
// 初回アクセス時に空のセッションとして作成され、メールアドレスの
// キャプチャが成功した時点でEmailが設定される。
type Session struct {
	ID        string
	Email     string // メール未キャプチャの間は空文字列
	ExpiresAt time.Time
	CreatedAt time.Time
}

// HasEmail はメールアドレスがキャプチャ済みかどうかを返す。
func (s *Session) HasEmail() bool {
	return s.Email != ""
}
