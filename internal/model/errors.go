package model

// クライアント向けエラーメッセージ。
// レスポンスボディの {"error": "..."} に入る文字列はAPIの互換性契約で
// あるため、定数として一箇所に集約する。
const (
	// MsgSessionExpired はアップロード時にセッションにメールがない場合の401メッセージ。
	MsgSessionExpired = "Session expired"
	// MsgUnauthorized は一覧・削除時にセッションにメールがない場合の401メッセージ。
	MsgUnauthorized = "Unauthorized"
	// MsgNoVideoFile はマルチパートにvideoパートがない場合の400メッセージ。
	MsgNoVideoFile = "No video file"
	// MsgEmptyFile はアップロードされたファイルが0バイトの場合の400メッセージ。
	MsgEmptyFile = "Empty file"
	// MsgInvalidEmail はメールキャプチャフォームのインラインエラーメッセージ。
	MsgInvalidEmail = "Invalid email address"
)
