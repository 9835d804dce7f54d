// Package storage はオブジェクトストレージへのアダプタと
// オブジェクトキーの導出規則を提供する。
package storage

import "strings"

// VideoExt は保存する動画オブジェクトの拡張子。
// 録画フォーマットはブラウザのMediaRecorderが生成するWebMに固定している。
const VideoExt = ".webm"

var emailReplacer = strings.NewReplacer("@", "_at_", ".", "_dot_")

// SanitizeEmail はメールアドレスをキー安全なパスセグメントに変換する。
// @ を _at_ に、. を _dot_ に置換する。決定的かつ純粋。
// 置換トークンを含むローカル部同士の衝突は理論上あり得るが許容する。
func SanitizeEmail(email string) string {
	return emailReplacer.Replace(email)
}

// VideoPrefix は指定メールアドレスのライブ動画のキープレフィックスを返す。
func VideoPrefix(email string) string {
	return "videos/" + SanitizeEmail(email) + "/"
}

// VideoKey は指定メールアドレスと動画IDのライブキーを返す。
func VideoKey(email, videoID string) string {
	return VideoPrefix(email) + videoID + VideoExt
}

// ArchiveKey は指定メールアドレスと動画IDのアーカイブキーを返す。
// 復元時にContent-Typeを失わないよう、拡張子を保持する。
func ArchiveKey(email, videoID string) string {
	return "archive/" + SanitizeEmail(email) + "/" + videoID + VideoExt
}
