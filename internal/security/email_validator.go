// Package security は入力検証に関するサービスを提供する。
package security

import (
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// emailPattern はメールアドレスの緩い構文チェック。
// ローカル部は英数字と . _ % + - を許可する（+のサブアドレス規約を含む）。
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// EmailValidator はメールアドレスの構文検証を提供する。
// 実在確認（メールボックス検証やDNSルックアップ）は行わない。
type EmailValidator struct{}

// NewEmailValidator はEmailValidatorを生成する。
func NewEmailValidator() *EmailValidator {
	return &EmailValidator{}
}

// Validate は候補文字列がメールアドレスとして妥当かどうかを返す。
// 構文パターンに一致し、かつドメイン部がPublic Suffix Listで認識される
// サフィックスで終わる場合のみtrueを返す。
func (v *EmailValidator) Validate(candidate string) bool {
	if !emailPattern.MatchString(candidate) {
		return false
	}

	domain := strings.ToLower(candidate[strings.LastIndex(candidate, "@")+1:])

	suffix, icann := publicsuffix.PublicSuffix(domain)
	if suffix == "" {
		return false
	}

	// icann=falseはPSLのプライベートセクション（例: github.io）または
	// 未知のTLDのどちらか。未知のTLDはワイルドカード規則により
	// 最終ラベル1つだけが返るため、ドットの有無で区別できる。
	if !icann && !strings.Contains(suffix, ".") {
		return false
	}

	return true
}
