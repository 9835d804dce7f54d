// Package view はHTMLビューのレンダリングと静的アセットの提供を行う。
// ビューは列挙された識別子で指定し、テンプレート名の文字列による
// 動的ディスパッチは行わない。
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/favicon.ico static/robots.txt
var staticFS embed.FS

// View はレンダリング可能なページの識別子。
type View int

const (
	// ViewEmail はメールキャプチャフォームのページ。
	ViewEmail View = iota
	// ViewVideo は録画・一覧のメインページ。
	ViewVideo
)

// title はページタイトルを返す。
func (v View) title() string {
	switch v {
	case ViewEmail:
		return "Email"
	case ViewVideo:
		return "Video"
	default:
		return ""
	}
}

// file はテンプレートファイル名を返す。
func (v View) file() string {
	switch v {
	case ViewEmail:
		return "email.html"
	case ViewVideo:
		return "video.html"
	default:
		return ""
	}
}

// PageData はテンプレートに渡すデータ。
type PageData struct {
	Page  string // ページタイトル
	Email string // キャプチャ済みメールアドレス（未キャプチャは空）
	Error string // フォームのインラインエラーメッセージ
}

// Renderer は埋め込みテンプレートをビュー単位でレンダリングする。
type Renderer struct {
	templates map[View]*template.Template
}

// NewRenderer は全ビューのテンプレートをパースしたRendererを生成する。
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[View]*template.Template)}

	for _, v := range []View{ViewEmail, ViewVideo} {
		tmpl, err := template.ParseFS(templatesFS, "templates/"+v.file())
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", v.file(), err)
		}
		r.templates[v] = tmpl
	}

	return r, nil
}

// Render は指定ビューをレンダリングする。
// data.Pageが空の場合はビューのデフォルトタイトルを設定する。
func (r *Renderer) Render(w io.Writer, v View, data PageData) error {
	tmpl, ok := r.templates[v]
	if !ok {
		return fmt.Errorf("unknown view: %d", v)
	}

	if data.Page == "" {
		data.Page = v.title()
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", v.file(), err)
	}
	return nil
}

// Favicon は埋め込みのfavicon.icoのバイト列を返す。
func Favicon() []byte {
	data, _ := staticFS.ReadFile("static/favicon.ico")
	return data
}

// Robots は埋め込みのrobots.txtのバイト列を返す。
func Robots() []byte {
	data, _ := staticFS.ReadFile("static/robots.txt")
	return data
}
