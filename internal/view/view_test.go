package view

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewRenderer_ParsesAllViews(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if r == nil {
		t.Fatal("expected non-nil renderer")
	}
}

func TestRender_EmailView_ContainsForm(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, ViewEmail, PageData{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `action="/email"`) {
		t.Error("email view should contain the capture form")
	}
	if !strings.Contains(out, "Email - clipvault") {
		t.Error("email view should use the default page title")
	}
}

func TestRender_EmailView_ShowsInlineError(t *testing.T) {
	r, _ := NewRenderer()

	var buf bytes.Buffer
	if err := r.Render(&buf, ViewEmail, PageData{Error: "Invalid email address"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(buf.String(), "Invalid email address") {
		t.Error("email view should render the inline error message")
	}
}

func TestRender_VideoView_ShowsEmail(t *testing.T) {
	r, _ := NewRenderer()

	var buf bytes.Buffer
	if err := r.Render(&buf, ViewVideo, PageData{Email: "user@example.com"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(buf.String(), "user@example.com") {
		t.Error("video view should show the captured email")
	}
}

func TestRender_EscapesUserInput(t *testing.T) {
	r, _ := NewRenderer()

	var buf bytes.Buffer
	if err := r.Render(&buf, ViewEmail, PageData{Email: `"><script>alert(1)</script>`}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Error("user input must be HTML-escaped")
	}
}

func TestRender_UnknownView_ReturnsError(t *testing.T) {
	r, _ := NewRenderer()

	var buf bytes.Buffer
	if err := r.Render(&buf, View(99), PageData{}); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestStaticAssets_Embedded(t *testing.T) {
	if len(Favicon()) == 0 {
		t.Error("favicon.ico should be embedded")
	}
	robots := Robots()
	if !strings.Contains(string(robots), "User-agent") {
		t.Errorf("robots.txt content unexpected: %q", string(robots))
	}
}
