package service

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	t.Parallel()

	html, err := RenderMarkdown("今天 **很充实**")
	if err != nil {
		t.Fatalf("RenderMarkdown returned error: %v", err)
	}
	if !strings.Contains(string(html), "<strong>很充实</strong>") {
		t.Fatalf("expected bold rendering, got %s", html)
	}
}

func TestRenderMarkdownStripsScript(t *testing.T) {
	t.Parallel()

	html, err := RenderMarkdown("正文<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderMarkdown returned error: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Fatalf("expected script tags to be sanitized, got %s", html)
	}
}
