// ABOUTME: Tests for HTML detection and markdown conversion
// ABOUTME: Plain text must always pass through untouched

package content

import (
	"strings"
	"testing"
)

func TestIsHTML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"doctype", "<!DOCTYPE html><html></html>", true},
		{"html tag", "<html><body>x</body></html>", true},
		{"paragraph", "<p>hello</p>", true},
		{"link", `<a href="https://example.com">link</a>`, true},
		{"heading", "<h2>section</h2>", true},
		{"plain text", "just some words", false},
		{"angle brackets only", "x < y and y > z", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHTML(tt.input); got != tt.want {
				t.Errorf("IsHTML(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToMarkdownConvertsHTML(t *testing.T) {
	got := ToMarkdown("<p>Hello <strong>world</strong></p>")
	if !strings.Contains(got, "**world**") {
		t.Errorf("expected bold markdown, got %q", got)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("tags should be gone, got %q", got)
	}
}

func TestToMarkdownPlainTextPassthrough(t *testing.T) {
	input := "no markup here, just prose"
	if got := ToMarkdown(input); got != input {
		t.Errorf("plain text changed: %q", got)
	}
}

func TestToMarkdownEmpty(t *testing.T) {
	if got := ToMarkdown(""); got != "" {
		t.Errorf("empty input should stay empty, got %q", got)
	}
}
