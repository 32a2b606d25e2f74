// ABOUTME: Content processing utilities for article bodies
// ABOUTME: Detects HTML and converts it to Markdown for terminal display

package content

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// htmlTagPattern matches common HTML tags
var htmlTagPattern = regexp.MustCompile(`<\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|table|tr|td|th|strong|em|b|i|code|pre|blockquote)[^>]*>`)

// IsHTML checks if content appears to be HTML
func IsHTML(s string) bool {
	if strings.Contains(s, "<!DOCTYPE") || strings.Contains(s, "<html") {
		return true
	}
	return htmlTagPattern.MatchString(s)
}

// ToMarkdown converts HTML article content to Markdown for rendering.
// Plain-text content passes through unchanged, as does anything the
// converter chokes on.
func ToMarkdown(s string) string {
	if s == "" || !IsHTML(s) {
		return s
	}

	markdown, err := htmltomarkdown.ConvertString(s)
	if err != nil {
		return s
	}
	return strings.TrimSpace(markdown)
}
