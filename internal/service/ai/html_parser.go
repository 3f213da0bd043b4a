package ai

import (
	"strings"

	"golang.org/x/net/html"
)

// HTMLToText converts HTML content to plain text, preserving paragraph
// breaks. Used to shrink prompts before sending content to the model.
func HTMLToText(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		// Fallback: return content as-is if parsing fails
		return content
	}

	var buf strings.Builder
	extractText(doc, &buf)

	return strings.TrimSpace(buf.String())
}

// extractText recursively extracts text from HTML nodes.
func extractText(n *html.Node, buf *strings.Builder) {
	if n == nil {
		return
	}

	// Skip non-content elements
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "head", "meta", "link":
			return
		case "br":
			buf.WriteString("\n")
			return
		case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6",
			"li", "tr", "blockquote", "section", "article":
			// Add newline before block elements if buffer is not empty
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}

	if n.Type == html.TextNode {
		text := n.Data
		if !isWhitespaceOnly(text) {
			buf.WriteString(strings.TrimSpace(text))
			buf.WriteString(" ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, buf)
	}
}

func isWhitespaceOnly(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Truncate bounds s to at most limit runes. Model payloads are truncated
// rather than rejected so oversized articles still get a best-effort pass.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
