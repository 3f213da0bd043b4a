package ai_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"distill/internal/service/ai"
)

func TestHTMLToText_StripsMarkup(t *testing.T) {
	text := ai.HTMLToText(`<html><head><title>ignored</title><script>var x=1;</script></head>
<body><h1>Headline</h1><p>First paragraph.</p><p>Second paragraph.</p></body></html>`)

	require.Contains(t, text, "Headline")
	require.Contains(t, text, "First paragraph.")
	require.Contains(t, text, "Second paragraph.")
	require.NotContains(t, text, "var x=1")
	require.NotContains(t, text, "<p>")
}

func TestHTMLToText_ParagraphBreaks(t *testing.T) {
	text := ai.HTMLToText(`<p>one</p><p>two</p>`)
	require.Equal(t, 2, len(strings.Split(text, "\n")))
}

func TestHTMLToText_PlainText(t *testing.T) {
	require.Equal(t, "just words", ai.HTMLToText("just words"))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", ai.Truncate("abc", 10))
	require.Equal(t, "abc", ai.Truncate("abcdef", 3))
	require.Equal(t, "abcdef", ai.Truncate("abcdef", 0))
	// Rune-aware: a multibyte character is never split.
	require.Equal(t, "日本", ai.Truncate("日本語", 2))
}
