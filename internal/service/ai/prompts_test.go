package ai_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"distill/internal/service/ai"
)

func TestGetCleanPrompt_ContainsMarker(t *testing.T) {
	prompt := ai.GetCleanPrompt()
	require.Contains(t, prompt, "<instructions>")
	require.Contains(t, prompt, ai.NoContentMarker)
}

func TestGetExtractPrompt_FieldsAndError(t *testing.T) {
	prompt := ai.GetExtractPrompt()
	require.Contains(t, prompt, `"title"`)
	require.Contains(t, prompt, `"date"`)
	require.Contains(t, prompt, `"content"`)
	require.Contains(t, prompt, `"summary"`)
	require.Contains(t, prompt, `{"error": "`+ai.NoContentMarker+`"}`)
}

func TestGetComparePrompt_Verdicts(t *testing.T) {
	prompt := ai.GetComparePrompt()
	require.Contains(t, prompt, `"DUPLICATE"`)
	require.Contains(t, prompt, `"DIFFERENT"`)
}

func TestGetSummarizeTranslatePrompt_UsesLanguage(t *testing.T) {
	prompt := ai.GetSummarizeTranslatePrompt("Japanese")
	require.Contains(t, prompt, "<target_language>Japanese</target_language>")
	require.Contains(t, prompt, "No article content found")
}
