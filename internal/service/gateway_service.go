package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"distill/internal/logger"
	"distill/internal/repository"
	"distill/internal/service/ai"
)

// Settings keys for the AI configuration.
const (
	SettingAIProvider  = "ai.provider"
	SettingAIModel     = "ai.model"
	SettingAIBaseURL   = "ai.base_url"
	SettingAILanguage  = "ai.language"
	SettingAIRateLimit = "ai.rate_limit"
)

const (
	defaultAIProvider = ai.ProviderOpenAI
	defaultAIModel    = "gpt-4o-mini"
	defaultLanguage   = "English"

	// compareContentLimit caps each article body sent for comparison.
	compareContentLimit = 2000
	// htmlContentLimit caps the HTML payload sent for summarization.
	htmlContentLimit = 8000
)

// EnvAPIKey is the environment variable consulted when no API key is
// passed to NewGatewayService explicitly.
const EnvAPIKey = "DISTILL_AI_API_KEY"

// Similarity is the verdict of a content comparison.
type Similarity int

const (
	// SimilarityUnknown means the model gave no usable verdict.
	SimilarityUnknown Similarity = iota
	SimilarityDifferent
	SimilarityDuplicate
)

func (s Similarity) String() string {
	switch s {
	case SimilarityDuplicate:
		return "duplicate"
	case SimilarityDifferent:
		return "different"
	default:
		return "unknown"
	}
}

// Extraction is the structured result of content extraction.
type Extraction struct {
	Title   string `json:"title,omitempty"`
	Date    string `json:"date,omitempty"`
	Content string `json:"content,omitempty"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// GatewayService sends content to the configured AI provider and
// normalizes the responses.
type GatewayService interface {
	// Clean strips navigation, ads and boilerplate from raw text.
	// Returns "" when the model finds no meaningful content.
	Clean(ctx context.Context, text string) (string, error)
	// Extract pulls structured fields out of raw text. A failed extraction
	// carries the model's reason in Extraction.Error; when the response is
	// not valid JSON the raw response is returned as Content.
	Extract(ctx context.Context, text string) (Extraction, error)
	// Compare asks the model whether two articles cover the same story.
	Compare(ctx context.Context, titleA, contentA, titleB, contentB string) (Similarity, error)
	// SummarizeTranslate produces an HTML summary of the content in the
	// given language. An empty language falls back to the configured one.
	// Returns "" when the model finds no article content.
	SummarizeTranslate(ctx context.Context, content, language string) (string, error)
	// TargetLanguage returns the configured summary language.
	TargetLanguage(ctx context.Context) string
	// TestConnection sends a test message to the configured provider.
	TestConnection(ctx context.Context) (string, error)
}

type gatewayService struct {
	apiKey      string
	settings    repository.SettingsRepository
	limiter     *ai.RateLimiter
	newProvider func(ai.Config) (ai.Provider, error)
}

// NewGatewayService creates the gateway. The API key is taken from the
// argument, or from DISTILL_AI_API_KEY when the argument is empty.
// Missing both is a configuration error and fails construction.
func NewGatewayService(apiKey string, settings repository.SettingsRepository, limiter *ai.RateLimiter) (GatewayService, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: AI API key must be passed explicitly or set in %s", ErrInvalid, EnvAPIKey)
	}
	if limiter == nil {
		limiter = ai.NewRateLimiter(ai.DefaultRateLimit)
	}
	return &gatewayService{
		apiKey:      apiKey,
		settings:    settings,
		limiter:     limiter,
		newProvider: ai.NewProvider,
	}, nil
}

func (s *gatewayService) Clean(ctx context.Context, text string) (string, error) {
	resp, err := s.generate(ctx, ai.GetCleanPrompt(), text)
	if err != nil {
		return "", fmt.Errorf("clean content: %w", err)
	}
	resp = strings.TrimSpace(resp)
	if resp == "" || hasNoContentMarker(resp) {
		return "", nil
	}
	return resp, nil
}

func (s *gatewayService) Extract(ctx context.Context, text string) (Extraction, error) {
	resp, err := s.generate(ctx, ai.GetExtractPrompt(), text)
	if err != nil {
		return Extraction{}, fmt.Errorf("extract content: %w", err)
	}
	resp = strings.TrimSpace(resp)
	if resp == "" {
		return Extraction{}, nil
	}

	// The prompt asks for {"error": "No valid content found"} on failure,
	// so that path decodes into Extraction.Error like any other field.
	var ex Extraction
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &ex); err != nil {
		// Models occasionally answer in prose despite the instructions.
		return Extraction{Content: resp}, nil
	}
	return ex, nil
}

func (s *gatewayService) Compare(ctx context.Context, titleA, contentA, titleB, contentB string) (Similarity, error) {
	// Strip markup before truncating so the window holds article text
	// rather than tags.
	body := fmt.Sprintf("Article 1 Title: %s\nArticle 1 Content:\n%s\n\nArticle 2 Title: %s\nArticle 2 Content:\n%s",
		titleA, ai.Truncate(ai.HTMLToText(contentA), compareContentLimit),
		titleB, ai.Truncate(ai.HTMLToText(contentB), compareContentLimit))

	resp, err := s.generate(ctx, ai.GetComparePrompt(), body)
	if err != nil {
		return SimilarityUnknown, fmt.Errorf("compare content: %w", err)
	}

	verdict := strings.ToUpper(strings.TrimSpace(resp))
	switch {
	case strings.Contains(verdict, "DUPLICATE"):
		return SimilarityDuplicate, nil
	case strings.Contains(verdict, "DIFFERENT"):
		return SimilarityDifferent, nil
	}
	logger.Warn("unexpected comparison verdict",
		"module", "gateway",
		"action", "compare",
		"result", "unknown")
	return SimilarityUnknown, nil
}

func (s *gatewayService) SummarizeTranslate(ctx context.Context, content, language string) (string, error) {
	if language == "" {
		language = s.TargetLanguage(ctx)
	}
	resp, err := s.generate(ctx, ai.GetSummarizeTranslatePrompt(language), ai.Truncate(content, htmlContentLimit))
	if err != nil {
		return "", fmt.Errorf("summarize content: %w", err)
	}
	resp = strings.TrimSpace(resp)
	if resp == "" || hasNoContentMarker(resp) {
		return "", nil
	}
	return resp, nil
}

func (s *gatewayService) TargetLanguage(ctx context.Context) string {
	return s.setting(ctx, SettingAILanguage, defaultLanguage)
}

func (s *gatewayService) TestConnection(ctx context.Context) (string, error) {
	p, err := s.provider(ctx)
	if err != nil {
		return "", err
	}
	return p.Test(ctx)
}

func (s *gatewayService) generate(ctx context.Context, systemPrompt, content string) (string, error) {
	p, err := s.provider(ctx)
	if err != nil {
		return "", err
	}
	if qps := s.settingInt(ctx, SettingAIRateLimit); qps > 0 && qps != s.limiter.GetLimit() {
		s.limiter.SetLimit(qps)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.Generate(ctx, systemPrompt, content)
}

func (s *gatewayService) provider(ctx context.Context) (ai.Provider, error) {
	cfg := ai.Config{
		Provider: s.setting(ctx, SettingAIProvider, defaultAIProvider),
		APIKey:   s.apiKey,
		BaseURL:  s.setting(ctx, SettingAIBaseURL, ""),
		Model:    s.setting(ctx, SettingAIModel, defaultAIModel),
	}
	return s.newProvider(cfg)
}

func (s *gatewayService) setting(ctx context.Context, key, fallback string) string {
	if s.settings == nil {
		return fallback
	}
	set, err := s.settings.Get(ctx, key)
	if err != nil || set == nil || set.Value == "" {
		return fallback
	}
	return set.Value
}

func (s *gatewayService) settingInt(ctx context.Context, key string) int {
	v := s.setting(ctx, key, "")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// hasNoContentMarker reports whether the model declared the input empty
// rather than producing a result. Matching is case-insensitive.
func hasNoContentMarker(resp string) bool {
	l := strings.ToLower(resp)
	return strings.Contains(l, "no valid content") ||
		strings.Contains(l, "no article content") ||
		strings.Contains(l, "no meaningful content")
}

// stripCodeFence unwraps a ```json ... ``` fenced response.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
