package service

import (
	"context"
	"fmt"
	"strconv"

	"distill/internal/repository"
	"distill/internal/service/ai"
)

// AISettings holds the AI configuration. The API key is deliberately not
// part of it: the credential comes from the environment at startup and
// is never stored or exposed.
type AISettings struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	BaseURL   string `json:"baseUrl"`
	Language  string `json:"language"`
	RateLimit int    `json:"rateLimit"`
}

// SettingsService provides settings management.
type SettingsService interface {
	GetAISettings(ctx context.Context) (*AISettings, error)
	SetAISettings(ctx context.Context, settings *AISettings) error
}

type settingsService struct {
	repo repository.SettingsRepository
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) GetAISettings(ctx context.Context) (*AISettings, error) {
	settings := &AISettings{
		Provider:  defaultAIProvider,
		Model:     defaultAIModel,
		Language:  defaultLanguage,
		RateLimit: ai.DefaultRateLimit,
	}

	stored, err := s.repo.GetByPrefix(ctx, "ai.")
	if err != nil {
		return nil, fmt.Errorf("load ai settings: %w", err)
	}
	for _, set := range stored {
		if set.Value == "" {
			continue
		}
		switch set.Key {
		case SettingAIProvider:
			settings.Provider = set.Value
		case SettingAIModel:
			settings.Model = set.Value
		case SettingAIBaseURL:
			settings.BaseURL = set.Value
		case SettingAILanguage:
			settings.Language = set.Value
		case SettingAIRateLimit:
			if n, err := strconv.Atoi(set.Value); err == nil && n > 0 {
				settings.RateLimit = n
			}
		}
	}

	return settings, nil
}

func (s *settingsService) SetAISettings(ctx context.Context, settings *AISettings) error {
	switch settings.Provider {
	case "", ai.ProviderOpenAI, ai.ProviderAnthropic, ai.ProviderCompatible:
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalid, settings.Provider)
	}
	if settings.Provider == ai.ProviderCompatible && settings.BaseURL == "" {
		return fmt.Errorf("%w: compatible provider needs a base url", ErrInvalid)
	}
	if settings.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalid)
	}

	if settings.Provider != "" {
		if err := s.repo.Set(ctx, SettingAIProvider, settings.Provider); err != nil {
			return fmt.Errorf("set provider: %w", err)
		}
	}
	if err := s.repo.Set(ctx, SettingAIModel, settings.Model); err != nil {
		return fmt.Errorf("set model: %w", err)
	}
	if err := s.repo.Set(ctx, SettingAIBaseURL, settings.BaseURL); err != nil {
		return fmt.Errorf("set base url: %w", err)
	}
	if settings.Language != "" {
		if err := s.repo.Set(ctx, SettingAILanguage, settings.Language); err != nil {
			return fmt.Errorf("set language: %w", err)
		}
	}
	if settings.RateLimit > 0 {
		if err := s.repo.Set(ctx, SettingAIRateLimit, strconv.Itoa(settings.RateLimit)); err != nil {
			return fmt.Errorf("set rate limit: %w", err)
		}
	}
	return nil
}
