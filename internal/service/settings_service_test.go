package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"distill/internal/service"
	"distill/internal/service/ai"
)

func TestGetAISettings_Defaults(t *testing.T) {
	svc := service.NewSettingsService(&settingsStub{})

	settings, err := svc.GetAISettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, ai.ProviderOpenAI, settings.Provider)
	require.Equal(t, "English", settings.Language)
	require.Equal(t, ai.DefaultRateLimit, settings.RateLimit)
	require.NotEmpty(t, settings.Model)
}

func TestSetAISettings_RoundTrip(t *testing.T) {
	store := &settingsStub{}
	svc := service.NewSettingsService(store)

	err := svc.SetAISettings(context.Background(), &service.AISettings{
		Provider:  ai.ProviderAnthropic,
		Model:     "claude-sonnet-4-5",
		Language:  "German",
		RateLimit: 3,
	})
	require.NoError(t, err)

	settings, err := svc.GetAISettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, ai.ProviderAnthropic, settings.Provider)
	require.Equal(t, "claude-sonnet-4-5", settings.Model)
	require.Equal(t, "German", settings.Language)
	require.Equal(t, 3, settings.RateLimit)
}

func TestGetAISettings_IgnoresUnrelatedKeys(t *testing.T) {
	svc := service.NewSettingsService(&settingsStub{values: map[string]string{
		"ai.model":         "gpt-5",
		"scheduler.period": "300",
	}})

	settings, err := svc.GetAISettings(context.Background())
	require.NoError(t, err)
	require.Equal(t, "gpt-5", settings.Model)
	require.Equal(t, ai.ProviderOpenAI, settings.Provider)
}

func TestSetAISettings_Validation(t *testing.T) {
	svc := service.NewSettingsService(&settingsStub{})

	err := svc.SetAISettings(context.Background(), &service.AISettings{Provider: "mystery"})
	require.ErrorIs(t, err, service.ErrInvalid)

	err = svc.SetAISettings(context.Background(), &service.AISettings{Provider: ai.ProviderCompatible})
	require.ErrorIs(t, err, service.ErrInvalid, "compatible provider requires a base url")

	err = svc.SetAISettings(context.Background(), &service.AISettings{RateLimit: -1})
	require.ErrorIs(t, err, service.ErrInvalid)
}
