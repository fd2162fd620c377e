package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/capture-telegram-bot/pkg/domain"
	"github.com/dskvich/capture-telegram-bot/pkg/repository"
)

func TestSettingsServiceSetOnUnseenChat(t *testing.T) {
	ctx := context.Background()
	settings := NewSettingsService(repository.NewMemorySettingsRepository("bot"))

	require.NoError(t, settings.Set(ctx, chatID, domain.DeviceChange{Value: domain.DeviceAndroid}))

	got, err := settings.Get(ctx, chatID)
	require.NoError(t, err)

	want := domain.DefaultSettings(chatID)
	want.Device = domain.DeviceAndroid
	assert.Equal(t, want, got)
}
