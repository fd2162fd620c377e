package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/capture-telegram-bot/pkg/domain"
	"github.com/dskvich/capture-telegram-bot/pkg/repository"
)

const chatID int64 = 42

func newMenu() (*menuService, *fakeResponder, *settingsService) {
	responder := &fakeResponder{}
	settings := NewSettingsService(repository.NewMemorySettingsRepository("bot"))
	return NewMenuService(settings, responder), responder, settings
}

func callback(data string) domain.CallbackQuery {
	return domain.CallbackQuery{ID: "cb", ChatID: chatID, MessageID: 7, Data: data}
}

func TestOpenMenu(t *testing.T) {
	menu, responder, _ := newMenu()

	menu.OpenMenu(context.Background(), chatID, 3)

	calls := responder.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "DeleteMessage", calls[0].Method)
	assert.Equal(t, 3, calls[0].MessageID)
	assert.Equal(t, "SendMenu", calls[1].Method)
	assert.Equal(t, domain.RootKeyboard(), calls[1].Keyboard)
}

func TestHandleCallbackOpensCategory(t *testing.T) {
	menu, responder, _ := newMenu()

	require.NoError(t, menu.HandleCallback(context.Background(), callback("resolution")))

	calls := responder.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "EditMenu", calls[0].Method)
	assert.Equal(t, 7, calls[0].MessageID)

	var labels []string
	for _, row := range calls[0].Keyboard.Rows {
		for _, b := range row {
			labels = append(labels, b.Label)
		}
	}
	assert.Contains(t, labels, "✅ 800x600")
	assert.Equal(t, "AnswerCallback", calls[1].Method)
	assert.False(t, calls[1].Alert)
}

func TestHandleCallbackSetsValue(t *testing.T) {
	ctx := context.Background()
	menu, responder, settings := newMenu()

	require.NoError(t, menu.HandleCallback(ctx, callback("format_PDF")))

	got, err := settings.Get(ctx, chatID)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPDF, got.Format)
	assert.Equal(t, domain.DefaultSettings(chatID).Resolution, got.Resolution)

	calls := responder.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, call{Method: "AnswerCallback", Text: SettingsChangedText, Alert: true}, calls[0])
	assert.Equal(t, "EditMenu", calls[1].Method)
	assert.Equal(t, domain.RootKeyboard(), calls[1].Keyboard)
}

func TestHandleCallbackBackToRoot(t *testing.T) {
	menu, responder, _ := newMenu()

	require.NoError(t, menu.HandleCallback(context.Background(), callback(domain.MenuCallback)))

	assert.Equal(t, []string{"EditMenu", "AnswerCallback"}, responder.Methods())
	assert.Equal(t, domain.RootKeyboard(), responder.Calls()[0].Keyboard)
}

func TestHandleCallbackExit(t *testing.T) {
	menu, responder, _ := newMenu()

	require.NoError(t, menu.HandleCallback(context.Background(), callback(domain.ExitCallback)))

	calls := responder.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "DeleteMessage", calls[0].Method)
	assert.Equal(t, 7, calls[0].MessageID)
}

func TestHandleCallbackRejectsUnknownOptions(t *testing.T) {
	for _, data := range []string{"colour", "colour_red", "resolution_640", "device_linux"} {
		t.Run(data, func(t *testing.T) {
			ctx := context.Background()
			menu, responder, settings := newMenu()

			require.NoError(t, menu.HandleCallback(ctx, callback(data)))

			assert.Equal(t, []call{{Method: "AnswerCallback", Text: UnknownOptionText, Alert: true}}, filterAnswers(responder.Calls()))
			assert.NotContains(t, responder.Methods(), "EditMenu")

			got, err := settings.Get(ctx, chatID)
			require.NoError(t, err)
			assert.Equal(t, domain.DefaultSettings(chatID), got)
		})
	}
}

func filterAnswers(calls []call) []call {
	var answers []call
	for _, c := range calls {
		if c.Method == "AnswerCallback" {
			answers = append(answers, c)
		}
	}
	return answers
}
