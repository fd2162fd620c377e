package services

import (
	"context"
	"log/slog"

	"github.com/dskvich/capture-telegram-bot/pkg/domain"
)

const (
	SettingsChangedText = "Settings successfully changed."
	UnknownOptionText   = "Unknown option."
)

type menuService struct {
	settings  *settingsService
	responder Responder
}

func NewMenuService(settings *settingsService, responder Responder) *menuService {
	return &menuService{
		settings:  settings,
		responder: responder,
	}
}

// OpenMenu replaces the /settings command message with a fresh root menu.
func (m *menuService) OpenMenu(ctx context.Context, chatID int64, commandMessageID int) {
	m.responder.DeleteMessage(ctx, chatID, commandMessageID)
	m.responder.SendMenu(ctx, chatID, domain.RootKeyboard())
}

func (m *menuService) HandleCallback(ctx context.Context, cb domain.CallbackQuery) error {
	token := domain.ParseCallbackToken(cb.Data)

	slog.InfoContext(ctx, "Handling menu callback", "chatID", cb.ChatID, "token", token.String())

	if !token.HasKey {
		switch token.Category {
		case domain.ExitCallback:
			m.responder.DeleteMessage(ctx, cb.ChatID, cb.MessageID)
			m.responder.AnswerCallback(ctx, cb.ID, "", false)
			return nil
		case domain.MenuCallback:
			m.responder.EditMenu(ctx, cb.ChatID, cb.MessageID, domain.RootKeyboard())
			m.responder.AnswerCallback(ctx, cb.ID, "", false)
			return nil
		}
	}

	menu, ok := domain.LookupMenu(token.Category)
	if !ok {
		slog.WarnContext(ctx, "Unhandled callback", "data", cb.Data)
		m.responder.AnswerCallback(ctx, cb.ID, UnknownOptionText, true)
		return nil
	}

	settings, err := m.settings.Get(ctx, cb.ChatID)
	if err != nil {
		m.responder.AnswerCallback(ctx, cb.ID, "", false)
		return err
	}

	if !token.HasKey {
		m.responder.EditMenu(ctx, cb.ChatID, cb.MessageID, menu.Keyboard(settings))
		m.responder.AnswerCallback(ctx, cb.ID, "", false)
		return nil
	}

	change, ok := menu.Resolve(token.Key)
	if !ok {
		slog.WarnContext(ctx, "Unsupported settings value", "category", menu.Category, "key", token.Key)
		m.responder.AnswerCallback(ctx, cb.ID, UnknownOptionText, true)
		return nil
	}

	if err := m.settings.Set(ctx, cb.ChatID, change); err != nil {
		m.responder.AnswerCallback(ctx, cb.ID, "", false)
		return err
	}

	m.responder.AnswerCallback(ctx, cb.ID, SettingsChangedText, true)
	m.responder.EditMenu(ctx, cb.ChatID, cb.MessageID, domain.RootKeyboard())

	return nil
}
