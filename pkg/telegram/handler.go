package telegram

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/dskvich/capture-telegram-bot/pkg/capture"
	"github.com/dskvich/capture-telegram-bot/pkg/domain"
	"github.com/dskvich/capture-telegram-bot/pkg/logger"
	"github.com/dskvich/capture-telegram-bot/pkg/render"
)

const (
	GreetingText       = "Please enter an URL."
	InvalidURLText     = "Please enter a valid URL."
	UnknownCommandText = "Unknown command. Send /help to see what I can do."
	UnauthorizedText   = "This chat is not allowed to use the bot."
)

const helpMarkdown = `Send me a **link** and I will reply with a capture of the page.

- /settings to pick the capture mode, resolution, device and format
- /help to show this message

Links without a scheme are opened over _https_.`

type Deduplicator interface {
	IsDuplicate(ctx context.Context, chatID int64, updateID int) (bool, error)
}

type MenuService interface {
	OpenMenu(ctx context.Context, chatID int64, commandMessageID int)
	HandleCallback(ctx context.Context, cb domain.CallbackQuery) error
}

type CaptureService interface {
	Capture(ctx context.Context, chatID int64, url string) error
}

type Responder interface {
	SendText(ctx context.Context, chatID int64, text string)
	SendHTML(ctx context.Context, chatID int64, html string)
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool)
}

type Authenticator interface {
	IsAuthorized(chatID int64) bool
}

type handler struct {
	dedup     Deduplicator
	menu      MenuService
	captures  CaptureService
	responder Responder
	auth      Authenticator
	helpHTML  string
}

func NewHandler(
	dedup Deduplicator,
	menu MenuService,
	captures CaptureService,
	responder Responder,
	auth Authenticator,
) *handler {
	return &handler{
		dedup:     dedup,
		menu:      menu,
		captures:  captures,
		responder: responder,
		auth:      auth,
		helpHTML:  render.TelegramHTML(helpMarkdown),
	}
}

// HandleUpdate processes one webhook update. Returned errors come from the store;
// everything user facing has been dealt with by then.
func (h *handler) HandleUpdate(ctx context.Context, update *tgbotapi.Update) error {
	ctx = logger.ContextWithUpdateID(ctx, update.UpdateID)

	switch {
	case update.CallbackQuery != nil:
		return h.handleCallback(ctx, update.UpdateID, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		return h.handleMessage(ctx, update.UpdateID, update.Message)
	default:
		slog.DebugContext(ctx, "Ignoring update")
		return nil
	}
}

// admit filters replayed and unauthorized updates. Updates without an id
// (callback bodies posted as bare callback_query objects) are not deduplicated.
func (h *handler) admit(ctx context.Context, chatID int64, updateID int) (bool, error) {
	if updateID != 0 {
		dup, err := h.dedup.IsDuplicate(ctx, chatID, updateID)
		if err != nil || dup {
			return false, err
		}
	}

	if !h.auth.IsAuthorized(chatID) {
		slog.WarnContext(ctx, "Unauthorized access attempt", "chatID", chatID)
		h.responder.SendText(ctx, chatID, UnauthorizedText)
		return false, nil
	}

	return true, nil
}

func (h *handler) handleCallback(ctx context.Context, updateID int, cq *tgbotapi.CallbackQuery) error {
	if cq.Message == nil || cq.Message.Chat == nil {
		slog.DebugContext(ctx, "Ignoring callback without message")
		return nil
	}
	chatID := cq.Message.Chat.ID

	ok, err := h.admit(ctx, chatID, updateID)
	if err != nil || !ok {
		return err
	}

	return h.menu.HandleCallback(ctx, domain.CallbackQuery{
		ID:        cq.ID,
		ChatID:    chatID,
		MessageID: cq.Message.MessageID,
		Data:      cq.Data,
	})
}

func (h *handler) handleMessage(ctx context.Context, updateID int, msg *tgbotapi.Message) error {
	if msg.Chat == nil {
		return nil
	}
	chatID := msg.Chat.ID

	ok, err := h.admit(ctx, chatID, updateID)
	if err != nil || !ok {
		return err
	}

	slog.InfoContext(ctx, "Processing message", "chatID", chatID, "text", msg.Text)

	if isBotCommand(msg) {
		h.handleCommand(ctx, msg)
		return nil
	}

	url, ok := capture.NormalizeURL(msg.Text)
	if !ok {
		h.responder.SendText(ctx, chatID, InvalidURLText)
		return nil
	}

	return h.captures.Capture(ctx, chatID, url)
}

func (h *handler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch strings.ToLower(msg.Command()) {
	case "start":
		h.responder.SendText(ctx, chatID, GreetingText)
	case "help":
		h.responder.SendHTML(ctx, chatID, h.helpHTML)
	case "settings":
		h.menu.OpenMenu(ctx, chatID, msg.MessageID)
	default:
		slog.WarnContext(ctx, "Unhandled command", "text", msg.Text)
		h.responder.SendText(ctx, chatID, UnknownCommandText)
	}
}

func isBotCommand(msg *tgbotapi.Message) bool {
	return strings.HasPrefix(msg.Text, "/") &&
		lo.ContainsBy(msg.Entities, func(e tgbotapi.MessageEntity) bool { return e.IsCommand() })
}
