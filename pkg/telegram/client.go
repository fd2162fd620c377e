package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/dskvich/capture-telegram-bot/pkg/domain"
	"github.com/dskvich/capture-telegram-bot/pkg/logger"
)

const requestTimeout = 60 * time.Second

type client struct {
	bot *tgbotapi.BotAPI
}

// NewClient authorizes the token against apiEndpoint (tgbotapi.APIEndpoint when empty).
func NewClient(token, apiEndpoint string) (*client, error) {
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}

	bot, err := tgbotapi.NewBotAPIWithClient(token, apiEndpoint, &http.Client{Timeout: requestTimeout})
	if err != nil {
		return nil, fmt.Errorf("creating bot api instance: %w", err)
	}

	slog.Info("Authorized on telegram", "account", bot.Self.UserName)

	return &client{bot: bot}, nil
}

func (c *client) SendText(ctx context.Context, chatID int64, text string) {
	c.send(ctx, "sending text", tgbotapi.NewMessage(chatID, text))
}

func (c *client) SendHTML(ctx context.Context, chatID int64, html string) {
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	c.send(ctx, "sending html", msg)
}

func (c *client) SendDocument(ctx context.Context, chatID int64, result domain.CaptureResult) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  result.Filename(),
		Bytes: result.Data,
	})
	c.send(ctx, "sending document", doc)
}

func (c *client) SendMenu(ctx context.Context, chatID int64, keyboard domain.Keyboard) {
	msg := tgbotapi.NewMessage(chatID, keyboard.Title)
	msg.ReplyMarkup = toMarkup(keyboard)
	c.send(ctx, "sending menu", msg)
}

func (c *client) EditMenu(ctx context.Context, chatID int64, messageID int, keyboard domain.Keyboard) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, keyboard.Title, toMarkup(keyboard))
	c.request(ctx, "editing menu", edit)
}

func (c *client) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) {
	answer := tgbotapi.NewCallback(callbackID, text)
	answer.ShowAlert = alert
	c.request(ctx, "answering callback", answer)
}

func (c *client) DeleteMessage(ctx context.Context, chatID int64, messageID int) {
	c.request(ctx, "deleting message", tgbotapi.NewDeleteMessage(chatID, messageID))
}

// SetWebhook registers url with Telegram. The raw response is returned even when Telegram rejects it.
func (c *client) SetWebhook(url string) (*tgbotapi.APIResponse, error) {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return nil, fmt.Errorf("parsing webhook url: %w", err)
	}

	resp, err := c.bot.Request(wh)
	if err != nil {
		return resp, fmt.Errorf("setting webhook: %w", err)
	}
	return resp, nil
}

func (c *client) send(ctx context.Context, action string, msg tgbotapi.Chattable) {
	if _, err := c.bot.Send(msg); err != nil {
		slog.ErrorContext(ctx, "Telegram call failed", "action", action, logger.Err(err))
	}
}

// request is used for methods whose result is not a Message.
func (c *client) request(ctx context.Context, action string, msg tgbotapi.Chattable) {
	if _, err := c.bot.Request(msg); err != nil {
		slog.ErrorContext(ctx, "Telegram call failed", "action", action, logger.Err(err))
	}
}

func toMarkup(keyboard domain.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := lo.Map(keyboard.Rows, func(row []domain.Button, _ int) []tgbotapi.InlineKeyboardButton {
		return lo.Map(row, func(b domain.Button, _ int) tgbotapi.InlineKeyboardButton {
			return tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data)
		})
	})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
