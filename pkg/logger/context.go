package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	botKey      contextKey = "bot"
	updateIDKey contextKey = "update_id"
)

func ContextWithBot(ctx context.Context, bot string) context.Context {
	return context.WithValue(ctx, botKey, bot)
}

func BotFromContext(ctx context.Context) (string, bool) {
	bot, ok := ctx.Value(botKey).(string)
	return bot, ok
}

// ContextWithUpdateID tags every record logged with ctx by the Telegram update being processed.
func ContextWithUpdateID(ctx context.Context, updateID int) context.Context {
	return context.WithValue(ctx, updateIDKey, updateID)
}

func UpdateIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(updateIDKey).(int)
	return id, ok
}

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("err", "<nil>")
	}
	return slog.String("err", err.Error())
}
