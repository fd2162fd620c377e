package auth

import (
	"crypto/subtle"
	"log/slog"

	"github.com/samber/lo"
)

type authenticator struct {
	authorizedChatIDs []int64
}

// NewAuthenticator restricts the bot to the given chats. An empty list lets everyone in.
func NewAuthenticator(authorizedChatIDs []int64) *authenticator {
	if len(authorizedChatIDs) > 0 {
		slog.Info("Telegram authorized chat IDs", "chat_ids", authorizedChatIDs)
	}

	return &authenticator{
		authorizedChatIDs: authorizedChatIDs,
	}
}

func (a *authenticator) IsAuthorized(chatID int64) bool {
	return len(a.authorizedChatIDs) == 0 || lo.Contains(a.authorizedChatIDs, chatID)
}

// ValidSecret compares the secret path segment of a webhook call with the bot token.
func ValidSecret(got, want string) bool {
	return want != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
