package domain

import "strings"

const (
	MenuCallback = "menu"
	ExitCallback = "exit"
)

type CallbackToken struct {
	Category string
	Key      string
	HasKey   bool
}

// ParseCallbackToken splits callback data on the first underscore.
// "resolution" navigates to a submenu, "resolution_1280" applies a value.
func ParseCallbackToken(data string) CallbackToken {
	category, key, found := strings.Cut(data, "_")
	return CallbackToken{
		Category: category,
		Key:      key,
		HasKey:   found,
	}
}

func (t CallbackToken) String() string {
	if !t.HasKey {
		return t.Category
	}
	return t.Category + "_" + t.Key
}

type CallbackQuery struct {
	ID        string
	ChatID    int64
	MessageID int
	Data      string
}
