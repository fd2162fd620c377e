package render

import (
	"strings"

	"github.com/russross/blackfriday"
)

var telegramTags = strings.NewReplacer(
	"<p>", "",
	"</p>", "",
	"<strong>", "<b>",
	"</strong>", "</b>",
	"<em>", "<i>",
	"</em>", "</i>",
	"<ul>\n", "",
	"</ul>\n", "",
	"<li>", "• ",
	"</li>", "",
	"<br />", "",
)

// TelegramHTML renders markdown into the HTML subset accepted by Telegram's HTML parse mode.
func TelegramHTML(markdown string) string {
	html := string(blackfriday.MarkdownCommon([]byte(markdown)))
	return strings.TrimSpace(telegramTags.Replace(html))
}
