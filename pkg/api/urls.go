package api

import (
	"regexp"
	"strings"
)

var duplicateSlashes = regexp.MustCompile(`([^:]/)/+`)

// NormalizeServerURL forces https, collapses duplicate slashes and drops the trailing slash.
func NormalizeServerURL(raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}

	switch lower := strings.ToLower(u); {
	case strings.HasPrefix(lower, "https://"):
	case strings.HasPrefix(lower, "http://"):
		u = "https://" + u[len("http://"):]
	default:
		u = "https://" + u
	}

	u = duplicateSlashes.ReplaceAllString(u, "$1")
	return strings.TrimSuffix(u, "/")
}

func WebhookURL(base, bot, token string) string {
	return base + "/" + bot + "/webhook/" + token
}
