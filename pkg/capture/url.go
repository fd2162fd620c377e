package capture

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`(?i)^(https?:\/\/)?((([a-z\d]([a-z\d-]*[a-z\d])*)\.)+[a-z]{2,}|((\d{1,3}\.){3}\d{1,3}))(\:\d+)?(\/[-a-z\d%_.~+]*)*(\?[;&a-z\d%_.~+=-]*)?(\#[-a-z\d_]*)?$`)

// NormalizeURL reports whether s looks like a capturable address and returns it with a scheme.
func NormalizeURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !urlPattern.MatchString(s) {
		return "", false
	}

	if strings.HasPrefix(strings.ToLower(s), "http") {
		return s, true
	}
	return "https://" + s, true
}
