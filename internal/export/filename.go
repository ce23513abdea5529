package export

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

// SanitizeFilename derives a safe report file name from an original filename:
// every run of non-word characters becomes a single underscore.
func SanitizeFilename(name string) string {
	sanitized := nonWord.ReplaceAllString(name, "_")
	sanitized = strings.Trim(sanitized, "_")
	if sanitized == "" {
		return "report"
	}
	return sanitized
}
