package util

import (
	"net/url"
	"strings"
)

// ExtractDomain возвращает хост ссылки без префикса "www.".
// Если URL не разбирается, возвращается исходная строка.
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// NormalizeURL обрезает пробелы и добавляет https://, если схема не указана.
func NormalizeURL(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return ""
	}
	if !strings.Contains(trimmed, "://") {
		return "https://" + trimmed
	}
	return trimmed
}
