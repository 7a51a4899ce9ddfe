package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"www stripped", "https://www.youtube.com/watch?v=1", "youtube.com"},
		{"port dropped", "http://example.com:8080/a", "example.com"},
		{"subdomain kept", "https://blog.golang.org/", "blog.golang.org"},
		{"spaces", "  https://yandex.ru  ", "yandex.ru"},
		{"no scheme", "yandex.ru/path", "yandex.ru/path"},
		{"garbage", "::not a url", "::not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDomain(tt.in))
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"example.com", "https://example.com"},
		{" example.com/a?b=c ", "https://example.com/a?b=c"},
		{"http://example.com", "http://example.com"},
		{"ftp://files.example.com", "ftp://files.example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeURL(tt.in), "input %q", tt.in)
	}
	assert.Equal(t, "example.com", ExtractDomain(NormalizeURL("www.example.com")))
}
