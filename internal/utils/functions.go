package utils

import (
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
)

func GetRandomUserAgent() string {
	return userAgents[time.Now().UnixNano()%int64(len(userAgents))]
}

func ParseHeaderArgs(headers []string) map[string]string {
	result := make(map[string]string)
	for _, header := range headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) == 2 {
			key := http.CanonicalHeaderKey(strings.TrimSpace(parts[0]))
			value := strings.TrimSpace(parts[1])
			result[key] = value
		}
	}
	return result
}

// SplitProxyAuth moves credentials embedded in the proxy URL into the config
// unless a username was given explicitly.
func SplitProxyAuth(cfg *HTTPClientConfig) {
	parsedProxy, err := url.Parse(cfg.ProxyURL)
	if err != nil || parsedProxy.User == nil || cfg.ProxyUsername != "" {
		return
	}
	cfg.ProxyUsername = parsedProxy.User.Username()
	if password, set := parsedProxy.User.Password(); set {
		cfg.ProxyPassword = password
	}
	parsedProxy.User = nil
	cfg.ProxyURL = parsedProxy.String()
}

// Sanitize maps s to a file-system safe name. Letters, numbers, space, '.'
// and '_' survive; every other rune becomes '_'. Trailing whitespace is cut.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '.' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}
