package validate

import (
	"net/url"
	"strings"
)

// MaxIDLen bounds a product identifier echoed back from a form.
const MaxIDLen = 1024

// ID checks that a product identifier is present. Ids are opaque server
// values, so a non-blank one is returned untouched.
func ID(s string) (string, bool) {
	if strings.TrimSpace(s) == "" || len(s) > MaxIDLen {
		return "", false
	}
	return s, true
}

// HTTPURL accepts only absolute http/https URLs with a host.
func HTTPURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.String(), true
	default:
		return "", false
	}
}
