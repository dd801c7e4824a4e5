package redaction

import (
	"net/url"
	"strings"
)

const redactedValue = "[redacted]"

// RedactSecret returns a fixed placeholder for non-empty secrets.
func RedactSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return redactedValue
}

// RedactAccessKey keeps the first four characters of an object store access key
// so operators can tell keys apart. Keys too short to mask safely are fully redacted.
func RedactAccessKey(key string) string {
	if len(key) <= 8 {
		return RedactSecret(key)
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}

// RedactURL drops the password of any user info embedded in an endpoint.
// Values that do not parse as URLs are returned unchanged; bare host:port endpoints
// cannot carry credentials.
func RedactURL(raw string) string {
	if !strings.Contains(raw, "@") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), redactedValue)
	}
	return u.String()
}
