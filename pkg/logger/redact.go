package logger

import (
	"log/slog"
	"strings"
)

// RedactedValue replaces the value of any redacted attribute.
const RedactedValue = "[REDACTED]"

// DefaultRedactedKeys are always redacted. Signing keys and recovered
// secrets must never reach a log sink.
var DefaultRedactedKeys = []string{"secret", "key", "password", "jwt_secret", "signing_key"}

func redactor(keys map[string]struct{}) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, a slog.Attr) slog.Attr {
		if _, ok := keys[strings.ToLower(a.Key)]; ok {
			return slog.String(a.Key, RedactedValue)
		}
		return a
	}
}
