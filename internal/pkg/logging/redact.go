package logging

import (
	"log/slog"
	"strings"
)

// RedactedValue подставляется вместо значений секретных атрибутов.
const RedactedValue = "[REDACTED]"

// sensitiveKeys — ключи атрибутов, значения которых не попадают в лог.
// Сравнение регистронезависимое.
var sensitiveKeys = map[string]struct{}{
	"token":         {},
	"password":      {},
	"authorization": {},
}

// IsSensitiveKey сообщает, скрывается ли значение атрибута с таким ключом.
func IsSensitiveKey(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

// redactAttr используется как slog.HandlerOptions.ReplaceAttr.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, RedactedValue)
	}
	return a
}
