package lms

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Kargones/api-smoke/internal/pkg/logging"
	"github.com/Kargones/api-smoke/internal/pkg/urlutil"
)

// maskJSON заменяет значения секретных ключей (token, password, authorization)
// на любом уровне вложенности. Токен сохраняет префикс, остальное скрывается целиком.
// Возвращает исходные байты, если тело не JSON или секретов в нём нет.
func maskJSON(body []byte, indent bool) []byte {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return body
	}

	if !maskValue(doc) {
		if !indent {
			return body
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, body, "", "  "); err != nil {
			return body
		}
		return buf.Bytes()
	}

	var (
		out []byte
		err error
	)
	if indent {
		out, err = json.MarshalIndent(doc, "", "  ")
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return body
	}
	return out
}

// maskValue обходит документ и маскирует секреты на месте. Возвращает true, если что-то изменено.
func maskValue(v any) bool {
	changed := false
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			if s, ok := child.(string); ok && logging.IsSensitiveKey(k) {
				node[k] = maskSecret(k, s)
				changed = true
				continue
			}
			if maskValue(child) {
				changed = true
			}
		}
	case []any:
		for _, child := range node {
			if maskValue(child) {
				changed = true
			}
		}
	}
	return changed
}

func maskSecret(key, value string) string {
	if strings.EqualFold(key, "token") {
		return urlutil.MaskToken(value)
	}
	return "***"
}
