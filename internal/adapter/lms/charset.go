package lms

import (
	"fmt"
	"mime"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// toUTF8 перекодирует тело в UTF-8 по параметру charset из Content-Type.
// Без charset или при UTF-8 тело возвращается как есть.
func toUTF8(contentType string, body []byte) ([]byte, error) {
	if contentType == "" {
		return body, nil
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}

	charset := strings.ToLower(strings.TrimSpace(params["charset"]))
	switch charset {
	case "", "utf-8", "utf8", "us-ascii":
		return body, nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("неизвестная кодировка %q: %w", charset, err)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return nil, fmt.Errorf("перекодирование из %s: %w", charset, err)
	}
	return out, nil
}
