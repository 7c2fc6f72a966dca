package alerting

import (
	"net/url"
	"time"
)

// Значения по умолчанию.
const (
	// DefaultTimeout — таймаут одного HTTP запроса к webhook.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries — число повторов после первой неудачной попытки.
	DefaultMaxRetries = 2
)

// Config содержит настройки отправки алертов.
type Config struct {
	Enabled bool

	// URLs — адреса webhook; алерт отправляется на каждый.
	URLs []string

	// Headers — дополнительные HTTP заголовки, например токен шлюза.
	Headers map[string]string

	Timeout time.Duration

	MaxRetries int

	// NotifyAborted и NotifyFailed выбирают, о каких итогах сообщать.
	NotifyAborted bool
	NotifyFailed  bool
}

// DefaultConfig возвращает конфигурацию по умолчанию (алерты выключены).
func DefaultConfig() Config {
	return Config{
		Timeout:       DefaultTimeout,
		MaxRetries:    DefaultMaxRetries,
		NotifyAborted: true,
		NotifyFailed:  true,
	}
}

// Validate проверяет конфигурацию. Выключенные алерты валидны всегда.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.URLs) == 0 {
		return ErrWebhookURLRequired
	}
	for _, rawURL := range c.URLs {
		u, err := url.Parse(rawURL)
		if err != nil || u.Host == "" {
			return ErrWebhookURLInvalid
		}
		// Только http и https: file:// и прочие схемы отклоняются.
		if u.Scheme != "http" && u.Scheme != "https" {
			return ErrWebhookURLInvalid
		}
	}
	// Защита от HTTP Header Injection (RFC 7230).
	for key, value := range c.Headers {
		if containsInvalidHeaderChars(key) || containsInvalidHeaderChars(value) {
			return ErrWebhookHeaderInvalid
		}
	}
	if c.Timeout < 0 {
		return ErrTimeoutInvalid
	}
	if c.MaxRetries < 0 {
		return ErrMaxRetriesInvalid
	}
	return nil
}

// ShouldNotify сообщает, нужен ли алерт для итога прогона status.
func (c *Config) ShouldNotify(status string) bool {
	switch status {
	case "aborted":
		return c.NotifyAborted
	case "failed":
		return c.NotifyFailed
	default:
		return false
	}
}

// containsInvalidHeaderChars ищет управляющие символы. HTAB допустим в значениях заголовков.
func containsInvalidHeaderChars(s string) bool {
	for _, r := range s {
		if r == 0x09 {
			continue
		}
		if r <= 0x1f || r == 0x7f {
			return true
		}
	}
	return false
}
