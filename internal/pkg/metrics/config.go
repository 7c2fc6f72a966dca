package metrics

import (
	"net/url"
	"time"
)

// Config содержит настройки отправки метрик.
type Config struct {
	Enabled bool

	// PushgatewayURL, например "http://pushgateway:9091".
	PushgatewayURL string

	// JobName группирует метрики в Pushgateway. По умолчанию "api-smoke".
	JobName string

	// Timeout запроса к Pushgateway. По умолчанию 10 секунд.
	Timeout time.Duration

	// InstanceLabel переопределяет instance label; пусто означает hostname.
	InstanceLabel string
}

// Validate проверяет конфигурацию. Отключённые метрики валидны всегда.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.PushgatewayURL == "" {
		return ErrPushgatewayURLRequired
	}

	u, err := url.Parse(c.PushgatewayURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrPushgatewayURLInvalid
	}

	if c.JobName == "" {
		return ErrJobNameRequired
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	return nil
}

// DefaultConfig возвращает конфигурацию по умолчанию (метрики выключены).
func DefaultConfig() Config {
	return Config{
		JobName: "api-smoke",
		Timeout: 10 * time.Second,
	}
}
