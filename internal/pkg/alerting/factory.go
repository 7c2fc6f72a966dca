package alerting

import "github.com/Kargones/api-smoke/internal/pkg/logging"

// NewAlerter возвращает NopAlerter для выключенных алертов
// и WebhookAlerter в остальных случаях.
func NewAlerter(config Config, logger logging.Logger) (Alerter, error) {
	if !config.Enabled {
		return NewNopAlerter(), nil
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return NewWebhookAlerter(config, logger), nil
}
