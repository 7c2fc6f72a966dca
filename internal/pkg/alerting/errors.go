package alerting

import "errors"

// Ошибки валидации конфигурации.
var (
	ErrWebhookURLRequired   = errors.New("alerting: нужен хотя бы один webhook url, когда алерты включены")
	ErrWebhookURLInvalid    = errors.New("alerting: webhook url должен быть http(s) URL с host")
	ErrWebhookHeaderInvalid = errors.New("alerting: заголовок webhook содержит управляющие символы")
	ErrTimeoutInvalid       = errors.New("alerting: timeout не может быть отрицательным")
	ErrMaxRetriesInvalid    = errors.New("alerting: maxRetries не может быть отрицательным")
)
