// Package alerting отправляет уведомление о неуспешном smoke-прогоне
// на webhook (Slack/Mattermost-совместимые шлюзы, PagerDuty, собственные сервисы).
package alerting

import (
	"context"
	"time"
)

// Severity определяет уровень критичности алерта.
type Severity int

const (
	// SeverityInfo — информационный алерт.
	SeverityInfo Severity = iota
	// SeverityWarning — часть проверок провалилась.
	SeverityWarning
	// SeverityCritical — прогон прерван: логин не удался.
	SeverityCritical
)

// String возвращает строковое представление Severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Alert — данные об итоге прогона для отправки.
type Alert struct {
	// ErrorCode — код ошибки первой проваленной проверки.
	ErrorCode string

	// Message — человекочитаемое описание итога.
	Message string

	// TraceID коррелирует алерт с логами и отчётом.
	TraceID string

	Timestamp time.Time

	// Status — итог прогона: failed или aborted.
	Status string

	// Target — замаскированный базовый URL проверяемого API.
	Target string

	// FailedChecks — имена проваленных проверок в порядке выполнения.
	FailedChecks []string

	Severity Severity
}

// Alerter отправляет алерты.
// Реализации: WebhookAlerter, NopAlerter.
//
// ВАЖНО: Send не прерывает прогон. Ошибки доставки логируются,
// Send возвращает nil; код выхода определяется только исходами проверок.
type Alerter interface {
	Send(ctx context.Context, alert Alert) error
}
