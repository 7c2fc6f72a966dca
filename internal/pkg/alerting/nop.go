package alerting

import "context"

// NopAlerter игнорирует все алерты. Используется, когда алерты выключены.
type NopAlerter struct{}

// NewNopAlerter создаёт Alerter, который ничего не отправляет.
func NewNopAlerter() Alerter {
	return &NopAlerter{}
}

// Send ничего не делает.
func (n *NopAlerter) Send(_ context.Context, _ Alert) error {
	return nil
}
