// Package metrics собирает метрики smoke-прогона и отправляет их
// в Prometheus Pushgateway по завершении прогона.
//
// При отключённых метриках используется NopCollector.
package metrics

import (
	"context"
	"time"
)

// Collector собирает метрики проверок.
// Реализации: PrometheusCollector и NopCollector.
type Collector interface {
	// RecordCheck записывает исход одной проверки.
	// outcome: "passed", "failed" или "skipped".
	RecordCheck(check, outcome string, duration time.Duration)

	// RecordRun записывает итог прогона. status: "passed", "failed" или "aborted".
	RecordRun(status string, duration time.Duration)

	// Push отправляет метрики в Pushgateway.
	// Всегда возвращает nil: ошибки логируются и не меняют исход прогона.
	Push(ctx context.Context) error
}
