package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Kargones/api-smoke/internal/pkg/logging"
	"github.com/Kargones/api-smoke/internal/pkg/urlutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "smoke"

// PrometheusCollector собирает метрики в собственный registry
// и отправляет их в Pushgateway при Push().
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	checkDuration *prometheus.HistogramVec
	checkTotal    *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec

	instance string
}

// NewPrometheusCollector регистрирует метрики:
//   - smoke_check_duration_seconds{check,outcome} (histogram)
//   - smoke_check_total{check,outcome} (counter)
//   - smoke_run_duration_seconds{status} (histogram)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для instance label, используется 'unknown'",
				"error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	registry := prometheus.NewRegistry()

	// HTTP проверки обычно укладываются в сотни миллисекунд; верхняя граница равна таймауту клиента.
	checkDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "check_duration_seconds",
			Help:      "Duration of a single smoke check in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"check", "outcome"},
	)

	checkTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_total",
			Help:      "Total number of smoke checks by outcome",
		},
		[]string{"check", "outcome"},
	)

	runDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the whole smoke run in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"status"},
	)

	for _, c := range []prometheus.Collector{checkDuration, checkTotal, runDuration} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return &PrometheusCollector{
		config:        config,
		logger:        logger,
		registry:      registry,
		checkDuration: checkDuration,
		checkTotal:    checkTotal,
		runDuration:   runDuration,
		instance:      instance,
	}, nil
}

// maxLabelLength ограничивает длину значения label.
const maxLabelLength = 128

// sanitizeLabel заменяет управляющие символы на '_' и обрезает значение
// до maxLabelLength рун.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// RecordCheck записывает исход проверки.
func (c *PrometheusCollector) RecordCheck(check, outcome string, duration time.Duration) {
	check = sanitizeLabel(check)
	outcome = sanitizeLabel(outcome)

	c.checkDuration.WithLabelValues(check, outcome).Observe(duration.Seconds())
	c.checkTotal.WithLabelValues(check, outcome).Inc()

	c.logger.Debug("metrics: check recorded",
		"check", check,
		"outcome", outcome,
		"duration_ms", duration.Milliseconds(),
	)
}

// RecordRun записывает итог прогона.
func (c *PrometheusCollector) RecordRun(status string, duration time.Duration) {
	c.runDuration.WithLabelValues(sanitizeLabel(status)).Observe(duration.Seconds())
}

// Push отправляет метрики в Pushgateway. Ошибка логируется, возвращается nil.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		c.logger.Debug("metrics: pushgateway URL не задан, push пропущен")
		return nil
	}

	select {
	case <-ctx.Done():
		c.logger.Debug("metrics push отменён")
		return nil
	default:
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
			"job", c.config.JobName,
		)
		return nil
	}

	c.logger.Info("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
		"instance", c.instance,
	)
	return nil
}

// Registry возвращает внутренний registry. Используется в тестах.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}
