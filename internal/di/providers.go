package di

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/Kargones/api-smoke/internal/adapter/lms"
	"github.com/Kargones/api-smoke/internal/config"
	"github.com/Kargones/api-smoke/internal/pkg/alerting"
	"github.com/Kargones/api-smoke/internal/pkg/dryrun"
	"github.com/Kargones/api-smoke/internal/pkg/logging"
	"github.com/Kargones/api-smoke/internal/pkg/metrics"
	"github.com/Kargones/api-smoke/internal/pkg/output"
	"github.com/Kargones/api-smoke/internal/pkg/tracing"
	"github.com/Kargones/api-smoke/internal/smoke"
)

// errNilConfig возвращается провайдерами, которым конфигурация обязательна.
var errNilConfig = errors.New("конфигурация не передана")

// ProvideLogger создаёт Logger на основе Config.Logging.
// При nil Config используются значения по умолчанию (stderr, text, info).
func ProvideLogger(cfg *config.Config) logging.Logger {
	if cfg == nil {
		return logging.NewLogger(logging.DefaultConfig())
	}
	return logging.NewLogger(cfg.Logging.Settings())
}

// ProvideOutputWriter создаёт JSONWriter или TextWriter по Config.Output.Format.
func ProvideOutputWriter(cfg *config.Config) output.Writer {
	if cfg == nil || cfg.Output.Format == "" {
		return output.NewWriter(output.FormatText)
	}
	return output.NewWriter(cfg.Output.Format)
}

// ProvideTraceID генерирует trace_id прогона: 32 hex символа.
// Он же становится trace ID корневого OTel span-а.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsCollector создаёт Collector на основе Config.Metrics.
// При ошибке создания возвращает NopCollector и логирует ошибку.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.Metrics.Settings(), logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector", "error", err.Error())
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider инициализирует OTel TracerProvider и возвращает shutdown.
// При выключенном трейсинге или ошибке возвращает nop shutdown.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil {
		return tracing.NewNopTracerProvider()
	}

	shutdown, err := tracing.NewTracerProvider(cfg.Tracing.Settings(), logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider", "error", err.Error())
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}

// ProvideAlerter создаёт Alerter на основе Config.Alerting.
// При ошибке создания возвращает NopAlerter и логирует ошибку.
func ProvideAlerter(cfg *config.Config, logger logging.Logger) alerting.Alerter {
	if cfg == nil {
		return alerting.NewNopAlerter()
	}

	alerter, err := alerting.NewAlerter(cfg.Alerting.Settings(), logger)
	if err != nil {
		logger.Error("ошибка создания Alerter, используется NopAlerter", "error", err.Error())
		return alerting.NewNopAlerter()
	}
	return alerter
}

// ProvideClient создаёт HTTP клиент проверяемого API.
func ProvideClient(cfg *config.Config, logger logging.Logger) (lms.Client, error) {
	if cfg == nil {
		return nil, errNilConfig
	}
	client, err := lms.NewHTTPClient(cfg.Target.BaseURL,
		lms.WithTimeout(cfg.Target.Timeout),
		lms.WithUserAgent(cfg.Target.UserAgent),
		lms.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ProvideRunner создаёт Runner. Диагностика проверок печатается в stdout
// только в текстовом режиме: в JSON режиме stdout занят отчётом.
func ProvideRunner(cfg *config.Config, client lms.Client, logger logging.Logger, collector metrics.Collector, traceID string) *smoke.Runner {
	var diag io.Writer = os.Stdout
	if cfg.Output.Format == output.FormatJSON {
		diag = io.Discard
	}

	return smoke.NewRunner(client, cfg,
		smoke.WithLogger(logger.With("trace_id", traceID)),
		smoke.WithMetrics(collector),
		smoke.WithDiagnostics(diag, dryrun.IsVerbose()),
	)
}

// ProvideStdout возвращает поток для отчёта.
func ProvideStdout() io.Writer {
	return os.Stdout
}
