package config

import (
	"github.com/Kargones/api-smoke/internal/constants"
	"github.com/Kargones/api-smoke/internal/pkg/alerting"
	"github.com/Kargones/api-smoke/internal/pkg/logging"
	"github.com/Kargones/api-smoke/internal/pkg/metrics"
	"github.com/Kargones/api-smoke/internal/pkg/tracing"
)

// Settings конвертирует LoggingConfig в logging.Config.
func (c LoggingConfig) Settings() logging.Config {
	return logging.Config{
		Level:      c.Level,
		Format:     c.Format,
		Output:     c.Output,
		FilePath:   c.FilePath,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
	}
}

// Settings конвертирует MetricsConfig в metrics.Config.
func (c MetricsConfig) Settings() metrics.Config {
	return metrics.Config{
		Enabled:        c.Enabled,
		PushgatewayURL: c.PushgatewayURL,
		JobName:        c.JobName,
		Timeout:        c.Timeout,
		InstanceLabel:  c.InstanceLabel,
	}
}

// Settings конвертирует TracingConfig в tracing.Config. Версия сервиса берётся из сборки.
func (c TracingConfig) Settings() tracing.Config {
	return tracing.Config{
		Enabled:      c.Enabled,
		Endpoint:     c.Endpoint,
		ServiceName:  c.ServiceName,
		Version:      constants.Version,
		Environment:  c.Environment,
		Insecure:     c.Insecure,
		Timeout:      c.Timeout,
		SamplingRate: c.SamplingRate,
	}
}

// Settings конвертирует AlertingConfig в alerting.Config.
func (c AlertingConfig) Settings() alerting.Config {
	return alerting.Config{
		Enabled:       c.Enabled,
		URLs:          c.WebhookURLs,
		Headers:       c.Headers,
		Timeout:       c.Timeout,
		MaxRetries:    c.MaxRetries,
		NotifyAborted: c.NotifyAborted,
		NotifyFailed:  c.NotifyFailed,
	}
}
