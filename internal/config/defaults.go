package config

import (
	"time"

	"github.com/Kargones/api-smoke/internal/constants"
	"github.com/Kargones/api-smoke/internal/pkg/alerting"
	"github.com/Kargones/api-smoke/internal/pkg/logging"
	"github.com/Kargones/api-smoke/internal/pkg/metrics"
	"github.com/Kargones/api-smoke/internal/pkg/tracing"
)

// Значения по умолчанию для локального стенда.
const (
	DefaultBaseURL    = "http://localhost:8080/api"
	DefaultTimeout    = 30 * time.Second
	DefaultIdentifier = "admin@example.com"
	DefaultPassword   = "SecurePassword@123"
)

const defaultLessonContent = `<h2>Smoke Test Lesson</h2>
<p>Урок создан автоматической smoke-проверкой API.</p>
<ul>
  <li>создание урока в существующем разделе</li>
  <li>обновление заголовка и содержимого</li>
</ul>`

// Default возвращает конфигурацию по умолчанию.
//
// Значения по умолчанию задаются здесь, а не в тегах env-default:
// cleanenv подставляет env-default в поля с нулевым значением, и false
// из YAML для булевых полей с умолчанием true был бы потерян.
func Default() *Config {
	loggingDefaults := logging.DefaultConfig()
	metricsDefaults := metrics.DefaultConfig()
	tracingDefaults := tracing.DefaultConfig()
	alertingDefaults := alerting.DefaultConfig()

	return &Config{
		Target: TargetConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   DefaultTimeout,
			UserAgent: constants.AppName + "/" + constants.Version,
		},
		Credentials: CredentialsConfig{
			Identifier: DefaultIdentifier,
			Password:   DefaultPassword,
		},
		Discount: DiscountConfig{
			CodePrefix:        "TEST",
			Description:       "Test discount created by API smoke test",
			DiscountType:      "percentage",
			DiscountValue:     20.0,
			ApplicableType:    "both",
			MinPurchaseAmount: 50.0,
			MaxUses:           100,
			MaxUsesPerUser:    1,
			Validity:          30 * 24 * time.Hour,
			IsActive:          true,
		},
		Lesson: LessonConfig{
			Title:              "Smoke Test Lesson",
			Type:               "video",
			Content:            defaultLessonContent,
			Duration:           15,
			Order:              100,
			IsPreview:          true,
			SectionTitle:       "Smoke Test Section",
			SectionDescription: "Раздел создан автоматической smoke-проверкой API",
			VerifyUpdate:       true,
			UpdatedTitle:       "Smoke Test Lesson (updated)",
			UpdatedContent:     "<p>Содержимое обновлено smoke-проверкой.</p>",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:      loggingDefaults.Level,
			Format:     loggingDefaults.Format,
			Output:     loggingDefaults.Output,
			FilePath:   loggingDefaults.FilePath,
			MaxSize:    loggingDefaults.MaxSize,
			MaxBackups: loggingDefaults.MaxBackups,
			MaxAge:     loggingDefaults.MaxAge,
			Compress:   loggingDefaults.Compress,
		},
		Metrics: MetricsConfig{
			Enabled:        metricsDefaults.Enabled,
			PushgatewayURL: metricsDefaults.PushgatewayURL,
			JobName:        metricsDefaults.JobName,
			Timeout:        metricsDefaults.Timeout,
			InstanceLabel:  metricsDefaults.InstanceLabel,
		},
		Tracing: TracingConfig{
			Enabled:      tracingDefaults.Enabled,
			Endpoint:     tracingDefaults.Endpoint,
			ServiceName:  tracingDefaults.ServiceName,
			Environment:  tracingDefaults.Environment,
			Insecure:     tracingDefaults.Insecure,
			Timeout:      tracingDefaults.Timeout,
			SamplingRate: tracingDefaults.SamplingRate,
		},
		Alerting: AlertingConfig{
			Timeout:       alertingDefaults.Timeout,
			MaxRetries:    alertingDefaults.MaxRetries,
			NotifyAborted: alertingDefaults.NotifyAborted,
			NotifyFailed:  alertingDefaults.NotifyFailed,
		},
	}
}
