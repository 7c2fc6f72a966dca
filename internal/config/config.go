// Package config загружает конфигурацию smoke-прогона.
//
// Порядок применения источников:
//  1. значения по умолчанию (Default)
//  2. YAML файл из SMOKE_CONFIG (неизвестные ключи запрещены)
//  3. переменные окружения SMOKE_* (cleanenv)
//  4. валидация (validator/v10 и проверки подсистем)
package config

import "time"

// Config — полная конфигурация прогона.
type Config struct {
	Target      TargetConfig      `yaml:"target"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Discount    DiscountConfig    `yaml:"discount"`
	Lesson      LessonConfig      `yaml:"lesson"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Tracing     TracingConfig     `yaml:"tracing"`
	Alerting    AlertingConfig    `yaml:"alerting"`

	// Source — путь к файлу, из которого загружена конфигурация; пусто, если файла не было.
	Source string `yaml:"-"`
}

// TargetConfig описывает проверяемое API.
type TargetConfig struct {
	// BaseURL — префикс всех эндпоинтов, например "http://localhost:8080/api".
	BaseURL   string        `yaml:"baseUrl" env:"SMOKE_BASE_URL" validate:"required,url"`
	Timeout   time.Duration `yaml:"timeout" env:"SMOKE_HTTP_TIMEOUT" validate:"gt=0"`
	UserAgent string        `yaml:"userAgent" env:"SMOKE_USER_AGENT"`
}

// CredentialsConfig — единственная учётная запись для логина.
type CredentialsConfig struct {
	Identifier string `yaml:"identifier" env:"SMOKE_LOGIN_IDENTIFIER" validate:"required"`
	Password   string `yaml:"password" env:"SMOKE_LOGIN_PASSWORD" validate:"required"`
}

// DiscountConfig — бизнес-значения создаваемой скидки.
// Код скидки: CodePrefix + unix timestamp, итоговая длина от 3 до 20 символов.
type DiscountConfig struct {
	CodePrefix        string        `yaml:"codePrefix" env:"SMOKE_DISCOUNT_CODE_PREFIX" validate:"required,alphanum,max=10"`
	Description       string        `yaml:"description" env:"SMOKE_DISCOUNT_DESCRIPTION"`
	DiscountType      string        `yaml:"discountType" env:"SMOKE_DISCOUNT_TYPE" validate:"oneof=percentage fixed"`
	DiscountValue     float64       `yaml:"discountValue" env:"SMOKE_DISCOUNT_VALUE" validate:"gt=0"`
	ApplicableType    string        `yaml:"applicableType" env:"SMOKE_DISCOUNT_APPLICABLE_TYPE" validate:"required"`
	MinPurchaseAmount float64       `yaml:"minPurchaseAmount" env:"SMOKE_DISCOUNT_MIN_PURCHASE" validate:"gte=0"`
	MaxUses           int           `yaml:"maxUses" env:"SMOKE_DISCOUNT_MAX_USES" validate:"gte=0"`
	MaxUsesPerUser    int           `yaml:"maxUsesPerUser" env:"SMOKE_DISCOUNT_MAX_USES_PER_USER" validate:"gte=0"`
	// Validity — длина окна действия: validUntil = validFrom + Validity.
	Validity time.Duration `yaml:"validity" env:"SMOKE_DISCOUNT_VALIDITY" validate:"gt=0"`
	IsActive bool          `yaml:"isActive" env:"SMOKE_DISCOUNT_ACTIVE"`
}

// LessonConfig — значения создаваемого урока и поведение цепочки курс → раздел → урок.
type LessonConfig struct {
	Title     string `yaml:"title" env:"SMOKE_LESSON_TITLE" validate:"required"`
	Type      string `yaml:"type" env:"SMOKE_LESSON_TYPE" validate:"required"`
	Content   string `yaml:"content" env:"SMOKE_LESSON_CONTENT" validate:"required"`
	Duration  int    `yaml:"duration" env:"SMOKE_LESSON_DURATION" validate:"gt=0"`
	Order     int    `yaml:"order" env:"SMOKE_LESSON_ORDER" validate:"gte=0"`
	IsPreview bool   `yaml:"isPreview" env:"SMOKE_LESSON_PREVIEW"`

	// CreateMissingSection — при пустом списке разделов создать раздел, а не провалить проверку.
	CreateMissingSection bool   `yaml:"createMissingSection" env:"SMOKE_LESSON_CREATE_MISSING_SECTION"`
	SectionTitle         string `yaml:"sectionTitle" env:"SMOKE_LESSON_SECTION_TITLE" validate:"required_if=CreateMissingSection true"`
	SectionDescription   string `yaml:"sectionDescription" env:"SMOKE_LESSON_SECTION_DESCRIPTION"`

	// VerifyUpdate включает проверку обновления созданного урока.
	VerifyUpdate   bool   `yaml:"verifyUpdate" env:"SMOKE_LESSON_VERIFY_UPDATE"`
	UpdatedTitle   string `yaml:"updatedTitle" env:"SMOKE_LESSON_UPDATED_TITLE" validate:"required_if=VerifyUpdate true"`
	UpdatedContent string `yaml:"updatedContent" env:"SMOKE_LESSON_UPDATED_CONTENT" validate:"required_if=VerifyUpdate true"`
}

// OutputConfig — формат отчёта и правило кода выхода.
type OutputConfig struct {
	Format string `yaml:"format" env:"SMOKE_OUTPUT_FORMAT" validate:"oneof=text json"`

	// LegacyExitCode — всегда завершаться с кодом 0 независимо от исходов.
	LegacyExitCode bool `yaml:"legacyExitCode" env:"SMOKE_LEGACY_EXIT_CODE"`
}

// LoggingConfig содержит настройки логирования.
type LoggingConfig struct {
	Level      string `yaml:"level" env:"SMOKE_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" env:"SMOKE_LOG_FORMAT" validate:"oneof=text json"`
	Output     string `yaml:"output" env:"SMOKE_LOG_OUTPUT" validate:"oneof=stderr file"`
	FilePath   string `yaml:"filePath" env:"SMOKE_LOG_FILE_PATH"`
	MaxSize    int    `yaml:"maxSize" env:"SMOKE_LOG_MAX_SIZE" validate:"gte=0"`
	MaxBackups int    `yaml:"maxBackups" env:"SMOKE_LOG_MAX_BACKUPS" validate:"gte=0"`
	MaxAge     int    `yaml:"maxAge" env:"SMOKE_LOG_MAX_AGE" validate:"gte=0"`
	Compress   bool   `yaml:"compress" env:"SMOKE_LOG_COMPRESS"`
}

// MetricsConfig содержит настройки отправки метрик в Pushgateway.
type MetricsConfig struct {
	Enabled        bool          `yaml:"enabled" env:"SMOKE_METRICS_ENABLED"`
	PushgatewayURL string        `yaml:"pushgatewayUrl" env:"SMOKE_METRICS_PUSHGATEWAY_URL"`
	JobName        string        `yaml:"jobName" env:"SMOKE_METRICS_JOB_NAME"`
	Timeout        time.Duration `yaml:"timeout" env:"SMOKE_METRICS_TIMEOUT"`
	InstanceLabel  string        `yaml:"instanceLabel" env:"SMOKE_METRICS_INSTANCE"`
}

// TracingConfig содержит настройки OpenTelemetry.
type TracingConfig struct {
	Enabled      bool          `yaml:"enabled" env:"SMOKE_TRACING_ENABLED"`
	Endpoint     string        `yaml:"endpoint" env:"SMOKE_TRACING_ENDPOINT"`
	ServiceName  string        `yaml:"serviceName" env:"SMOKE_TRACING_SERVICE_NAME"`
	Environment  string        `yaml:"environment" env:"SMOKE_TRACING_ENVIRONMENT"`
	Insecure     bool          `yaml:"insecure" env:"SMOKE_TRACING_INSECURE"`
	Timeout      time.Duration `yaml:"timeout" env:"SMOKE_TRACING_TIMEOUT"`
	SamplingRate float64       `yaml:"samplingRate" env:"SMOKE_TRACING_SAMPLING_RATE"`
}

// AlertingConfig содержит настройки уведомления о неуспешном прогоне.
type AlertingConfig struct {
	Enabled       bool              `yaml:"enabled" env:"SMOKE_ALERT_ENABLED"`
	WebhookURLs   []string          `yaml:"webhookUrls" env:"SMOKE_ALERT_WEBHOOK_URLS" env-separator:","`
	Headers       map[string]string `yaml:"headers" env:"SMOKE_ALERT_HEADERS"`
	Timeout       time.Duration     `yaml:"timeout" env:"SMOKE_ALERT_TIMEOUT"`
	MaxRetries    int               `yaml:"maxRetries" env:"SMOKE_ALERT_MAX_RETRIES"`
	NotifyAborted bool              `yaml:"notifyAborted" env:"SMOKE_ALERT_NOTIFY_ABORTED"`
	NotifyFailed  bool              `yaml:"notifyFailed" env:"SMOKE_ALERT_NOTIFY_FAILED"`
}
