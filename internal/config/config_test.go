package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kargones/api-smoke/internal/constants"
	"github.com/Kargones/api-smoke/internal/pkg/apperrors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smoke.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadFile_Defaults проверяет значения по умолчанию без файла и переменных окружения.
func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.Target.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Target.Timeout)
	assert.Equal(t, "admin@example.com", cfg.Credentials.Identifier)
	assert.Equal(t, "SecurePassword@123", cfg.Credentials.Password)
	assert.Equal(t, "TEST", cfg.Discount.CodePrefix)
	assert.Equal(t, "percentage", cfg.Discount.DiscountType)
	assert.Equal(t, 20.0, cfg.Discount.DiscountValue)
	assert.Equal(t, "both", cfg.Discount.ApplicableType)
	assert.Equal(t, 50.0, cfg.Discount.MinPurchaseAmount)
	assert.Equal(t, 100, cfg.Discount.MaxUses)
	assert.Equal(t, 1, cfg.Discount.MaxUsesPerUser)
	assert.Equal(t, 30*24*time.Hour, cfg.Discount.Validity)
	assert.True(t, cfg.Discount.IsActive)
	assert.Equal(t, 15, cfg.Lesson.Duration)
	assert.Equal(t, 100, cfg.Lesson.Order)
	assert.True(t, cfg.Lesson.IsPreview)
	assert.False(t, cfg.Lesson.CreateMissingSection)
	assert.True(t, cfg.Lesson.VerifyUpdate)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.False(t, cfg.Output.LegacyExitCode)
	assert.False(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.Alerting.Enabled)
	assert.True(t, cfg.Alerting.NotifyFailed)
	assert.Empty(t, cfg.Source)
}

// TestLoadFile_YAML проверяет, что YAML перекрывает умолчания, включая false для булевых полей.
func TestLoadFile_YAML(t *testing.T) {
	path := writeConfig(t, `
target:
  baseUrl: https://staging.example.com/api
  timeout: 5s
discount:
  codePrefix: SMK
  isActive: false
  validity: 72h
lesson:
  verifyUpdate: false
  createMissingSection: true
output:
  format: json
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com/api", cfg.Target.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Target.Timeout)
	assert.Equal(t, "SMK", cfg.Discount.CodePrefix)
	assert.False(t, cfg.Discount.IsActive)
	assert.Equal(t, 72*time.Hour, cfg.Discount.Validity)
	assert.False(t, cfg.Lesson.VerifyUpdate)
	assert.True(t, cfg.Lesson.CreateMissingSection)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "admin@example.com", cfg.Credentials.Identifier, "незаданные ключи сохраняют умолчания")
	assert.Equal(t, path, cfg.Source)
}

// TestLoadFile_EnvOverridesYAML проверяет приоритет переменных окружения над файлом.
func TestLoadFile_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "target:\n  baseUrl: https://from-file.example.com/api\n")
	t.Setenv("SMOKE_BASE_URL", "https://from-env.example.com/api")
	t.Setenv("SMOKE_LOGIN_PASSWORD", "other")
	t.Setenv("SMOKE_HTTP_TIMEOUT", "2s")
	t.Setenv("SMOKE_LEGACY_EXIT_CODE", "true")
	t.Setenv("SMOKE_DISCOUNT_VALUE", "12.5")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.example.com/api", cfg.Target.BaseURL)
	assert.Equal(t, "other", cfg.Credentials.Password)
	assert.Equal(t, 2*time.Second, cfg.Target.Timeout)
	assert.True(t, cfg.Output.LegacyExitCode)
	assert.Equal(t, 12.5, cfg.Discount.DiscountValue)
}

func TestLoadFile_AlertingFromEnv(t *testing.T) {
	t.Setenv("SMOKE_ALERT_ENABLED", "true")
	t.Setenv("SMOKE_ALERT_WEBHOOK_URLS", "https://hooks.example.com/a,https://hooks.example.com/b")
	t.Setenv("SMOKE_ALERT_NOTIFY_FAILED", "false")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	settings := cfg.Alerting.Settings()
	assert.True(t, settings.Enabled)
	assert.Equal(t, []string{"https://hooks.example.com/a", "https://hooks.example.com/b"}, settings.URLs)
	assert.False(t, settings.ShouldNotify("failed"))
	assert.True(t, settings.ShouldNotify("aborted"))
}

func TestLoad_UsesSmokeConfigEnv(t *testing.T) {
	path := writeConfig(t, "output:\n  format: json\n")
	t.Setenv(constants.EnvConfigPath, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadFile_EmptyFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.Target.BaseURL)
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		missing  bool
		wantCode string
		wantMsg  string
	}{
		{name: "нет файла", missing: true, wantCode: apperrors.ErrConfigLoad},
		{name: "неизвестный ключ", content: "target:\n  baseURL: http://x\n", wantCode: apperrors.ErrConfigLoad},
		{name: "битый YAML", content: "target: [", wantCode: apperrors.ErrConfigLoad},
		{name: "невалидный URL", content: "target:\n  baseUrl: not a url\n", wantCode: apperrors.ErrConfigValidate, wantMsg: "target.baseURL"},
		{name: "неизвестный формат", content: "output:\n  format: xml\n", wantCode: apperrors.ErrConfigValidate, wantMsg: "output.format"},
		{name: "нулевая длительность скидки", content: "discount:\n  validity: 0s\n", wantCode: apperrors.ErrConfigValidate, wantMsg: "discount.validity"},
		{name: "длинный префикс кода", content: "discount:\n  codePrefix: ABCDEFGHIJK\n", wantCode: apperrors.ErrConfigValidate, wantMsg: "codePrefix"},
		{name: "метрики без URL", content: "metrics:\n  enabled: true\n", wantCode: apperrors.ErrConfigValidate, wantMsg: "pushgateway"},
		{name: "трейсинг без endpoint", content: "tracing:\n  enabled: true\n", wantCode: apperrors.ErrConfigValidate, wantMsg: "endpoint"},
		{name: "алерты без webhook", content: "alerting:\n  enabled: true\n", wantCode: apperrors.ErrConfigValidate, wantMsg: "webhook url"},
		{name: "обновление без заголовка", content: "lesson:\n  updatedTitle: \"\"\n", wantCode: apperrors.ErrConfigValidate, wantMsg: "lesson.updatedTitle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "absent.yaml")
			if !tt.missing {
				path = writeConfig(t, tt.content)
			}

			_, err := LoadFile(path)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

// TestValidate_DoesNotLeakPassword проверяет, что сообщение валидации не содержит значений полей.
func TestValidate_DoesNotLeakPassword(t *testing.T) {
	cfg := Default()
	cfg.Credentials.Password = "SuperSecret!"
	cfg.Target.BaseURL = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SuperSecret!")
}

func TestSettings(t *testing.T) {
	cfg := Default()

	assert.Equal(t, cfg.Logging.Level, cfg.Logging.Settings().Level)
	assert.Equal(t, cfg.Metrics.JobName, cfg.Metrics.Settings().JobName)
	assert.Equal(t, constants.Version, cfg.Tracing.Settings().Version)
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "target.baseURL", fieldPath("Config.Target.BaseURL"))
	assert.Equal(t, "x", fieldPath("X"))
}
