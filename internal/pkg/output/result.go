// Package output предоставляет структуры отчёта smoke-прогона и его
// форматирование в текст (таблица) и JSON.
package output

// Статусы прогона в целом.
const (
	// StatusPassed — все выполненные проверки прошли (пропуски допустимы).
	StatusPassed = "passed"
	// StatusFailed — хотя бы одна проверка провалилась.
	StatusFailed = "failed"
	// StatusAborted — прогон остановлен до проверок (логин не удался).
	StatusAborted = "aborted"
)

// Исходы отдельной проверки.
const (
	OutcomePassed  = "passed"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// Report — результат прогона. В текстовом режиме выводится таблицей,
// в JSON режиме (SMOKE_OUTPUT_FORMAT=json) сериализуется целиком.
type Report struct {
	Status  string `json:"status"`
	Command string `json:"command"`

	// Target — базовый URL проверяемого API (замаскированный).
	Target string `json:"target,omitempty"`

	Checks []CheckEntry `json:"checks"`

	// Error заполняется только при StatusAborted.
	Error *ErrorInfo `json:"error,omitempty"`

	Summary  *SummaryInfo `json:"summary,omitempty"`
	Metadata *Metadata    `json:"metadata,omitempty"`

	// DryRun и Plan заполняются в режиме SMOKE_DRY_RUN вместо Checks.
	DryRun bool        `json:"dry_run,omitempty"`
	Plan   *DryRunPlan `json:"plan,omitempty"`
}

// CheckEntry — одна строка отчёта.
type CheckEntry struct {
	Name       string `json:"name"`
	Outcome    string `json:"outcome"`
	StatusCode int    `json:"status_code,omitempty"`
	DurationMs int64  `json:"duration_ms"`

	// Reason объясняет провал или пропуск.
	Reason    string `json:"reason,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`

	// Details — значимые значения, извлечённые из ответа (id, количество записей).
	Details map[string]string `json:"details,omitempty"`
}

// ErrorInfo — ошибка, прервавшая прогон.
// ВАЖНО: Message не должен содержать токены и пароли.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Metadata содержит метаданные прогона.
type Metadata struct {
	DurationMs int64  `json:"duration_ms"`
	TraceID    string `json:"trace_id,omitempty"`
	APIVersion string `json:"api_version"`
	Version    string `json:"version,omitempty"`
}
