package di

import (
	"context"
	"io"
	"time"

	"github.com/Kargones/api-smoke/internal/adapter/lms"
	"github.com/Kargones/api-smoke/internal/config"
	"github.com/Kargones/api-smoke/internal/constants"
	"github.com/Kargones/api-smoke/internal/pkg/alerting"
	"github.com/Kargones/api-smoke/internal/pkg/apperrors"
	"github.com/Kargones/api-smoke/internal/pkg/dryrun"
	"github.com/Kargones/api-smoke/internal/pkg/logging"
	"github.com/Kargones/api-smoke/internal/pkg/metrics"
	"github.com/Kargones/api-smoke/internal/pkg/output"
	"github.com/Kargones/api-smoke/internal/pkg/tracing"
	"github.com/Kargones/api-smoke/internal/pkg/urlutil"
	"github.com/Kargones/api-smoke/internal/smoke"
)

// shutdownTimeout ограничивает отправку буферизированных span-ов.
const shutdownTimeout = 5 * time.Second

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config передаётся извне через InitializeApp().
	Config *config.Config

	// Logger пишет в stderr или файл, никогда в stdout.
	Logger logging.Logger

	// OutputWriter форматирует итоговый отчёт (text или json).
	OutputWriter output.Writer

	// TraceID коррелирует логи, отчёт и span-ы одного прогона.
	TraceID string

	// MetricsCollector собирает метрики проверок; NopCollector при выключенных метриках.
	MetricsCollector metrics.Collector

	// TracerShutdown сбрасывает span-ы; nop при выключенном трейсинге.
	TracerShutdown func(context.Context) error

	// Alerter уведомляет о неуспешном прогоне; NopAlerter при выключенных алертах.
	Alerter alerting.Alerter

	// Client — HTTP клиент проверяемого API.
	Client lms.Client

	// Runner выполняет проверки.
	Runner *smoke.Runner

	// Stdout принимает отчёт.
	Stdout io.Writer
}

// Run выполняет прогон (или выводит план в режиме SMOKE_DRY_RUN),
// печатает отчёт и возвращает код выхода.
func (a *App) Run(ctx context.Context) int {
	log := a.Logger.With("trace_id", a.TraceID)
	defer a.shutdownTracer(log)

	ctx = tracing.WithTraceID(ctx, a.TraceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, a.TraceID)
	target := urlutil.RedactURL(a.Config.Target.BaseURL)

	if dryrun.IsDryRun() {
		log.Info("режим dry-run: запросы к API не выполняются", "target", target)
		report := &output.Report{
			Status:  output.StatusPassed,
			Command: constants.AppName,
			Target:  target,
			DryRun:  true,
			Plan:    a.Runner.Plan(target),
			Metadata: &output.Metadata{
				TraceID:    a.TraceID,
				APIVersion: constants.APIVersion,
				Version:    constants.Version,
			},
		}
		a.write(log, report)
		return constants.ExitOK
	}

	log.Info("прогон начат", "target", target, "mode", dryrun.EffectiveMode(), "config", a.Config.Source)

	runCtx, span := tracing.StartRun(ctx, target)
	res := a.Runner.Run(runCtx)
	tracing.EndRun(span, res.Status())

	a.MetricsCollector.RecordRun(res.Status(), res.Duration)
	_ = a.MetricsCollector.Push(ctx) //nolint:errcheck // Push всегда nil, ошибки логируются внутри

	a.write(log, smoke.BuildReport(res, target, a.TraceID))
	a.notify(ctx, res, target)

	code := smoke.ExitCode(res, a.Config.Output.LegacyExitCode)
	log.Info("прогон завершён", "status", res.Status(), "exit_code", code, "duration_ms", res.Duration.Milliseconds())
	return code
}

// notify отправляет алерт, если итог прогона этого требует.
func (a *App) notify(ctx context.Context, res *smoke.Result, target string) {
	if a.Alerter == nil {
		return
	}
	alertCfg := a.Config.Alerting.Settings()
	if !alertCfg.ShouldNotify(res.Status()) {
		return
	}
	_ = a.Alerter.Send(ctx, smoke.BuildAlert(res, target, a.TraceID, time.Now().UTC())) //nolint:errcheck // Send всегда nil
}

func (a *App) write(log logging.Logger, report *output.Report) {
	if err := a.OutputWriter.Write(a.Stdout, report); err != nil {
		appErr := apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось вывести отчёт", err)
		log.Error(appErr.Message, "error_code", appErr.Code, "error", err.Error())
	}
}

func (a *App) shutdownTracer(log logging.Logger) {
	if a.TracerShutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.TracerShutdown(ctx); err != nil {
		log.Warn("ошибка завершения tracer provider", "error", err.Error())
	}
}
