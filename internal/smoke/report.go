package smoke

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Kargones/api-smoke/internal/adapter/lms"
	"github.com/Kargones/api-smoke/internal/constants"
	"github.com/Kargones/api-smoke/internal/pkg/alerting"
	"github.com/Kargones/api-smoke/internal/pkg/apperrors"
	"github.com/Kargones/api-smoke/internal/pkg/dryrun"
	"github.com/Kargones/api-smoke/internal/pkg/output"
)

// BuildReport собирает отчёт прогона.
//
// Прерванный прогон содержит только проверку логина и Error без сводки.
func BuildReport(res *Result, target, traceID string) *output.Report {
	report := &output.Report{
		Status:  res.Status(),
		Command: constants.AppName,
		Target:  target,
		Metadata: &output.Metadata{
			DurationMs: res.Duration.Milliseconds(),
			TraceID:    traceID,
			APIVersion: constants.APIVersion,
			Version:    constants.Version,
		},
	}

	report.Checks = make([]output.CheckEntry, 0, len(res.Checks))
	for _, c := range res.Checks {
		report.Checks = append(report.Checks, c.Entry())
	}

	if res.Aborted {
		report.Error = &output.ErrorInfo{
			Code:    apperrors.ErrLoginFailed,
			Message: res.Login().Reason,
		}
		return report
	}

	report.Summary = output.Summarize(report.Checks)
	if list, ok := res.Check(constants.CheckListDiscounts); ok {
		if count, ok := list.Details["count"]; ok {
			report.Summary.AddMetric("Промокодов в системе", count, "")
		}
	}
	if code := res.Fixtures.Value(FixtureDiscountCode); code != "" {
		report.Summary.AddMetric("Создан промокод", code, "")
	}
	return report
}

// ExitCode возвращает код выхода по итогу прогона.
// legacy сохраняет прежнее поведение: всегда 0.
func ExitCode(res *Result, legacy bool) int {
	if legacy {
		return constants.ExitOK
	}
	switch res.Status() {
	case output.StatusAborted:
		return constants.ExitLoginFailed
	case output.StatusFailed:
		return constants.ExitChecksFailed
	default:
		return constants.ExitOK
	}
}

// Plan возвращает план прогона для SMOKE_DRY_RUN: логин и проверки конвейера
// с методом, путём и фикстурами. Отключённая проверка обновления урока
// попадает в план как пропущенная.
func (r *Runner) Plan(target string) *output.DryRunPlan {
	steps := []output.PlanStep{{
		Operation: constants.CheckLogin,
		Parameters: map[string]any{
			"method":     http.MethodPost,
			"path":       lms.PathLogin,
			"identifier": r.cfg.Credentials.Identifier,
		},
	}}

	for _, s := range r.Pipeline() {
		steps = append(steps, output.PlanStep{
			Operation:  s.Name,
			Parameters: map[string]any{"method": s.Method, "path": s.Path},
			Requires:   fixtureNames(s.Requires),
			Produces:   fixtureNames(s.Produces),
		})
	}

	if !r.cfg.Lesson.VerifyUpdate {
		steps = append(steps, output.PlanStep{
			Operation:  constants.CheckUpdateLesson,
			Skipped:    true,
			SkipReason: "lesson.verifyUpdate=false",
		})
	}

	return dryrun.BuildPlan(constants.AppName, target, steps)
}

func fixtureNames(keys []Fixture) []string {
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = string(k)
	}
	return names
}

// BuildAlert собирает алерт о неуспешном прогоне. Для прерванного прогона
// severity CRITICAL и код AUTH.LOGIN_FAILED, для проваленных проверок
// WARNING и код первой проваленной проверки.
func BuildAlert(res *Result, target, traceID string, at time.Time) alerting.Alert {
	alert := alerting.Alert{
		TraceID:   traceID,
		Timestamp: at,
		Status:    res.Status(),
		Target:    target,
	}

	if res.Aborted {
		alert.Severity = alerting.SeverityCritical
		alert.ErrorCode = apperrors.ErrLoginFailed
		alert.FailedChecks = []string{constants.CheckLogin}
		alert.Message = "логин не удался: " + res.Login().Reason
		return alert
	}

	alert.Severity = alerting.SeverityWarning
	for _, c := range res.Checks {
		if c.Outcome != OutcomeFailed {
			continue
		}
		if alert.ErrorCode == "" {
			alert.ErrorCode = c.ErrorCode
		}
		alert.FailedChecks = append(alert.FailedChecks, c.Name)
	}
	alert.Message = fmt.Sprintf("провалено проверок: %d из %d (%s)",
		len(alert.FailedChecks), len(res.Checks), strings.Join(alert.FailedChecks, ", "))
	return alert
}
