// Package dryrun определяет режимы запуска, включаемые переменными окружения.
package dryrun

import (
	"fmt"
	"os"
	"strings"

	"github.com/Kargones/api-smoke/internal/constants"
	"github.com/Kargones/api-smoke/internal/pkg/output"
)

// Режимы запуска в порядке приоритета.
const (
	ModeDryRun  = "dry-run"
	ModeVerbose = "verbose"
	ModeNormal  = "normal"
)

// IsDryRun сообщает, включён ли SMOKE_DRY_RUN ("true" без учёта регистра или "1").
// В этом режиме выводится план проверок, запросы к API не выполняются.
func IsDryRun() bool {
	return envFlag(constants.EnvDryRun)
}

// IsVerbose сообщает, включён ли SMOKE_VERBOSE.
func IsVerbose() bool {
	return envFlag(constants.EnvVerbose)
}

// EffectiveMode возвращает текущий режим. SMOKE_DRY_RUN перекрывает SMOKE_VERBOSE.
func EffectiveMode() string {
	if IsDryRun() {
		return ModeDryRun
	}
	if IsVerbose() {
		return ModeVerbose
	}
	return ModeNormal
}

// BuildPlan собирает план из шагов, проставляя порядковые номера с 1.
func BuildPlan(command, target string, steps []output.PlanStep) *output.DryRunPlan {
	numbered := make([]output.PlanStep, len(steps))
	active := 0
	for i, s := range steps {
		s.Order = i + 1
		numbered[i] = s
		if !s.Skipped {
			active++
		}
	}
	return &output.DryRunPlan{
		Command: command,
		Target:  target,
		Steps:   numbered,
		Summary: planSummary(active, len(steps)),
	}
}

func planSummary(active, total int) string {
	return fmt.Sprintf("проверок к выполнению: %d из %d", active, total)
}

func envFlag(name string) bool {
	val := os.Getenv(name)
	return strings.EqualFold(val, "true") || val == "1"
}
