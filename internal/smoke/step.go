package smoke

import (
	"context"
	"fmt"
	"time"

	"github.com/Kargones/api-smoke/internal/adapter/lms"
	"github.com/Kargones/api-smoke/internal/pkg/tracing"
)

// CheckFunc выполняет проверку. Фикстуры доступны только для чтения,
// новые значения возвращаются через CheckResult.
type CheckFunc func(ctx context.Context, api lms.API, fx *Fixtures) CheckResult

// Step — именованная проверка конвейера.
type Step struct {
	Name string

	// Method и Path описывают основной запрос проверки для плана и диагностики.
	Method string
	Path   string

	Requires []Fixture
	Produces []Fixture

	Run CheckFunc
}

// Pipeline — упорядоченный список проверок.
type Pipeline []Step

// producerOf возвращает имя проверки, производящей фикстуру.
func (p Pipeline) producerOf(key Fixture) string {
	for _, s := range p {
		for _, f := range s.Produces {
			if f == key {
				return s.Name
			}
		}
	}
	return ""
}

func (p Pipeline) skipReason(key Fixture) string {
	if producer := p.producerOf(key); producer != "" {
		return fmt.Sprintf("missing %s (produced by %s)", key, producer)
	}
	return fmt.Sprintf("missing %s", key)
}

// execute выполняет конвейер по порядку. Проверка с отсутствующей
// фикстурой не выполняется и получает исход skipped.
func (r *Runner) execute(ctx context.Context, api lms.API, pipeline Pipeline, fx *Fixtures) []CheckResult {
	results := make([]CheckResult, 0, len(pipeline))

	for _, step := range pipeline {
		if missing, ok := fx.firstMissing(step.Requires); ok {
			res := Skipped(step.Name, pipeline.skipReason(missing))
			r.recordSkip(res)
			results = append(results, res)
			continue
		}

		res := r.runStep(ctx, api, step, fx)
		if res.Outcome == OutcomePassed {
			r.collect(step, res, fx)
		}
		results = append(results, res)
	}

	return results
}

func (r *Runner) runStep(ctx context.Context, api lms.API, step Step, fx *Fixtures) CheckResult {
	ctx, span := tracing.StartCheck(ctx, step.Name)
	r.diag.begin(step.Name, step.Method, step.Path)

	start := time.Now()
	res := step.Run(ctx, api, fx)
	res.Name = step.Name
	res.Duration = time.Since(start)

	tracing.EndCheck(span, string(res.Outcome), res.Reason)
	r.record(res)
	return res
}

// collect переносит объявленные фикстуры успешной проверки в хранилище.
func (r *Runner) collect(step Step, res CheckResult, fx *Fixtures) {
	for key, value := range res.produced {
		declared := false
		for _, f := range step.Produces {
			if f == key {
				declared = true
				break
			}
		}
		if !declared {
			r.logger.Warn("проверка вернула необъявленную фикстуру", "check", step.Name, "fixture", string(key))
			continue
		}
		fx.set(key, value)
	}
}
