package smoke

import (
	"maps"
	"time"

	"github.com/Kargones/api-smoke/internal/adapter/lms"
	"github.com/Kargones/api-smoke/internal/pkg/apperrors"
	"github.com/Kargones/api-smoke/internal/pkg/output"
)

// Outcome — исход проверки.
type Outcome string

// Исходы проверки.
const (
	OutcomePassed  Outcome = output.OutcomePassed
	OutcomeFailed  Outcome = output.OutcomeFailed
	OutcomeSkipped Outcome = output.OutcomeSkipped
)

// CheckResult — результат одной проверки. После возврата из конвейера не изменяется.
type CheckResult struct {
	Name    string
	Outcome Outcome

	// StatusCode равен 0, если ответ не получен или проверка пропущена.
	StatusCode int

	// Body — тело ответа с отступами и замаскированными секретами.
	Body string

	// Reason — причина провала или пропуска, либо примечание к успешной проверке.
	Reason    string
	ErrorCode string

	Duration time.Duration

	// Curl — команда, воспроизводящая последний запрос проверки.
	Curl string

	Details map[string]string

	produced map[Fixture]string
}

// Passed создаёт успешный результат.
func Passed(name string) CheckResult {
	return CheckResult{Name: name, Outcome: OutcomePassed}
}

// Failed создаёт результат провала. Код и сообщение берутся из AppError в цепочке err.
func Failed(name string, err error) CheckResult {
	return CheckResult{
		Name:      name,
		Outcome:   OutcomeFailed,
		Reason:    apperrors.MessageOf(err),
		ErrorCode: apperrors.CodeOf(err),
	}
}

// Skipped создаёт результат пропуска.
func Skipped(name, reason string) CheckResult {
	return CheckResult{Name: name, Outcome: OutcomeSkipped, Reason: reason}
}

// attach сохраняет диагностику ответа.
func (c *CheckResult) attach(resp *lms.Response) {
	if resp == nil {
		return
	}
	c.StatusCode = resp.StatusCode
	c.Body = resp.PrettyBody()
	c.Curl = resp.Curl
}

func (c *CheckResult) detail(key, value string) {
	if c.Details == nil {
		c.Details = make(map[string]string)
	}
	c.Details[key] = value
}

// produce передаёт значение фикстуры конвейеру. Конвейер примет его
// только от успешной проверки, объявившей фикстуру в Produces.
func (c *CheckResult) produce(key Fixture, value string) {
	if c.produced == nil {
		c.produced = make(map[Fixture]string)
	}
	c.produced[key] = value
}

// Entry преобразует результат в строку отчёта.
func (c CheckResult) Entry() output.CheckEntry {
	return output.CheckEntry{
		Name:       c.Name,
		Outcome:    string(c.Outcome),
		StatusCode: c.StatusCode,
		DurationMs: c.Duration.Milliseconds(),
		Reason:     c.Reason,
		ErrorCode:  c.ErrorCode,
		Details:    maps.Clone(c.Details),
	}
}

// failure — результат провала с диагностикой ответа.
func failure(name string, resp *lms.Response, err error) CheckResult {
	res := Failed(name, err)
	res.attach(resp)
	return res
}

// success — успешный результат с диагностикой ответа.
func success(name string, resp *lms.Response) CheckResult {
	res := Passed(name)
	res.attach(resp)
	return res
}
