package smoke

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/Kargones/api-smoke/internal/adapter/lms"
	"github.com/Kargones/api-smoke/internal/config"
	"github.com/Kargones/api-smoke/internal/constants"
	"github.com/Kargones/api-smoke/internal/pkg/logging"
	"github.com/Kargones/api-smoke/internal/pkg/metrics"
	"github.com/Kargones/api-smoke/internal/pkg/output"
	"github.com/Kargones/api-smoke/internal/pkg/tracing"
	"github.com/Kargones/api-smoke/internal/pkg/urlutil"
)

// Session — токен, полученный при логине. Живёт один прогон.
type Session struct {
	Token string
}

// Masked возвращает токен для вывода: первые 20 символов и "...".
func (s Session) Masked() string {
	return urlutil.MaskToken(s.Token)
}

// Result — итог прогона.
type Result struct {
	// Checks — результаты в порядке выполнения, логин первым.
	Checks []CheckResult

	// Aborted — логин не удался, остальные проверки не выполнялись.
	Aborted bool

	Fixtures *Fixtures
	Duration time.Duration
}

// Login возвращает результат проверки логина.
func (r *Result) Login() CheckResult {
	if len(r.Checks) == 0 {
		return CheckResult{}
	}
	return r.Checks[0]
}

// Status возвращает статус прогона: aborted, failed или passed.
func (r *Result) Status() string {
	if r.Aborted {
		return output.StatusAborted
	}
	for _, c := range r.Checks {
		if c.Outcome == OutcomeFailed {
			return output.StatusFailed
		}
	}
	return output.StatusPassed
}

// Check возвращает результат проверки по имени.
func (r *Result) Check(name string) (CheckResult, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return CheckResult{}, false
}

// Runner выполняет smoke-прогон строго последовательно в одной горутине.
type Runner struct {
	client  lms.Client
	cfg     *config.Config
	logger  logging.Logger
	metrics metrics.Collector
	diag    *printer
	now     func() time.Time
}

// Option настраивает Runner.
type Option func(*Runner)

// WithLogger задаёт логгер.
func WithLogger(l logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics задаёт сборщик метрик.
func WithMetrics(c metrics.Collector) Option {
	return func(r *Runner) {
		if c != nil {
			r.metrics = c
		}
	}
}

// WithDiagnostics задаёт вывод диагностики проверок. verbose добавляет curl-строку.
func WithDiagnostics(w io.Writer, verbose bool) Option {
	return func(r *Runner) {
		if w != nil {
			r.diag = &printer{w: w, verbose: verbose}
		}
	}
}

// WithClock подменяет источник времени для кода скидки и окна её действия.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner создаёт Runner. По умолчанию диагностика не выводится.
func NewRunner(client lms.Client, cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{
		client:  client,
		cfg:     cfg,
		logger:  logging.NewNopLogger(),
		metrics: metrics.NewNopCollector(),
		diag:    &printer{w: io.Discard},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run выполняет логин и, если он удался, конвейер проверок.
func (r *Runner) Run(ctx context.Context) *Result {
	start := time.Now()
	res := &Result{Fixtures: NewFixtures()}

	session, login := r.Authenticate(ctx)
	res.Checks = append(res.Checks, login)

	if login.Outcome != OutcomePassed {
		res.Aborted = true
		res.Duration = time.Since(start)
		r.logger.Error("логин не удался, прогон прерван", "reason", login.Reason, "error_code", login.ErrorCode)
		return res
	}

	api := r.client.Authorized(session.Token)
	res.Checks = append(res.Checks, r.execute(ctx, api, r.Pipeline(), res.Fixtures)...)
	res.Duration = time.Since(start)

	r.logger.Info("прогон завершён", "status", res.Status(), "duration_ms", res.Duration.Milliseconds())
	return res
}

// Authenticate выполняет логин. При неудаче Session пустая, а результат failed.
func (r *Runner) Authenticate(ctx context.Context) (Session, CheckResult) {
	ctx, span := tracing.StartCheck(ctx, constants.CheckLogin)
	r.diag.begin(constants.CheckLogin, http.MethodPost, lms.PathLogin)

	start := time.Now()
	token, resp, err := r.client.Login(ctx, lms.Credentials{
		Identifier: r.cfg.Credentials.Identifier,
		Password:   r.cfg.Credentials.Password,
	})

	var res CheckResult
	if err != nil {
		res = failure(constants.CheckLogin, resp, err)
	} else {
		res = success(constants.CheckLogin, resp)
		res.detail("token", urlutil.MaskToken(token))
	}
	res.Duration = time.Since(start)

	tracing.EndCheck(span, string(res.Outcome), res.Reason)
	r.record(res)
	return Session{Token: token}, res
}

// record логирует результат, пишет метрику и выводит диагностику.
func (r *Runner) record(res CheckResult) {
	r.metrics.RecordCheck(res.Name, string(res.Outcome), res.Duration)

	attrs := []any{
		"check", res.Name,
		"outcome", string(res.Outcome),
		"status", res.StatusCode,
		"duration_ms", res.Duration.Milliseconds(),
	}
	if res.Outcome == OutcomeFailed {
		r.logger.Warn("проверка не пройдена", append(attrs, "reason", res.Reason, "error_code", res.ErrorCode)...)
	} else {
		r.logger.Info("проверка выполнена", attrs...)
	}

	r.diag.finish(res)
}

func (r *Runner) recordSkip(res CheckResult) {
	r.metrics.RecordCheck(res.Name, string(res.Outcome), 0)
	r.logger.Info("проверка пропущена", "check", res.Name, "reason", res.Reason)
	r.diag.skip(res)
}
