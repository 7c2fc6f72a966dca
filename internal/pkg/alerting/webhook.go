package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Kargones/api-smoke/internal/constants"
	"github.com/Kargones/api-smoke/internal/pkg/logging"
	"github.com/Kargones/api-smoke/internal/pkg/urlutil"
)

// HTTPClient — минимальный интерфейс HTTP клиента; подменяется в тестах.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookAlerter отправляет алерт POST-запросом с JSON телом.
type WebhookAlerter struct {
	config     Config
	logger     logging.Logger
	httpClient HTTPClient
	hostname   string

	// backoff — пауза перед первым повтором; удваивается до maxBackoff.
	backoff time.Duration
}

// WebhookPayload — JSON тело запроса.
type WebhookPayload struct {
	ErrorCode    string    `json:"error_code,omitempty"`
	Message      string    `json:"message"`
	TraceID      string    `json:"trace_id"`
	Timestamp    time.Time `json:"timestamp"`
	Status       string    `json:"status"`
	Target       string    `json:"target"`
	FailedChecks []string  `json:"failed_checks,omitempty"`
	Severity     string    `json:"severity"`
	Source       string    `json:"source"`
	Hostname     string    `json:"hostname,omitempty"`
}

// httpError — ответ webhook со статусом не 2xx.
type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// maxBackoff достаточен для короткоживущего CLI.
const maxBackoff = 4 * time.Second

// maxResponseBodySize ограничивает чтение тела ответа webhook (1 KB).
const maxResponseBodySize = 1024

// NewWebhookAlerter создаёт WebhookAlerter. Hostname вычисляется один раз.
func NewWebhookAlerter(config Config, logger logging.Logger) *WebhookAlerter {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &WebhookAlerter{
		config:     config,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
		hostname:   hostname,
		backoff:    time.Second,
	}
}

// SetHTTPClient подменяет HTTP клиент.
func (w *WebhookAlerter) SetHTTPClient(client HTTPClient) {
	w.httpClient = client
}

// Send отправляет алерт на все URL. Ошибки логируются, возвращается nil.
func (w *WebhookAlerter) Send(ctx context.Context, alert Alert) error {
	payload := w.createPayload(alert)

	successCount := 0
	for i, target := range w.config.URLs {
		if ctx.Err() != nil {
			w.logger.Debug("отправка алерта отменена",
				"error_code", alert.ErrorCode,
				"remaining_urls", len(w.config.URLs)-i,
			)
			return nil
		}

		if err := w.sendWithRetry(ctx, target, payload); err != nil {
			w.logger.Error("ошибка отправки алерта",
				"error", err.Error(),
				"url", urlutil.MaskURL(target),
				"error_code", alert.ErrorCode,
			)
			continue
		}
		successCount++
	}

	if successCount > 0 {
		w.logger.Info("алерт отправлен",
			"status", alert.Status,
			"severity", alert.Severity.String(),
			"urls_success", successCount,
			"urls_total", len(w.config.URLs),
		)
	} else if len(w.config.URLs) > 0 {
		w.logger.Warn("алерт не доставлен ни на один URL",
			"status", alert.Status,
			"urls_total", len(w.config.URLs),
		)
	}
	return nil
}

func (w *WebhookAlerter) createPayload(alert Alert) WebhookPayload {
	return WebhookPayload{
		ErrorCode:    alert.ErrorCode,
		Message:      alert.Message,
		TraceID:      alert.TraceID,
		Timestamp:    alert.Timestamp,
		Status:       alert.Status,
		Target:       alert.Target,
		FailedChecks: alert.FailedChecks,
		Severity:     alert.Severity.String(),
		Source:       constants.AppName,
		Hostname:     w.hostname,
	}
}

// sendWithRetry повторяет запрос при сетевых ошибках и 5xx.
// 4xx указывает на ошибку конфигурации webhook и не повторяется.
func (w *WebhookAlerter) sendWithRetry(ctx context.Context, target string, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	var lastErr error
	backoff := w.backoff
	for attempt := 0; attempt <= w.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)

			w.logger.Debug("повтор отправки алерта",
				"attempt", attempt,
				"max_retries", w.config.MaxRetries,
				"error", lastErr.Error(),
				"url", urlutil.MaskURL(target),
			)
		}

		lastErr = w.sendRequest(ctx, target, body)
		if lastErr == nil || isClientHTTPError(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", w.config.MaxRetries+1, lastErr)
}

func (w *WebhookAlerter) sendRequest(ctx context.Context, target string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", constants.AppName+"/"+constants.Version)
	for key, value := range w.config.Headers {
		req.Header.Set(key, value)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodySize)) //nolint:errcheck // best-effort drain
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	return &httpError{StatusCode: resp.StatusCode, Body: string(respBody)}
}

func isClientHTTPError(err error) bool {
	var httpErr *httpError
	if !errors.As(err, &httpErr) {
		return false
	}
	return httpErr.StatusCode >= 400 && httpErr.StatusCode < 500
}
