package lms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Kargones/api-smoke/internal/pkg/apperrors"
	"github.com/Kargones/api-smoke/internal/pkg/logging"
	"github.com/Kargones/api-smoke/internal/pkg/urlutil"
)

// Compile-time проверки реализации интерфейсов.
var (
	_ Client = (*HTTPClient)(nil)
	_ API    = (*HTTPClient)(nil)
)

// DefaultTimeout — таймаут запроса, если не задан WithTimeout.
const DefaultTimeout = 30 * time.Second

// maxBodySize ограничивает чтение тела ответа.
const maxBodySize = 10 << 20

// HeaderRequestID — заголовок с уникальным ID запроса.
const HeaderRequestID = "X-Request-ID"

// HTTPClient реализует Client и API поверх net/http.
// Транспорт обёрнут otelhttp: каждый запрос получает client span и traceparent.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
	userAgent  string
	token      string
}

// Option настраивает HTTPClient.
type Option func(*HTTPClient)

// WithTimeout задаёт таймаут одного запроса.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient подменяет http.Client (тесты, собственный транспорт).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger задаёт логгер запросов.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent задаёт заголовок User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *HTTPClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewHTTPClient создаёт клиент для baseURL вида "http://host:port/api".
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("некорректный base URL %q", urlutil.MaskURL(baseURL))
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return r.Method + " " + r.URL.Path
				}),
			),
		},
		logger:    logging.NewNopLogger(),
		userAgent: "api-smoke",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL возвращает базовый адрес API.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Authorized возвращает копию клиента с Bearer токеном.
func (c *HTTPClient) Authorized(token string) API {
	clone := *c
	clone.token = token
	return &clone
}

// do выполняет запрос. Ошибка возвращается только для транспортных сбоев;
// статус и конверт проверяет вызывающий через Response.Expect.
// Response возвращается всегда, кроме ошибки сериализации тела.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, payload any) (*Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body []byte
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrTransport,
				fmt.Sprintf("%s %s: не удалось сериализовать тело запроса", method, path), err)
		}
		body = data
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrTransport,
			fmt.Sprintf("%s %s: не удалось создать запрос", method, path), err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(HeaderRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp := &Response{
		Method:    method,
		Path:      path,
		URL:       urlutil.RedactURL(endpoint),
		RequestID: requestID,
		Curl:      renderCurl(method, endpoint, req.Header, body),
	}

	log := c.logger.With("method", method, "path", path, "request_id", requestID)

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	resp.Duration = time.Since(start)
	if err != nil {
		log.Warn("запрос не выполнен", "error", err.Error(), "duration_ms", resp.Duration.Milliseconds())
		return resp, apperrors.NewAppError(apperrors.ErrTransport,
			fmt.Sprintf("%s %s: запрос не выполнен", method, path), err)
	}
	defer httpResp.Body.Close() //nolint:errcheck // body close

	resp.StatusCode = httpResp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
	if err != nil {
		log.Warn("ответ не прочитан", "error", err.Error(), "status", resp.StatusCode)
		return resp, apperrors.NewAppError(apperrors.ErrTransport,
			fmt.Sprintf("%s %s: ответ не прочитан", method, path), err)
	}

	text, err := toUTF8(httpResp.Header.Get("Content-Type"), raw)
	if err != nil {
		log.Warn("тело ответа оставлено без перекодирования", "error", err.Error())
		text = raw
	}
	resp.Body = text
	resp.Envelope, resp.envelopeErr = ParseEnvelope(text)

	log.Debug("ответ получен",
		"status", resp.StatusCode,
		"duration_ms", resp.Duration.Milliseconds(),
		"bytes", len(text),
	)
	return resp, nil
}
