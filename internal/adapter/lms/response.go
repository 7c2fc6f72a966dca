package lms

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Kargones/api-smoke/internal/pkg/apperrors"
)

// Response — диагностика одного запроса.
type Response struct {
	Method string
	Path   string

	// URL — полный адрес без userinfo и секретных query-параметров.
	URL string

	// StatusCode равен 0, если ответ не получен.
	StatusCode int

	// Body — тело ответа в UTF-8.
	Body []byte

	// Envelope равен nil, если тело не соответствует схеме конверта.
	Envelope    *Envelope
	envelopeErr error

	Duration  time.Duration
	RequestID string

	// Curl — команда, воспроизводящая запрос, с замаскированными секретами.
	Curl string
}

// PrettyBody возвращает тело с отступами и замаскированными секретами.
// Не-JSON тело возвращается как есть.
func (r *Response) PrettyBody() string {
	if r == nil || len(r.Body) == 0 {
		return ""
	}
	return string(maskJSON(r.Body, true))
}

// Expect проверяет статус, конверт и success.
// Порядок проверок определяет код ошибки: HTTP.UNEXPECTED_STATUS,
// затем ENVELOPE.MALFORMED, затем ENVELOPE.NOT_SUCCESS.
func (r *Response) Expect(statuses ...int) error {
	if !slices.Contains(statuses, r.StatusCode) {
		msg := fmt.Sprintf("%s %s: статус %d, ожидался %s", r.Method, r.Path, r.StatusCode, joinStatuses(statuses))
		if r.Envelope != nil && r.Envelope.Message != "" {
			msg += ": " + r.Envelope.Message
		}
		return apperrors.NewAppError(apperrors.ErrUnexpectedStatus, msg, nil)
	}

	if r.Envelope == nil {
		return apperrors.NewAppError(apperrors.ErrEnvelopeMalformed,
			fmt.Sprintf("%s %s: тело ответа не соответствует конверту {success, data}", r.Method, r.Path), r.envelopeErr)
	}

	if !r.Envelope.Success {
		msg := fmt.Sprintf("%s %s: success=false", r.Method, r.Path)
		if r.Envelope.Message != "" {
			msg += ": " + r.Envelope.Message
		}
		return apperrors.NewAppError(apperrors.ErrEnvelopeNotSuccess, msg, nil)
	}

	return nil
}

// DecodeData декодирует data конверта в v.
// Отсутствующее или null поле data даёт FIXTURE.MISSING.
func (r *Response) DecodeData(v any) error {
	if r.Envelope == nil {
		return apperrors.NewAppError(apperrors.ErrEnvelopeMalformed,
			fmt.Sprintf("%s %s: нет конверта", r.Method, r.Path), r.envelopeErr)
	}
	if len(r.Envelope.Data) == 0 || string(r.Envelope.Data) == "null" {
		return apperrors.NewAppError(apperrors.ErrFixtureMissing,
			fmt.Sprintf("%s %s: в ответе нет data", r.Method, r.Path), nil)
	}
	if err := json.Unmarshal(r.Envelope.Data, v); err != nil {
		return apperrors.NewAppError(apperrors.ErrEnvelopeMalformed,
			fmt.Sprintf("%s %s: data не разобрано", r.Method, r.Path), err)
	}
	return nil
}

func joinStatuses(statuses []int) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, " или ")
}
