// Package apperrors предоставляет структурированные ошибки smoke-прогона.
// Код ошибки классифицирует причину неуспешной проверки.
package apperrors

import (
	"errors"
	"fmt"
)

// Коды ошибок в формате CATEGORY.SPECIFIC.
const (
	// CONFIG — загрузка и валидация конфигурации.
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"

	// TRANSPORT — запрос не дошёл до сервера или ответ не прочитан.
	ErrTransport = "TRANSPORT.REQUEST_FAILED"

	// HTTP — сервер ответил неожиданным статусом.
	ErrUnexpectedStatus = "HTTP.UNEXPECTED_STATUS"

	// ENVELOPE — тело ответа не соответствует конверту {success, data, message}
	// или сервер сообщил success=false.
	ErrEnvelopeMalformed  = "ENVELOPE.MALFORMED"
	ErrEnvelopeNotSuccess = "ENVELOPE.NOT_SUCCESS"

	// FIXTURE — в ответе нет значения, нужного следующему шагу цепочки.
	ErrFixtureMissing = "FIXTURE.MISSING"

	// ASSERTION — ответ получен, но его содержимое не совпадает с ожидаемым.
	ErrAssertion = "ASSERTION.MISMATCH"

	// AUTH — логин не выдал токен.
	ErrLoginFailed = "AUTH.LOGIN_FAILED"

	// OUTPUT — ошибка форматирования отчёта.
	ErrOutputFormat = "OUTPUT.FORMAT_FAILED"
)

// AppError — ошибка с машиночитаемым кодом.
//
// ВАЖНО: Message не должен содержать токены и пароли.
//
//	return apperrors.NewAppError(apperrors.ErrUnexpectedStatus,
//	    "GET /discounts вернул 500", nil)
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Cause не сериализуется: может содержать детали транспорта.
	Cause error `json:"-"`
}

// Error реализует интерфейс error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap возвращает причину для errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError создаёт AppError.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf возвращает код первого AppError в цепочке err или пустую строку.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// MessageOf возвращает Message первого AppError в цепочке, иначе err.Error().
// Пустая строка для nil.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
