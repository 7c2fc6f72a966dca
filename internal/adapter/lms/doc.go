// Package lms — HTTP клиент проверяемого API учебной платформы.
//
// Все ответы API приходят в конверте:
//
//	{"success": true, "message": "...", "data": {...}}
//
// Клиент разделён на role-based интерфейсы:
//   - Authenticator — логин и получение токена
//   - DiscountAPI — промокоды (список, создание, чтение)
//   - CatalogAPI — курсы и разделы
//   - LessonAPI — создание и обновление уроков
//
// Каждый типизированный метод возвращает *Response с диагностикой
// (статус, тело, curl-строка) даже при ошибке, чтобы проверка могла её показать.
//
// # Ошибки
//
// Ошибки возвращаются как *apperrors.AppError:
//   - TRANSPORT.REQUEST_FAILED — запрос не выполнен или ответ не прочитан
//   - HTTP.UNEXPECTED_STATUS — неожиданный HTTP статус
//   - ENVELOPE.MALFORMED — тело не соответствует схеме конверта
//   - ENVELOPE.NOT_SUCCESS — success=false
//   - FIXTURE.MISSING — в data нет ожидаемого значения
//
// # Тестирование
//
// Пакет lmstest содержит in-process реализацию API поверх httptest.
package lms
