// Package logging предоставляет интерфейс и реализации для структурированного логирования
// smoke-прогона. Логи пишутся только в stderr или файл: stdout занят диагностикой и отчётом.
package logging

// Logger определяет интерфейс для структурированного логирования.
// Реализации: SlogAdapter и NopLogger.
//
//	logger.Info("Проверка завершена", "check", "list-discounts", "duration_ms", 42)
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With возвращает новый Logger с добавленными атрибутами.
	//
	//	logger.With("trace_id", traceID).Info("Прогон начат")
	With(args ...any) Logger
}
