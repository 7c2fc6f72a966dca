// Package smoketest содержит сквозные тесты api-smoke: конфигурация из
// окружения, граф зависимостей di.InitializeApp, прогон против
// lmstest.Server и итоговый вывод в stdout.
//
// Это НЕ unit-тесты проверок: они находятся в internal/smoke.
// Здесь проверяется, что собранное приложение целиком печатает
// корректный отчёт, возвращает нужный код выхода и не раскрывает секреты.
package smoketest
