// Package constants содержит константы api-smoke: имена переменных окружения,
// коды выхода и версии.
package constants

// AppName — имя приложения в логах, отчёте и метриках.
const AppName = "api-smoke"

// Version — версия сборки, задаётся через -ldflags "-X .../constants.Version=...".
var Version = "dev"

// APIVersion — версия формата JSON отчёта.
const APIVersion = "v1"

// Переменные окружения режимов и конфигурации.
const (
	// EnvConfigPath — путь к YAML файлу конфигурации (необязательный).
	EnvConfigPath = "SMOKE_CONFIG"

	// EnvDryRun — вывести план проверок без обращения к API.
	EnvDryRun = "SMOKE_DRY_RUN"

	// EnvVerbose — добавлять curl-строку к диагностике каждой проверки.
	EnvVerbose = "SMOKE_VERBOSE"
)

// Коды выхода процесса.
const (
	// ExitOK — все выполненные проверки прошли (пропуски допустимы).
	ExitOK = 0
	// ExitChecksFailed — хотя бы одна проверка провалилась.
	ExitChecksFailed = 1
	// ExitLoginFailed — логин не выдал токен, проверки не запускались.
	ExitLoginFailed = 2
	// ExitConfigError — конфигурация не загружена или невалидна.
	ExitConfigError = 5
)

// Имена проверок в порядке выполнения.
const (
	CheckLogin           = "login"
	CheckListDiscounts   = "list-discounts"
	CheckCreateDiscount  = "create-discount"
	CheckGetDiscount     = "get-discount"
	CheckDiscoverCourse  = "discover-course"
	CheckDiscoverSection = "discover-section"
	CheckCreateLesson    = "create-lesson"
	CheckUpdateLesson    = "update-lesson"
)
