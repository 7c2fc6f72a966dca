// Package main содержит точку входа api-smoke: последовательный smoke-прогон
// API учебной платформы (логин, промокоды, курс → раздел → урок).
//
// Флагов и аргументов нет. Конфигурация: YAML файл из SMOKE_CONFIG
// и переменные окружения SMOKE_*.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Kargones/api-smoke/internal/config"
	"github.com/Kargones/api-smoke/internal/constants"
	"github.com/Kargones/api-smoke/internal/di"
)

func main() {
	os.Exit(run())
}

// run возвращает код выхода. os.Exit вызывается в main, чтобы отработали
// defer-ы App.Run (сброс span-ов).
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось загрузить конфигурацию: %v\n", err)
		return constants.ExitConfigError
	}

	app, err := di.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось инициализировать приложение: %v\n", err)
		return constants.ExitConfigError
	}

	app.Logger.Debug("Информация о сборке", "version", constants.Version, "config", cfg.Source)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
