//go:build wireinject

package di

import (
	"github.com/google/wire"

	"github.com/Kargones/api-smoke/internal/config"
)

//go:generate wire

// ProviderSet объединяет все провайдеры приложения.
//
// При добавлении новых провайдеров:
// 1. Создать функцию провайдера в providers.go
// 2. Добавить её в ProviderSet
// 3. Перегенерировать: go generate ./internal/di/...
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideOutputWriter,
	ProvideTraceID,
	ProvideMetricsCollector,
	ProvideTracerProvider,
	ProvideAlerter,
	ProvideClient,
	ProvideRunner,
	ProvideStdout,
	wire.Struct(new(App), "*"),
)

// InitializeApp создаёт App через Wire DI из загруженной конфигурации.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return constants.ExitConfigError
//	}
//	app, err := di.InitializeApp(cfg)
//
// Реализация генерируется в wire_gen.go.
func InitializeApp(cfg *config.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
