package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/Kargones/api-smoke/internal/constants"
	"github.com/Kargones/api-smoke/internal/pkg/apperrors"
)

// Load загружает конфигурацию из файла, путь к которому задан в SMOKE_CONFIG.
// Без SMOKE_CONFIG используются значения по умолчанию и переменные окружения.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(constants.EnvConfigPath))
}

// LoadFile загружает конфигурацию из path (пустой path означает "без файла"),
// применяет переменные окружения и валидирует результат.
// Ошибки возвращаются как *apperrors.AppError с кодом CONFIG.*.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
				fmt.Sprintf("не удалось прочитать файл конфигурации %s", path), err)
		}
		if err := decodeYAML(data, cfg); err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
				fmt.Sprintf("не удалось разобрать файл конфигурации %s", path), err)
		}
		cfg.Source = path
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigLoad,
			"не удалось применить переменные окружения", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigValidate,
			"конфигурация невалидна", err)
	}

	return cfg, nil
}

// decodeYAML накладывает YAML поверх cfg. Неизвестные ключи считаются ошибкой,
// пустой документ допустим.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
