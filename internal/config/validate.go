package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// maxDiscountCodeLen — ограничение API на длину кода скидки.
const maxDiscountCodeLen = 20

// timestampDigits — число цифр в unix timestamp, добавляемом к префиксу кода.
const timestampDigits = 10

// Validate проверяет теги validate и настройки подсистем.
// Все нарушения собираются в одну ошибку.
func (c *Config) Validate() error {
	var problems []string

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				problems = append(problems, describe(fe))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	if n := len(c.Discount.CodePrefix) + timestampDigits; n > maxDiscountCodeLen {
		problems = append(problems, fmt.Sprintf("discount.codePrefix: код скидки будет длиной %d, максимум %d", n, maxDiscountCodeLen))
	}

	metricsCfg := c.Metrics.Settings()
	if err := metricsCfg.Validate(); err != nil {
		problems = append(problems, "metrics: "+err.Error())
	}
	tracingCfg := c.Tracing.Settings()
	if err := tracingCfg.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	alertingCfg := c.Alerting.Settings()
	if err := alertingCfg.Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// describe формирует сообщение вида "target.baseUrl: нарушено правило url".
// Значение поля не выводится: среди полей есть пароль.
func describe(fe validator.FieldError) string {
	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}
	return fmt.Sprintf("%s: нарушено правило %s", fieldPath(fe.Namespace()), rule)
}

// fieldPath превращает "Config.Target.BaseURL" в "target.baseURL".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}
