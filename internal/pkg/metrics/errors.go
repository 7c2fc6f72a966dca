package metrics

import "errors"

var (
	ErrPushgatewayURLRequired = errors.New("pushgateway URL is required when metrics enabled")
	ErrJobNameRequired        = errors.New("job name is required")
	ErrInvalidTimeout         = errors.New("timeout must be positive")
	ErrPushgatewayURLInvalid  = errors.New("pushgateway URL has invalid format")
)
