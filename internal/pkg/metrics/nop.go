package metrics

import (
	"context"
	"time"
)

// NopCollector ничего не собирает.
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

func (c *NopCollector) RecordCheck(_, _ string, _ time.Duration) {}

func (c *NopCollector) RecordRun(_ string, _ time.Duration) {}

func (c *NopCollector) Push(_ context.Context) error {
	return nil
}
