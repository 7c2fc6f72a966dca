// Package tracing генерирует trace ID прогона и настраивает OpenTelemetry:
// один корневой span на прогон и дочерний span на каждую проверку.
//
// Trace ID — 32 hex символа (16 байт), совместим с W3C Trace Context:
//
//	traceID := tracing.GenerateTraceID()
//	ctx := tracing.WithTraceID(ctx, traceID)
//	ctx = tracing.ContextWithOTelTraceID(ctx, traceID)
package tracing

import (
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var fallbackCounter atomic.Uint64

// GenerateTraceID возвращает случайный trace ID из 32 hex символов.
// Байты берутся из UUIDv4; при недоступности источника случайности
// используется ID из timestamp и счётчика.
func GenerateTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(id[:])
}

// fallbackTraceID: %016x для uint64 даёт ровно 16 символов, итого 32.
func fallbackTraceID() string {
	counter := fallbackCounter.Add(1)
	timestamp := uint64(time.Now().UnixNano())
	return fmt.Sprintf("%016x%016x", timestamp, counter)
}
