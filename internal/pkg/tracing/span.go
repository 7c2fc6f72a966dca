package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName — имя tracer-а прогона.
const InstrumentationName = "github.com/Kargones/api-smoke/internal/smoke"

// Атрибуты span-ов.
const (
	AttrCheckName    = attribute.Key("check.name")
	AttrCheckOutcome = attribute.Key("check.outcome")
	AttrRunStatus    = attribute.Key("run.status")
)

// StartRun открывает корневой span прогона.
func StartRun(ctx context.Context, target string) (context.Context, trace.Span) {
	return otel.Tracer(InstrumentationName).Start(ctx, "smoke-run",
		trace.WithAttributes(attribute.String("smoke.target", target)))
}

// StartCheck открывает span проверки.
func StartCheck(ctx context.Context, check string) (context.Context, trace.Span) {
	return otel.Tracer(InstrumentationName).Start(ctx, "check "+check,
		trace.WithAttributes(AttrCheckName.String(check)))
}

// EndCheck закрывает span проверки с исходом. Для failed выставляется статус Error.
func EndCheck(span trace.Span, outcome, reason string) {
	span.SetAttributes(AttrCheckOutcome.String(outcome))
	if outcome == "failed" {
		span.SetStatus(codes.Error, reason)
	}
	span.End()
}

// EndRun закрывает корневой span прогона.
func EndRun(span trace.Span, status string) {
	span.SetAttributes(AttrRunStatus.String(status))
	if status != "passed" {
		span.SetStatus(codes.Error, status)
	}
	span.End()
}
