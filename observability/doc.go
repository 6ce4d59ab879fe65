// Package observability wires OpenTelemetry tracing and metrics over OTLP
// HTTP. Call InitTracer and InitMeter once at startup, shut the returned
// providers down on exit, and use StartSpan plus RunMetrics everywhere else.
//
//	tp, _ := observability.InitTracer(ctx, observability.DefaultTracerConfig("meetscribe"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "pipeline.align")
//	defer span.End()
package observability
