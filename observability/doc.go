// Package observability provides OpenTelemetry tracing and metrics for seqkit
// blocking operations and bridges.
//
// seqkit always records through the global otel providers, so an embedding
// service that already configured OpenTelemetry gets spans and metrics with
// no extra setup. Init installs OTLP HTTP exporters when seqkit owns the
// process:
//
//	shutdown, err := observability.Init(ctx, cfg)
//	defer shutdown(ctx)
//
// Blocking operations are wrapped in an Operation:
//
//	ctx, op := observability.Default().Start(ctx, "blocking.first")
//	v, err := ...
//	op.End(ctx, err)
//
// Recorded metrics:
//
//	seqkit.operation.total     counter, by operation and status
//	seqkit.operation.duration  histogram, seconds blocked
//	seqkit.error.total         counter, by error kind
//	seqkit.subscription.active up/down counter of held subscriptions
//	seqkit.bridge.dropped      counter of values discarded by lossy bridges
package observability
