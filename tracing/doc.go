// Package tracing wraps OpenTelemetry so that the scheduler can record one
// span per simulated process and one span per run without importing the
// upstream packages directly.
package tracing
