// Package tracing wires Sentry performance spans into gorm, go-redis and
// resty so a request transaction shows its datastore, cache and email calls.
package tracing

import (
	"context"
	"time"

	"recruiting-portal/config"

	"github.com/getsentry/sentry-go"
)

// IsEnabled reports whether a Sentry DSN is configured.
func IsEnabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// StartSpan opens a child span of the span stored in ctx. The returned span
// is nil when ctx carries none; finish it with Finish.
func StartSpan(ctx context.Context, operation, description string) *sentry.Span {
	parent := sentry.SpanFromContext(ctx)
	if parent == nil {
		return nil
	}
	span := parent.StartChild(operation)
	span.Description = description
	return span
}

// Finish closes span with a status derived from err. A fast span below
// threshold is dropped from sampling.
func Finish(span *sentry.Span, err error, elapsed, threshold time.Duration) {
	if span == nil {
		return
	}
	if threshold > 0 && elapsed < threshold {
		span.Sampled = sentry.SampledFalse
	}
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}
