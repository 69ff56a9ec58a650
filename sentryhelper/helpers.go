// Package sentryhelper provides utilities for Sentry transaction and scope
// management, isolating breadcrumbs and context per pipeline run.
package sentryhelper

import (
	"context"

	sentry "github.com/getsentry/sentry-go"
)

// contextKey is used to store the cloned hub in context
type contextKey string

const hubContextKey contextKey = "sentry_hub"

// StartPipelineTransaction creates a new transaction with a cloned hub for
// one playlist-generation run. The cloned hub keeps breadcrumbs and scope
// isolated to this run only.
func StartPipelineTransaction(ctx context.Context, name string) (context.Context, *sentry.Span) {
	hub := sentry.CurrentHub().Clone()
	ctx = context.WithValue(ctx, hubContextKey, hub)

	transaction := sentry.StartTransaction(ctx, name,
		sentry.WithOpName("pipeline"),
		sentry.WithTransactionSource(sentry.SourceTask),
	)
	hub.Scope().SetSpan(transaction)

	return transaction.Context(), transaction
}

// HubFromContext retrieves the cloned hub from context, falling back to
// CurrentHub when none is present.
func HubFromContext(ctx context.Context) *sentry.Hub {
	if ctx == nil {
		return sentry.CurrentHub()
	}
	if hub, ok := ctx.Value(hubContextKey).(*sentry.Hub); ok && hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

// AddBreadcrumb adds a breadcrumb to the hub in context (isolated per run).
func AddBreadcrumb(ctx context.Context, breadcrumb *sentry.Breadcrumb) {
	HubFromContext(ctx).AddBreadcrumb(breadcrumb, nil)
}

// CaptureError reports an error through the hub in context.
func CaptureError(ctx context.Context, err error) {
	HubFromContext(ctx).CaptureException(err)
}
