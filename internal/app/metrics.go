package app

import (
	"context"

	"github.com/stripe/stripe-go/v82"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	outcomeApplied  = "applied"
	outcomeIgnored  = "ignored"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

type metrics struct {
	checkoutSessions metric.Int64Counter
	webhookEvents    metric.Int64Counter
}

// newMetrics registers the instruments on the global meter provider, which forwards to the
// provider installed by InitTelemetry or drops measurements when telemetry is off.
func newMetrics() (*metrics, error) {
	meter := otel.Meter(serviceName)

	checkoutSessions, err := meter.Int64Counter(
		"checkout.sessions.created",
		metric.WithDescription("Checkout sessions created and stored on their lead"),
	)
	if err != nil {
		return nil, err
	}

	webhookEvents, err := meter.Int64Counter(
		"webhook.events",
		metric.WithDescription("Payment provider webhook events by type and outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &metrics{
		checkoutSessions: checkoutSessions,
		webhookEvents:    webhookEvents,
	}, nil
}

func (m *metrics) checkoutSessionCreated(ctx context.Context, tier string) {
	if m == nil {
		return
	}

	m.checkoutSessions.Add(ctx, 1, metric.WithAttributes(attribute.String("tier", tier)))
}

func (m *metrics) webhookEventHandled(ctx context.Context, eventType stripe.EventType, outcome string) {
	if m == nil {
		return
	}

	m.webhookEvents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", string(eventType)),
		attribute.String("outcome", outcome),
	))
}
