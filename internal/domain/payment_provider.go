package domain

import (
	"context"

	"github.com/stripe/stripe-go/v82"
)

// MetadataLeadId is the checkout session metadata key that correlates a session with its lead.
const MetadataLeadId = "leadId"

type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, leadId string, priceId string) (*stripe.CheckoutSession, error)
	// ConstructEvent verifies the signature header against the raw request body and decodes the
	// event. Verification failures wrap ErrInvalidSignature.
	ConstructEvent(payload []byte, signature string) (stripe.Event, error)
}
