package domain

import (
	"context"
	"time"
)

// Lead is a prospective customer tracked before and through payment.
type Lead struct {
	ID            string
	Tier          string
	Paid          bool
	StripeSession *string
	PaidAt        *time.Time
	UpdatedAt     *time.Time
}

type LeadRepository interface {
	GetById(ctx context.Context, id string) (*Lead, error)
	// AttachCheckoutSession records a freshly created checkout session on an existing lead and
	// resets its paid flag. It returns ErrRecordNotFound when the lead does not exist.
	AttachCheckoutSession(ctx context.Context, id string, checkoutSessionId string) error
	// MarkPaid creates or merges the lead so that it is paid by the given checkout session.
	// Applying it again with the same session leaves the record unchanged.
	MarkPaid(ctx context.Context, id string, checkoutSessionId string) error
}

// TierRepository resolves a pricing tier to a payment provider price identifier.
// Implementations return ErrTierNotConfigured when the tier has no price.
type TierRepository interface {
	GetPriceId(ctx context.Context, tier string) (string, error)
}
