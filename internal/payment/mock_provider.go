package payment

import (
	"context"
	"sync"

	"github.com/stripe/stripe-go/v82"
)

// MockPaymentProvider returns a canned checkout session instead of calling Stripe. Webhook
// signatures are still verified for real against its secret.
type MockPaymentProvider struct {
	*StripePaymentProvider

	mu              sync.Mutex
	CheckoutSession *stripe.CheckoutSession
	Err             error
	Calls           []CheckoutCall
}

type CheckoutCall struct {
	LeadId  string
	PriceId string
}

func NewMockPaymentProvider(webhookSecret string) *MockPaymentProvider {
	return &MockPaymentProvider{
		StripePaymentProvider: NewStripePaymentProvider(nil, webhookSecret, ""),
	}
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	leadId string,
	priceId string) (*stripe.CheckoutSession, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, CheckoutCall{LeadId: leadId, PriceId: priceId})

	return m.CheckoutSession, m.Err
}

// Reset clears the canned response and the recorded calls.
func (m *MockPaymentProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CheckoutSession = nil
	m.Err = nil
	m.Calls = nil
}
