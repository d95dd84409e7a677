package payment

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/orosun/leadpay/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

const (
	successPath = "/success.html?session_id={CHECKOUT_SESSION_ID}"
	cancelPath  = "/pay.html?lead="
)

type StripePaymentProvider struct {
	client         *client.API
	webhookSecret  string
	redirectDomain string
}

func NewStripePaymentProvider(sc *client.API, webhookSecret, redirectDomain string) *StripePaymentProvider {
	return &StripePaymentProvider{
		client:         sc,
		webhookSecret:  webhookSecret,
		redirectDomain: strings.TrimSuffix(redirectDomain, "/"),
	}
}

// NewStripeClient builds a Stripe API client bound to secretKey. Network retries are disabled;
// a failed call surfaces to the caller as is. cfg may be nil.
func NewStripeClient(secretKey string, cfg *stripe.BackendConfig) *client.API {
	if cfg == nil {
		cfg = &stripe.BackendConfig{}
	}

	cfg.MaxNetworkRetries = stripe.Int64(0)

	// GetBackendWithConfig fills in the URL of the config it is given, so every backend gets its own copy.
	apiCfg, connectCfg, uploadsCfg := *cfg, *cfg, *cfg

	return client.New(secretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, &apiCfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, &connectCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, &uploadsCfg),
	})
}

func (s *StripePaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	leadId string,
	priceId string) (*stripe.CheckoutSession, error) {

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceId),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.successURL()),
		CancelURL:  stripe.String(s.cancelURL(leadId)),
		Metadata: map[string]string{
			domain.MetadataLeadId: leadId,
		},
	}
	params.Context = ctx

	cs, err := s.client.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return cs, nil
}

func (s *StripePaymentProvider) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %w", domain.ErrInvalidSignature, err)
	}

	return event, nil
}

// The session placeholder is substituted by Stripe and must stay unescaped.
func (s *StripePaymentProvider) successURL() string {
	return s.redirectDomain + successPath
}

func (s *StripePaymentProvider) cancelURL(leadId string) string {
	return s.redirectDomain + cancelPath + url.QueryEscape(leadId)
}
