package app

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/orosun/leadpay/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

const (
	stripeSignatureHeader = "Stripe-Signature"
	maxWebhookBodyBytes   = 65536
)

// StripeWebhookHandler marks the lead of a completed checkout session as paid. Once the
// signature is verified every event is acknowledged with 200, except when the store write
// fails: the 500 makes Stripe deliver the event again.
func (app *Application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	// the signature covers the exact bytes received, so the body is never decoded before verification
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Warn("failed to read webhook body", "error", err)
		app.metrics.webhookEventHandled(r.Context(), "", outcomeRejected)
		app.webhookResponse(w, r, http.StatusBadRequest, webhookBadSignature)
		return
	}

	event, err := app.paymentProvider.ConstructEvent(payload, r.Header.Get(stripeSignatureHeader))
	if err != nil {
		logger.Warn("webhook signature verification failed", "error", err)
		app.metrics.webhookEventHandled(r.Context(), "", outcomeRejected)
		app.webhookResponse(w, r, http.StatusBadRequest, webhookBadSignature)
		return
	}

	logger = logger.With("eventId", event.ID, "eventType", event.Type)

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded:
	default:
		logger.Debug("ignoring webhook event")
		app.metrics.webhookEventHandled(r.Context(), event.Type, outcomeIgnored)
		app.webhookResponse(w, r, http.StatusOK, webhookOK)
		return
	}

	var checkoutSession stripe.CheckoutSession

	err = json.Unmarshal(event.Data.Raw, &checkoutSession)
	if err != nil {
		logger.Warn("webhook event does not carry a checkout session", "error", err)
		app.metrics.webhookEventHandled(r.Context(), event.Type, outcomeIgnored)
		app.webhookResponse(w, r, http.StatusOK, webhookNoLeadId)
		return
	}

	leadId := checkoutSession.Metadata[domain.MetadataLeadId]
	logger = logger.With("checkoutSessionId", checkoutSession.ID, "leadId", leadId)

	// an id that cannot address a lead will not become valid on redelivery
	if app.validator.Var(leadId, "required,docid") != nil {
		logger.Warn("checkout session without usable leadId")
		app.metrics.webhookEventHandled(r.Context(), event.Type, outcomeIgnored)
		app.webhookResponse(w, r, http.StatusOK, webhookNoLeadId)
		return
	}

	// delayed payment methods complete the session before the money arrives; the
	// async_payment_succeeded event follows once it does
	if event.Type == stripe.EventTypeCheckoutSessionCompleted &&
		checkoutSession.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
		logger.Info("checkout completed with payment pending")
		app.metrics.webhookEventHandled(r.Context(), event.Type, outcomeIgnored)
		app.webhookResponse(w, r, http.StatusOK, webhookOK)
		return
	}

	err = app.leadRepo.MarkPaid(r.Context(), leadId, checkoutSession.ID)
	if err != nil {
		logger.Error("failed to mark lead as paid", "error", err)
		app.metrics.webhookEventHandled(r.Context(), event.Type, outcomeFailed)
		app.webhookResponse(w, r, http.StatusInternalServerError, webhookFailed)
		return
	}

	logger.Info("lead marked as paid")
	app.metrics.webhookEventHandled(r.Context(), event.Type, outcomeApplied)
	app.webhookResponse(w, r, http.StatusOK, webhookOK)
}
