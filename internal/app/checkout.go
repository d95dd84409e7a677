package app

import (
	"errors"
	"net/http"

	"github.com/orosun/leadpay/api"
	"github.com/orosun/leadpay/internal/domain"
)

// CreateCheckoutSessionHandler starts a hosted checkout for a lead at the price of its tier and
// returns the redirect URL. The lead is only updated once the provider has created the session.
func (app *Application) CreateCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CheckoutSessionRequest

	err := app.readJSON(w, r, &input)
	if err != nil && !errors.Is(err, errEmptyBody) {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		logger.Warn("invalid checkout request", "error", err)
		app.failedValidationResponse(w, r, err)
		return
	}

	logger = logger.With("leadId", input.LeadId)

	lead, err := app.leadRepo.GetById(r.Context(), input.LeadId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("checkout requested for unknown lead")
			app.notFoundResponseWithErr(w, r, errors.New(ErrLeadNotFound))
		default:
			logger.Error("failed to get lead", "error", err)
			app.checkoutFailedResponse(w, r, err)
		}

		return
	}

	if lead.Tier == "" {
		logger.Warn("checkout requested for lead without tier")
		app.badRequestResponse(w, r, domain.ErrLeadMissingTier)
		return
	}

	priceId, err := app.tierRepo.GetPriceId(r.Context(), lead.Tier)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTierNotConfigured):
			logger.Warn("no price configured for tier", "tier", lead.Tier)
			app.badRequestResponse(w, r, domain.ErrTierNotConfigured)
		default:
			logger.Error("failed to resolve tier price", "tier", lead.Tier, "error", err)
			app.checkoutFailedResponse(w, r, err)
		}

		return
	}

	checkoutSession, err := app.paymentProvider.CreateCheckoutSession(r.Context(), lead.ID, priceId)
	if err != nil {
		logger.Error("failed to create checkout session", "tier", lead.Tier, "priceId", priceId, "error", err)
		app.checkoutFailedResponse(w, r, err)
		return
	}

	logger = logger.With("checkoutSessionId", checkoutSession.ID)

	err = app.leadRepo.AttachCheckoutSession(r.Context(), lead.ID, checkoutSession.ID)
	if err != nil {
		logger.Error("failed to store checkout session on lead", "error", err)
		app.checkoutFailedResponse(w, r, err)
		return
	}

	app.metrics.checkoutSessionCreated(r.Context(), lead.Tier)
	logger.Info("checkout session created", "tier", lead.Tier)

	resp := api.CheckoutSessionResponse{
		Url: checkoutSession.URL,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.checkoutFailedResponse(w, r, err)
	}
}
