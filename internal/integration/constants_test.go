package integration_test

const (
	TestWebhookSecret = "whsec_integration_test"

	TestCheckoutSessionId  = "cs_test_a1b2c3"
	TestCheckoutSessionURL = "https://checkout.stripe.com/c/pay/cs_test_a1b2c3"

	// Leads seeded by testdata/leads_up.sql
	TestLeadBasic    = "lead_basic"
	TestLeadPro      = "lead_pro"
	TestLeadNoTier   = "lead_no_tier"
	TestLeadUnpriced = "lead_unpriced"

	TestPriceBasic = "price_basic"
	TestPricePro   = "price_pro"
)
