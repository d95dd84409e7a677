package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orosun/leadpay/internal/domain"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "requestId" || k == "createdAt"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(content))
	require.NoError(t, err)
}

// resetState reseeds the leads and tiers and drops every cached tier price.
func resetState(t testing.TB, app *TestApp) {
	t.Helper()

	executeSQLFile(t, app.DB, "testdata/leads_down.sql")
	executeSQLFile(t, app.DB, "testdata/leads_up.sql")
	require.NoError(t, app.RedisClient.FlushAll(context.Background()).Err())

	app.PaymentProvider.Reset()
}

func getLead(t testing.TB, app *TestApp, id string) domain.Lead {
	t.Helper()

	query := `SELECT id, COALESCE(tier, ''), paid, stripe_session, paid_at, updated_at FROM leads WHERE id = $1`

	var lead domain.Lead
	err := app.DB.QueryRow(context.Background(), query, id).Scan(
		&lead.ID,
		&lead.Tier,
		&lead.Paid,
		&lead.StripeSession,
		&lead.PaidAt,
		&lead.UpdatedAt,
	)
	require.NoError(t, err)

	return lead
}

// checkoutCompletedEvent signs a checkout.session.completed event the way Stripe delivers it.
func checkoutCompletedEvent(eventId, sessionId, leadId, paymentStatus string) (io.Reader, map[string]string) {
	payload := fmt.Sprintf(`{
  "id": %q,
  "object": "event",
  "api_version": "2025-03-31.basil",
  "type": "checkout.session.completed",
  "data": {
    "object": {
      "id": %q,
      "object": "checkout.session",
      "payment_status": %q,
      "metadata": {"leadId": %q}
    }
  }
}`, eventId, sessionId, paymentStatus, leadId)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  TestWebhookSecret,
	})

	return bytes.NewReader(signed.Payload), map[string]string{"Stripe-Signature": signed.Header}
}
