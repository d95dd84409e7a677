package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/orosun/leadpay/api"
	"github.com/orosun/leadpay/internal/mocks"
	"github.com/orosun/leadpay/internal/validator"
)

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config:          Config{Env: "test"},
		validator:       validator.NewValidator(),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		leadRepo:        &mocks.MockLeadRepo{},
		tierRepo:        &mocks.MockTierRepo{},
		paymentProvider: &mocks.MockPaymentProvider{},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, bytes.NewReader(jsonData))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func executeRawRequest(method, url string, body []byte, headers map[string]string) (*httptest.ResponseRecorder, *http.Request) {
	r := httptest.NewRequest(method, url, bytes.NewReader(body))
	for k, v := range headers {
		r.Header.Set(k, v)
	}

	return httptest.NewRecorder(), r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	var errorResp api.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}

	if tt.wantErrMessage != "" && errorResp.Error != tt.wantErrMessage {
		t.Errorf("Error message = %v, want %v", errorResp.Error, tt.wantErrMessage)
	}
}

func ptr[T any](v T) *T {
	return &v
}
