package mocks

import (
	"context"

	"github.com/orosun/leadpay/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockLeadRepo struct {
	mock.Mock
	domain.LeadRepository
}

func (m *MockLeadRepo) GetById(ctx context.Context, id string) (*domain.Lead, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadRepo) AttachCheckoutSession(ctx context.Context, id string, checkoutSessionId string) error {
	args := m.Called(ctx, id, checkoutSessionId)
	return args.Error(0)
}

func (m *MockLeadRepo) MarkPaid(ctx context.Context, id string, checkoutSessionId string) error {
	args := m.Called(ctx, id, checkoutSessionId)
	return args.Error(0)
}
