package mocks

import (
	"context"

	"github.com/orosun/leadpay/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTierRepo struct {
	mock.Mock
	domain.TierRepository
}

func (m *MockTierRepo) GetPriceId(ctx context.Context, tier string) (string, error) {
	args := m.Called(ctx, tier)
	return args.String(0), args.Error(1)
}
