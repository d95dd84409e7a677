package repository

import (
	"context"
	"maps"

	"github.com/orosun/leadpay/internal/domain"
)

// StaticTierRepository serves tier prices supplied through configuration.
type StaticTierRepository struct {
	prices map[string]string
}

func NewStaticTierRepository(prices map[string]string) *StaticTierRepository {
	return &StaticTierRepository{
		prices: maps.Clone(prices),
	}
}

func (s *StaticTierRepository) GetPriceId(_ context.Context, tier string) (string, error) {
	priceId := s.prices[tier]
	if priceId == "" {
		return "", domain.ErrTierNotConfigured
	}

	return priceId, nil
}
