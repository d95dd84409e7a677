package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orosun/leadpay/internal/domain"
)

type PostgresTierRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTierRepository(db *pgxpool.Pool) *PostgresTierRepository {
	return &PostgresTierRepository{
		db: db,
	}
}

func (p *PostgresTierRepository) GetPriceId(ctx context.Context, tier string) (string, error) {
	query := `SELECT price_id FROM tiers WHERE name = $1`

	var priceId string

	err := p.db.QueryRow(ctx, query, tier).Scan(&priceId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrTierNotConfigured
		}

		return "", err
	}

	if priceId == "" {
		return "", domain.ErrTierNotConfigured
	}

	return priceId, nil
}
