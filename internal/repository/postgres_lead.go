package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orosun/leadpay/internal/domain"
)

type PostgresLeadRepository struct {
	db *pgxpool.Pool
}

func NewPostgresLeadRepository(db *pgxpool.Pool) *PostgresLeadRepository {
	return &PostgresLeadRepository{
		db: db,
	}
}

func (p *PostgresLeadRepository) GetById(ctx context.Context, id string) (*domain.Lead, error) {
	query := `
		SELECT id, COALESCE(tier, ''), paid, stripe_session, paid_at, updated_at
		FROM leads
		WHERE id = $1`

	var lead domain.Lead

	err := p.db.QueryRow(ctx, query, id).Scan(
		&lead.ID,
		&lead.Tier,
		&lead.Paid,
		&lead.StripeSession,
		&lead.PaidAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &lead, nil
}

func (p *PostgresLeadRepository) AttachCheckoutSession(ctx context.Context, id string, checkoutSessionId string) error {
	query := `
		UPDATE leads
		SET stripe_session = $1, paid = false, updated_at = now()
		WHERE id = $2`

	tag, err := p.db.Exec(ctx, query, checkoutSessionId, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresLeadRepository) MarkPaid(ctx context.Context, id string, checkoutSessionId string) error {
	// A replay of the same completion matches the WHERE guard and leaves the row untouched.
	query := `
		INSERT INTO leads (id, paid, paid_at, stripe_session, updated_at)
		VALUES ($1, true, now(), $2, now())
		ON CONFLICT (id) DO UPDATE
		SET paid = true,
			paid_at = EXCLUDED.paid_at,
			stripe_session = EXCLUDED.stripe_session,
			updated_at = EXCLUDED.updated_at
		WHERE NOT (leads.paid AND leads.stripe_session IS NOT DISTINCT FROM EXCLUDED.stripe_session)`

	_, err := p.db.Exec(ctx, query, id, checkoutSessionId)
	return err
}
