package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/orosun/leadpay/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const leadsCollection = "leads"

type firestoreLead struct {
	Tier          string    `firestore:"tier"`
	Paid          bool      `firestore:"paid"`
	StripeSession string    `firestore:"stripeSession"`
	PaidAt        time.Time `firestore:"paidAt"`
	UpdatedAt     time.Time `firestore:"updatedAt"`
}

func (l firestoreLead) toDomain(id string) *domain.Lead {
	lead := &domain.Lead{
		ID:   id,
		Tier: l.Tier,
		Paid: l.Paid,
	}

	if l.StripeSession != "" {
		lead.StripeSession = &l.StripeSession
	}
	if !l.PaidAt.IsZero() {
		lead.PaidAt = &l.PaidAt
	}
	if !l.UpdatedAt.IsZero() {
		lead.UpdatedAt = &l.UpdatedAt
	}

	return lead
}

type FirestoreLeadRepository struct {
	client *firestore.Client
}

func NewFirestoreLeadRepository(client *firestore.Client) *FirestoreLeadRepository {
	return &FirestoreLeadRepository{
		client: client,
	}
}

func (f *FirestoreLeadRepository) GetById(ctx context.Context, id string) (*domain.Lead, error) {
	snap, err := f.client.Collection(leadsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	var doc firestoreLead

	err = snap.DataTo(&doc)
	if err != nil {
		return nil, err
	}

	return doc.toDomain(snap.Ref.ID), nil
}

func (f *FirestoreLeadRepository) AttachCheckoutSession(ctx context.Context, id string, checkoutSessionId string) error {
	_, err := f.client.Collection(leadsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "stripeSession", Value: checkoutSessionId},
		{Path: "paid", Value: false},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (f *FirestoreLeadRepository) MarkPaid(ctx context.Context, id string, checkoutSessionId string) error {
	ref := f.client.Collection(leadsCollection).Doc(id)

	return f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		if snap != nil && snap.Exists() {
			var current firestoreLead

			err = snap.DataTo(&current)
			if err != nil {
				return err
			}

			if current.Paid && current.StripeSession == checkoutSessionId {
				return nil
			}
		}

		return tx.Set(ref, map[string]any{
			"paid":          true,
			"paidAt":        firestore.ServerTimestamp,
			"stripeSession": checkoutSessionId,
			"updatedAt":     firestore.ServerTimestamp,
		}, firestore.MergeAll)
	})
}
