package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/orosun/leadpay/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	configCollection = "cfg"
	configDocument   = "main"
)

// firestoreConfig mirrors cfg/main: {"tiers": {"<tier>": {"price": "<price id>"}}}.
type firestoreConfig struct {
	Tiers map[string]firestoreTier `firestore:"tiers"`
}

type firestoreTier struct {
	Price string `firestore:"price"`
}

type FirestoreTierRepository struct {
	client *firestore.Client
}

func NewFirestoreTierRepository(client *firestore.Client) *FirestoreTierRepository {
	return &FirestoreTierRepository{
		client: client,
	}
}

func (f *FirestoreTierRepository) GetPriceId(ctx context.Context, tier string) (string, error) {
	snap, err := f.client.Collection(configCollection).Doc(configDocument).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", domain.ErrTierNotConfigured
		}

		return "", err
	}

	var cfg firestoreConfig

	err = snap.DataTo(&cfg)
	if err != nil {
		return "", err
	}

	priceId := cfg.Tiers[tier].Price
	if priceId == "" {
		return "", domain.ErrTierNotConfigured
	}

	return priceId, nil
}
