package store

import (
	"context"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Properties() Properties
	Users() Users
}

// Properties is the catalog table. List returns records in insertion order;
// downstream ranking treats that order as the tie-break order.
type Properties interface {
	Create(ctx context.Context, p *model.Property) (*model.Property, error)
	Get(ctx context.Context, propertyID int64) (*model.Property, error)
	List(ctx context.Context) ([]model.Property, error)
	Count(ctx context.Context) (int, error)
	UpdateCoordinates(ctx context.Context, propertyID int64, lat, lon float64) error
	UpdateImage(ctx context.Context, propertyID int64, imageURL, imageAlt string) error
}

// Users stores profiles and their ranking weights.
type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID int64) (*model.User, error)
	UpdateWeights(ctx context.Context, userID int64, location, propertyType, features, price int) error
}
