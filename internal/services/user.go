package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/store"
)

// UserService handles traveler profiles and their ranking weights.
type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService { return &UserService{store: s} }

func (s *UserService) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	if strings.TrimSpace(u.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	// Weights left at zero take the store default of 1; explicit values must
	// be in range.
	for _, w := range []int{u.WeighedLocation, u.WeighedType, u.WeighedFeatures, u.WeighedPrice} {
		if w != 0 && (w < 1 || w > 10) {
			return nil, fmt.Errorf("%w: weights must be integers between 1 and 10", model.ErrValidation)
		}
	}
	if u.BudgetMin != nil && u.BudgetMax != nil && *u.BudgetMin > *u.BudgetMax {
		u.BudgetMin, u.BudgetMax = u.BudgetMax, u.BudgetMin
	}
	return s.store.Users().Create(ctx, u)
}

func (s *UserService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	return s.store.Users().Get(ctx, userID)
}

func (s *UserService) UpdateWeights(ctx context.Context, userID int64, location, propertyType, features, price int) error {
	for _, w := range []int{location, propertyType, features, price} {
		if w < 1 || w > 10 {
			return fmt.Errorf("%w: weights must be integers between 1 and 10", model.ErrValidation)
		}
	}
	return s.store.Users().UpdateWeights(ctx, userID, location, propertyType, features, price)
}
