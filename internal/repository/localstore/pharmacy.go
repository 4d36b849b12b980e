package localstore

import (
	"context"
	"fmt"

	"github.com/caremitra/portal/internal/model"
	"github.com/caremitra/portal/internal/repository"
	"github.com/caremitra/portal/internal/store"
	"github.com/caremitra/portal/pkg/apperror"
)

type pharmacyUserRepository struct {
	store store.Store
}

func NewPharmacyUserRepository(s store.Store) repository.PharmacyUserRepository {
	return &pharmacyUserRepository{store: s}
}

func (r *pharmacyUserRepository) FindByPhone(ctx context.Context, phone string) (*model.PharmacyUser, error) {
	var users []model.PharmacyUser
	if err := r.store.Load(ctx, model.CollectionPharmacyUsers, &users); err != nil {
		return nil, fmt.Errorf("failed to load pharmacy users: %w", err)
	}

	for i := range users {
		if users[i].Phone == phone {
			return &users[i], nil
		}
	}
	return nil, apperror.NotFound("pharmacy user")
}

func (r *pharmacyUserRepository) Create(ctx context.Context, user *model.PharmacyUser) error {
	var users []model.PharmacyUser
	if err := r.store.Load(ctx, model.CollectionPharmacyUsers, &users); err != nil {
		return fmt.Errorf("failed to load pharmacy users: %w", err)
	}

	users = append(users, *user)
	if err := r.store.Save(ctx, model.CollectionPharmacyUsers, users); err != nil {
		return fmt.Errorf("failed to create pharmacy user: %w", err)
	}
	return nil
}

func (r *pharmacyUserRepository) List(ctx context.Context) ([]model.PharmacyUser, error) {
	var users []model.PharmacyUser
	if err := r.store.Load(ctx, model.CollectionPharmacyUsers, &users); err != nil {
		return nil, fmt.Errorf("failed to load pharmacy users: %w", err)
	}
	return users, nil
}
