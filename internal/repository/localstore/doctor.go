// Package localstore implements the typed repositories over the generic
// record store. Every write loads the full collection, mutates it in
// memory and saves it back whole, matching the store's replace-only
// contract.
package localstore

import (
	"context"
	"fmt"

	"github.com/caremitra/portal/internal/model"
	"github.com/caremitra/portal/internal/repository"
	"github.com/caremitra/portal/internal/store"
	"github.com/caremitra/portal/pkg/apperror"
)

type doctorRepository struct {
	store store.Store
}

func NewDoctorRepository(s store.Store) repository.DoctorRepository {
	return &doctorRepository{store: s}
}

func (r *doctorRepository) FindByPhone(ctx context.Context, phone string) (*model.Doctor, error) {
	var doctors []model.Doctor
	if err := r.store.Load(ctx, model.CollectionDoctors, &doctors); err != nil {
		return nil, fmt.Errorf("failed to load doctors: %w", err)
	}

	for i := range doctors {
		if doctors[i].Phone == phone {
			return &doctors[i], nil
		}
	}
	return nil, apperror.NotFound("doctor")
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	var doctors []model.Doctor
	if err := r.store.Load(ctx, model.CollectionDoctors, &doctors); err != nil {
		return fmt.Errorf("failed to load doctors: %w", err)
	}

	doctors = append(doctors, *doctor)
	if err := r.store.Save(ctx, model.CollectionDoctors, doctors); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) List(ctx context.Context) ([]model.Doctor, error) {
	var doctors []model.Doctor
	if err := r.store.Load(ctx, model.CollectionDoctors, &doctors); err != nil {
		return nil, fmt.Errorf("failed to load doctors: %w", err)
	}
	return doctors, nil
}
