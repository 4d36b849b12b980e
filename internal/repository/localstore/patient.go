package localstore

import (
	"context"
	"fmt"

	"github.com/caremitra/portal/internal/model"
	"github.com/caremitra/portal/internal/repository"
	"github.com/caremitra/portal/internal/store"
	"github.com/caremitra/portal/pkg/apperror"
)

type patientRepository struct {
	store store.Store
}

func NewPatientRepository(s store.Store) repository.PatientRepository {
	return &patientRepository{store: s}
}

func (r *patientRepository) FindByPhone(ctx context.Context, phone string) (*model.Patient, error) {
	var patients []model.Patient
	if err := r.store.Load(ctx, model.CollectionPatients, &patients); err != nil {
		return nil, fmt.Errorf("failed to load patients: %w", err)
	}

	for i := range patients {
		if patients[i].Phone == phone {
			return &patients[i], nil
		}
	}
	return nil, apperror.NotFound("patient")
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	var patients []model.Patient
	if err := r.store.Load(ctx, model.CollectionPatients, &patients); err != nil {
		return fmt.Errorf("failed to load patients: %w", err)
	}

	patients = append(patients, *patient)
	if err := r.store.Save(ctx, model.CollectionPatients, patients); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context) ([]model.Patient, error) {
	var patients []model.Patient
	if err := r.store.Load(ctx, model.CollectionPatients, &patients); err != nil {
		return nil, fmt.Errorf("failed to load patients: %w", err)
	}
	return patients, nil
}
