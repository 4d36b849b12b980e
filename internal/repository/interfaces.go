// Package repository defines typed access to the record store's
// collections. Lookup misses are reported as apperror.CodeNotFound, an
// expected recoverable outcome, not an exceptional condition.
package repository

import (
	"context"

	"github.com/caremitra/portal/internal/model"
)

type DoctorRepository interface {
	FindByPhone(ctx context.Context, phone string) (*model.Doctor, error)
	Create(ctx context.Context, doctor *model.Doctor) error
	List(ctx context.Context) ([]model.Doctor, error)
}

type PatientRepository interface {
	FindByPhone(ctx context.Context, phone string) (*model.Patient, error)
	Create(ctx context.Context, patient *model.Patient) error
	List(ctx context.Context) ([]model.Patient, error)
}

type PharmacyUserRepository interface {
	FindByPhone(ctx context.Context, phone string) (*model.PharmacyUser, error)
	Create(ctx context.Context, user *model.PharmacyUser) error
	List(ctx context.Context) ([]model.PharmacyUser, error)
}

type SlotRepository interface {
	List(ctx context.Context) ([]model.Slot, error)
	Replace(ctx context.Context, slots []model.Slot) error
}

type AppointmentRepository interface {
	Append(ctx context.Context, appointment *model.Appointment) error
	List(ctx context.Context) ([]model.Appointment, error)
}
