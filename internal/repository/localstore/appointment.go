package localstore

import (
	"context"
	"fmt"

	"github.com/caremitra/portal/internal/model"
	"github.com/caremitra/portal/internal/repository"
	"github.com/caremitra/portal/internal/store"
)

type appointmentRepository struct {
	store store.Store
}

func NewAppointmentRepository(s store.Store) repository.AppointmentRepository {
	return &appointmentRepository{store: s}
}

// Append adds one entry to the append-only appointment log.
func (r *appointmentRepository) Append(ctx context.Context, appointment *model.Appointment) error {
	var appointments []model.Appointment
	if err := r.store.Load(ctx, model.CollectionAppointments, &appointments); err != nil {
		return fmt.Errorf("failed to load appointments: %w", err)
	}

	appointments = append(appointments, *appointment)
	if err := r.store.Save(ctx, model.CollectionAppointments, appointments); err != nil {
		return fmt.Errorf("failed to append appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]model.Appointment, error) {
	var appointments []model.Appointment
	if err := r.store.Load(ctx, model.CollectionAppointments, &appointments); err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	return appointments, nil
}
