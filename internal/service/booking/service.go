// Package booking matches patients to appointment slots. Filtering is a
// pure function of the slot pool; booking updates the slot and appends
// the appointment record inside a single store transaction, so an
// appointment can never be recorded against a slot that failed to update.
package booking

import (
	"context"

	"github.com/caremitra/portal/internal/model"
	"github.com/caremitra/portal/internal/store"
	"github.com/caremitra/portal/pkg/apperror"
	"github.com/caremitra/portal/pkg/logger"
)

// AvailableSlots returns the slots whose date equals the query date and
// which are not yet booked, preserving the order of the input pool.
func AvailableSlots(slots []model.Slot, date string) []model.Slot {
	var available []model.Slot
	for _, slot := range slots {
		if slot.Date == date && !slot.Booked() {
			available = append(available, slot)
		}
	}
	return available
}

type Service struct {
	store store.Store
	log   *logger.Logger
}

func NewService(s store.Store, log *logger.Logger) *Service {
	return &Service{store: s, log: log}
}

// SlotsForDate loads the persisted slot pool and filters it for the given
// date.
func (s *Service) SlotsForDate(ctx context.Context, date string) ([]model.Slot, error) {
	var slots []model.Slot
	if err := s.store.Load(ctx, model.CollectionSlots, &slots); err != nil {
		return nil, err
	}
	return AvailableSlots(slots, date), nil
}

// Book assigns the slot with the given id to the patient and appends an
// appointment record carrying the slot's time and date. Both writes
// happen in one transaction against the full slot pool. An unknown or
// already-booked slot id is a handled failure: nothing is written and no
// appointment is appended.
func (s *Service) Book(ctx context.Context, slotID int64, patient model.Patient) error {
	if patient.Name == "" {
		return apperror.Validation("patient name is required")
	}

	err := s.store.Update(ctx, func(tx store.Tx) error {
		var slots []model.Slot
		if err := tx.Load(model.CollectionSlots, &slots); err != nil {
			return err
		}

		idx := -1
		for i := range slots {
			if slots[i].ID == slotID && !slots[i].Booked() {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperror.NotFound("slot")
		}

		slots[idx].Patient = patient.Name
		if err := tx.Save(model.CollectionSlots, slots); err != nil {
			return err
		}

		var appointments []model.Appointment
		if err := tx.Load(model.CollectionAppointments, &appointments); err != nil {
			return err
		}
		appointments = append(appointments, model.Appointment{
			Name:       patient.Name,
			Age:        patient.Age,
			Place:      patient.Place,
			Phone:      patient.Phone,
			BookedSlot: slots[idx].Time,
			Date:       slots[idx].Date,
		})
		return tx.Save(model.CollectionAppointments, appointments)
	})

	if apperror.IsNotFound(err) {
		s.log.Warn("booking skipped, slot unavailable", "slot_id", slotID)
		return err
	}
	if err != nil {
		return err
	}

	s.log.Info("slot booked", "slot_id", slotID, "patient", patient.Name)
	return nil
}
