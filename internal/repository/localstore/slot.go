package localstore

import (
	"context"
	"fmt"

	"github.com/caremitra/portal/internal/model"
	"github.com/caremitra/portal/internal/repository"
	"github.com/caremitra/portal/internal/store"
)

type slotRepository struct {
	store store.Store
}

func NewSlotRepository(s store.Store) repository.SlotRepository {
	return &slotRepository{store: s}
}

func (r *slotRepository) List(ctx context.Context) ([]model.Slot, error) {
	var slots []model.Slot
	if err := r.store.Load(ctx, model.CollectionSlots, &slots); err != nil {
		return nil, fmt.Errorf("failed to load slots: %w", err)
	}
	return slots, nil
}

// Replace persists the full slot pool. Booking never writes a filtered
// subset; the whole pool goes back so unrelated slots survive the write.
func (r *slotRepository) Replace(ctx context.Context, slots []model.Slot) error {
	if err := r.store.Save(ctx, model.CollectionSlots, slots); err != nil {
		return fmt.Errorf("failed to save slots: %w", err)
	}
	return nil
}
