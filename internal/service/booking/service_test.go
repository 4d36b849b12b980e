package booking

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caremitra/portal/internal/model"
	"github.com/caremitra/portal/internal/store"
	"github.com/caremitra/portal/pkg/apperror"
	"github.com/caremitra/portal/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: logger.ErrorLevel, TimeFormat: time.RFC3339, Output: io.Discard})
}

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	log := testLogger()
	st, err := store.Open(filepath.Join(t.TempDir(), "portal.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st, log), st
}

func seed(t *testing.T, st store.Store, slots []model.Slot) {
	t.Helper()
	require.NoError(t, st.Save(context.Background(), model.CollectionSlots, slots))
}

func TestAvailableSlotsFiltersDateAndBooked(t *testing.T) {
	pool := []model.Slot{
		{ID: 1, Date: "2026-09-01", Time: "10:00 AM"},
		{ID: 2, Date: "2026-09-02", Time: "10:00 AM"},
		{ID: 3, Date: "2026-09-01", Time: "10:30 AM", Patient: "Ravi"},
		{ID: 4, Date: "2026-09-01", Time: "11:00 AM"},
	}

	available := AvailableSlots(pool, "2026-09-01")

	require.Len(t, available, 2)
	assert.Equal(t, int64(1), available[0].ID, "input order must be preserved")
	assert.Equal(t, int64(4), available[1].ID)
	for _, slot := range available {
		assert.Equal(t, "2026-09-01", slot.Date)
		assert.False(t, slot.Booked())
	}
}

func TestAvailableSlotsEmptyPool(t *testing.T) {
	assert.Empty(t, AvailableSlots(nil, "2026-09-01"))
}

func TestBookMutatesExactlyOneSlot(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seed(t, st, []model.Slot{
		{ID: 1, Date: "2026-09-01", Time: "10:00 AM"},
		{ID: 2, Date: "2026-09-01", Time: "10:30 AM"},
		{ID: 3, Date: "2026-09-02", Time: "11:00 AM"},
	})

	patient := model.Patient{ID: 7, Name: "Ravi Kumar", Age: "34", Place: "Mysuru", Phone: "9000000002"}
	require.NoError(t, svc.Book(ctx, 2, patient))

	var slots []model.Slot
	require.NoError(t, st.Load(ctx, model.CollectionSlots, &slots))
	require.Len(t, slots, 3)
	assert.Equal(t, "Ravi Kumar", slots[1].Patient)
	assert.False(t, slots[0].Booked())
	assert.False(t, slots[2].Booked())

	var appointments []model.Appointment
	require.NoError(t, st.Load(ctx, model.CollectionAppointments, &appointments))
	require.Len(t, appointments, 1)
	assert.Equal(t, "Ravi Kumar", appointments[0].Name)
	assert.Equal(t, "10:30 AM", appointments[0].BookedSlot)
	assert.Equal(t, "2026-09-01", appointments[0].Date)
}

func TestBookUnknownSlotIsHandledNoop(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seed(t, st, []model.Slot{{ID: 1, Date: "2026-09-01", Time: "10:00 AM"}})

	err := svc.Book(ctx, 999, model.Patient{Name: "Ravi Kumar"})
	assert.True(t, apperror.IsNotFound(err))

	var slots []model.Slot
	require.NoError(t, st.Load(ctx, model.CollectionSlots, &slots))
	assert.False(t, slots[0].Booked())

	var appointments []model.Appointment
	require.NoError(t, st.Load(ctx, model.CollectionAppointments, &appointments))
	assert.Empty(t, appointments, "no appointment may be recorded for a failed slot update")
}

func TestBookAlreadyBookedSlotIsHandledNoop(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seed(t, st, []model.Slot{{ID: 1, Date: "2026-09-01", Time: "10:00 AM", Patient: "Meera"}})

	err := svc.Book(ctx, 1, model.Patient{Name: "Ravi Kumar"})
	assert.True(t, apperror.IsNotFound(err))

	var slots []model.Slot
	require.NoError(t, st.Load(ctx, model.CollectionSlots, &slots))
	assert.Equal(t, "Meera", slots[0].Patient, "a booked slot's patient is never overwritten")

	var appointments []model.Appointment
	require.NoError(t, st.Load(ctx, model.CollectionAppointments, &appointments))
	assert.Empty(t, appointments)
}

func TestBookRequiresPatientName(t *testing.T) {
	svc, st := newTestService(t)
	seed(t, st, []model.Slot{{ID: 1, Date: "2026-09-01", Time: "10:00 AM"}})

	err := svc.Book(context.Background(), 1, model.Patient{})
	assert.True(t, apperror.IsValidation(err))
}

func TestSlotsForDateReadsPersistedPool(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	seed(t, st, []model.Slot{
		{ID: 1, Date: "2026-09-01", Time: "10:00 AM"},
		{ID: 2, Date: "2026-09-01", Time: "10:30 AM", Patient: "Meera"},
	})

	slots, err := svc.SlotsForDate(ctx, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, int64(1), slots[0].ID)
}
