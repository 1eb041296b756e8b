package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/booking"
	renterRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/renter"
	"github.com/m04kA/SMC-ReceptionService/internal/service/bookings/models"
)

type fakeBookings struct {
	items      map[int64]*domain.Booking
	lastFilter domain.BookingsFilter
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookings) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	var out []*domain.Booking
	for _, b := range f.items {
		if filter.RenterIDs != nil && !contains(filter.RenterIDs, b.RenterID) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookings) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.items, id)
	return nil
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeRenters []*domain.Renter

func (f fakeRenters) GetByID(_ context.Context, id int64) (*domain.Renter, error) {
	for _, r := range f {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, renterRepo.ErrRenterNotFound
}

func (f fakeRenters) List(_ context.Context, officerID *int64) ([]*domain.Renter, error) {
	var out []*domain.Renter
	for _, r := range f {
		if officerID == nil || r.OfficerID == *officerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeChanges struct{ deleted []int64 }

func (f *fakeChanges) Record(_ context.Context, _ domain.Actor, _ string, recordID int64, action domain.ChangeAction, _ map[string]interface{}) error {
	if action == domain.ChangeDeleted {
		f.deleted = append(f.deleted, recordID)
	}
	return nil
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	admin = domain.Actor{OfficerID: 1, Role: domain.RoleAdmin}
	bob   = domain.Actor{OfficerID: 7, Role: domain.RoleTenant}
	eve   = domain.Actor{OfficerID: 8, Role: domain.RoleTenant}
	start = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
)

func newService() (*Service, *fakeBookings, *fakeChanges) {
	bookings := &fakeBookings{items: map[int64]*domain.Booking{
		1: {ID: 1, FacilityID: 1, FacilityLabel: "Gym", StartAt: start, DurationMinutes: 60, RenterID: 10, RenterName: "Acme", OfficerID: 7},
		2: {ID: 2, FacilityID: 1, FacilityLabel: "Gym", StartAt: start.Add(2 * time.Hour), DurationMinutes: 30, RenterID: 11, OfficerID: 8},
	}}
	renters := fakeRenters{
		{ID: 10, OfficerID: 7},
		{ID: 11, OfficerID: 8},
	}
	changes := &fakeChanges{}
	return NewService(bookings, renters, changes, passTx{}, nopLogger{}), bookings, changes
}

func TestGetByID(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	resp, err := svc.GetByID(ctx, bob, 1)
	require.NoError(t, err)
	assert.Equal(t, start.Add(time.Hour), resp.EndAt)
	assert.Equal(t, "Gym - 2025-06-01 10:00 (Acme)", resp.Name)

	_, err = svc.GetByID(ctx, eve, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, admin, 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_TenantSeesOwnRenters(t *testing.T) {
	svc, bookings, _ := newService()
	ctx := context.Background()

	all, err := svc.List(ctx, admin, &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Nil(t, bookings.lastFilter.RenterIDs)

	own, err := svc.List(ctx, bob, &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, int64(1), own[0].ID)
	assert.Equal(t, []int64{10}, bookings.lastFilter.RenterIDs)

	nobody := domain.Actor{OfficerID: 99, Role: domain.RoleTenant}
	none, err := svc.List(ctx, nobody, &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestList_InvalidRange(t *testing.T) {
	svc, _, _ := newService()
	from := start
	to := start.Add(-time.Hour)

	_, err := svc.List(context.Background(), admin, &models.ListBookingsRequest{From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	svc, bookings, changes := newService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, eve, 1), ErrAccessDenied)
	require.NoError(t, svc.Delete(ctx, bob, 1))
	assert.NotContains(t, bookings.items, int64(1))
	assert.Equal(t, []int64{1}, changes.deleted)

	assert.ErrorIs(t, svc.Delete(ctx, admin, 1), ErrBookingNotFound)
}
