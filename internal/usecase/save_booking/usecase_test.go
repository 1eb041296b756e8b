package save_booking

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReceptionService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/booking"
	durationRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/duration"
	facilityRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/facility"
	renterRepo "github.com/m04kA/SMC-ReceptionService/internal/infra/storage/renter"
)

// fakes

type fakeBookings struct {
	items  map[int64]*domain.Booking
	nextID int64
}

func newFakeBookings(items ...*domain.Booking) *fakeBookings {
	f := &fakeBookings{items: map[int64]*domain.Booking{}, nextID: 100}
	for _, b := range items {
		f.items[b.ID] = b
	}
	return f
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	b.ID = f.nextID
	stored := *b
	f.items[b.ID] = &stored
	return b, nil
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.items {
		if filter.FacilityID != nil && b.FacilityID != *filter.FacilityID {
			continue
		}
		if filter.RenterID != nil && b.RenterID != *filter.RenterID {
			continue
		}
		if filter.From != nil && b.StartAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.StartAt.Before(*filter.To) {
			continue
		}
		if filter.ExcludeID != nil && b.ID == *filter.ExcludeID {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeBookings) Update(_ context.Context, b *domain.Booking) error {
	if _, ok := f.items[b.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	stored := *b
	f.items[b.ID] = &stored
	return nil
}

type fakeDurations map[int64]*domain.Duration

func (f fakeDurations) GetByID(_ context.Context, id int64) (*domain.Duration, error) {
	d, ok := f[id]
	if !ok {
		return nil, durationRepo.ErrDurationNotFound
	}
	return d, nil
}

func (f fakeDurations) MaxMinutes(context.Context) (int, error) {
	longest := 0
	for _, d := range f {
		if d.Minutes > longest {
			longest = d.Minutes
		}
	}
	return longest, nil
}

type fakeFacilities map[int64]*domain.Facility

func (f fakeFacilities) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	fc, ok := f[id]
	if !ok {
		return nil, facilityRepo.ErrFacilityNotFound
	}
	return fc, nil
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

func (f fakeRenters) GetFirstByOfficerID(_ context.Context, officerID int64) (*domain.Renter, error) {
	for _, r := range f {
		if r.OfficerID == officerID {
			return r, nil
		}
	}
	return nil, renterRepo.ErrRenterNotFound
}

type fakeSettings struct{ limit int }

func (f fakeSettings) Current(context.Context) (*domain.Settings, error) {
	return &domain.Settings{DailyBookingLimit: f.limit}, nil
}

type recordedChange struct {
	model    string
	recordID int64
	action   domain.ChangeAction
	changes  map[string]interface{}
}

type fakeChanges struct{ entries []recordedChange }

func (f *fakeChanges) Record(_ context.Context, _ domain.Actor, model string, recordID int64, action domain.ChangeAction, changes map[string]interface{}) error {
	f.entries = append(f.entries, recordedChange{model, recordID, action, changes})
	return nil
}

type fakeMetrics struct{ rejected map[string]int }

func (f *fakeMetrics) BookingRejected(reason string) { f.rejected[reason]++ }

type passTx struct{}

func (passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fixture

const (
	gymID  int64 = 1
	poolID int64 = 2

	min30 int64 = 1
	min60 int64 = 2
	min90 int64 = 3

	tenantOfficer int64 = 7
	otherOfficer  int64 = 8
	renterID      int64 = 10
	otherRenterID int64 = 11
)

var (
	tenant = domain.Actor{OfficerID: tenantOfficer, Role: domain.RoleTenant}
	admin  = domain.Actor{OfficerID: 1, Role: domain.RoleAdmin}
	day    = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc       *UseCase
	bookings *fakeBookings
	changes  *fakeChanges
	metrics  *fakeMetrics
}

func newFixture(limit int, existing ...*domain.Booking) *fixture {
	bookings := newFakeBookings(existing...)
	changes := &fakeChanges{}
	metrics := &fakeMetrics{rejected: map[string]int{}}

	uc := NewUseCase(
		bookings,
		fakeDurations{
			min30: {ID: min30, Label: "30 min", Minutes: 30},
			min60: {ID: min60, Label: "60 min", Minutes: 60},
			min90: {ID: min90, Label: "90 min", Minutes: 90},
		},
		fakeFacilities{
			gymID:  {ID: gymID, Label: "Gym"},
			poolID: {ID: poolID, Label: "Pool"},
		},
		fakeRenters{
			{ID: renterID, OfficerID: tenantOfficer, CompanyName: "Acme"},
			{ID: otherRenterID, OfficerID: otherOfficer, CompanyName: "Globex"},
		},
		fakeSettings{limit: limit},
		changes,
		metrics,
		passTx{},
		time.UTC,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: day.Add(-12 * time.Hour)}

	return &fixture{uc: uc, bookings: bookings, changes: changes, metrics: metrics}
}

func existingBooking(id, facilityID, renter, officer int64, start time.Time, minutes int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		FacilityID:      facilityID,
		DurationID:      min60,
		StartAt:         start,
		OfficerID:       officer,
		RenterID:        renter,
		DurationMinutes: minutes,
	}
}

func TestCreate_ConflictReportsExistingWindow(t *testing.T) {
	f := newFixture(0, existingBooking(1, gymID, otherRenterID, otherOfficer, day.Add(10*time.Hour), 60))

	_, err := f.uc.Create(context.Background(), tenant, &CreateRequest{
		FacilityID: gymID,
		DurationID: min60,
		StartAt:    day.Add(10*time.Hour + 30*time.Minute),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "Gym", conflict.Facility)
	assert.Equal(t, day.Add(10*time.Hour), conflict.Start)
	assert.Equal(t, day.Add(11*time.Hour), conflict.End)
	assert.Contains(t, err.Error(), "2025-06-01 10:00")
	assert.Contains(t, err.Error(), "2025-06-01 11:00")

	assert.Equal(t, 1, f.metrics.rejected[reasonConflict])
	assert.Len(t, f.bookings.items, 1)
	assert.Empty(t, f.changes.entries)
}

func TestCreate_ConflictWithBookingLongerThanOneDay(t *testing.T) {
	// бронь на 2000 минут началась за сутки до новой и еще идет
	f := newFixture(0, existingBooking(1, gymID, otherRenterID, otherOfficer, day.Add(-24*time.Hour), 2000))
	f.uc.durationRepo = fakeDurations{
		min60: {ID: min60, Label: "60 min", Minutes: 60},
		4:     {ID: 4, Label: "2000 min", Minutes: 2000},
	}

	_, err := f.uc.Create(context.Background(), tenant, &CreateRequest{
		FacilityID: gymID,
		DurationID: min60,
		StartAt:    day.Add(9 * time.Hour),
	})

	require.Error(t, err)
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, day.Add(-24*time.Hour), conflict.Start)
	assert.Equal(t, day.Add(-24*time.Hour+2000*time.Minute), conflict.End)
	assert.Len(t, f.bookings.items, 1)
}

func TestCreate_AdjacentBookingIsAccepted(t *testing.T) {
	f := newFixture(0, existingBooking(1, gymID, otherRenterID, otherOfficer, day.Add(10*time.Hour), 60))

	resp, err := f.uc.Create(context.Background(), tenant, &CreateRequest{
		FacilityID: gymID,
		DurationID: min60,
		StartAt:    day.Add(11 * time.Hour),
	})

	require.NoError(t, err)
	assert.Equal(t, renterID, resp.RenterID)
}

func TestCreate_DailyQuota(t *testing.T) {
	existing := existingBooking(1, poolID, renterID, tenantOfficer, day.Add(8*time.Hour), 90)

	t.Run("over the limit is rejected", func(t *testing.T) {
		f := newFixture(120, existing)

		_, err := f.uc.Create(context.Background(), tenant, &CreateRequest{
			FacilityID: gymID,
			DurationID: min60,
			StartAt:    day.Add(14 * time.Hour),
		})

		require.Error(t, err)
		var quota *QuotaError
		require.True(t, errors.As(err, &quota))
		assert.Equal(t, 120, quota.Limit)
		assert.Equal(t, 90, quota.Booked)
		assert.Equal(t, 60, quota.Requested)
		assert.ErrorIs(t, err, ErrQuotaExceeded)
		assert.Equal(t, 1, f.metrics.rejected[reasonQuota])
	})

	t.Run("exactly the limit is accepted", func(t *testing.T) {
		f := newFixture(120, existing)

		resp, err := f.uc.Create(context.Background(), tenant, &CreateRequest{
			FacilityID: gymID,
			DurationID: min30,
			StartAt:    day.Add(14 * time.Hour),
		})

		require.NoError(t, err)
		assert.Equal(t, 30, resp.DurationMinutes)
		require.Len(t, f.changes.entries, 1)
		assert.Equal(t, domain.ModelBooking, f.changes.entries[0].model)
		assert.Equal(t, domain.ChangeCreated, f.changes.entries[0].action)
	})

	t.Run("next day does not count", func(t *testing.T) {
		f := newFixture(120, existing)

		_, err := f.uc.Create(context.Background(), tenant, &CreateRequest{
			FacilityID: gymID,
			DurationID: min90,
			StartAt:    day.Add(34 * time.Hour),
		})

		require.NoError(t, err)
	})

	t.Run("zero limit disables the check", func(t *testing.T) {
		f := newFixture(0, existing)

		_, err := f.uc.Create(context.Background(), tenant, &CreateRequest{
			FacilityID: gymID,
			DurationID: min90,
			StartAt:    day.Add(14 * time.Hour),
		})

		require.NoError(t, err)
	})
}

func TestCreate_DailyQuotaUsesReceptionDay(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// 22:00 UTC 31.05 is 01:00 on 01.06 in Moscow
	f := newFixture(120, existingBooking(1, poolID, renterID, tenantOfficer, day.Add(-2*time.Hour), 90))
	f.uc.location = moscow
	f.uc.timeProvider = fixedTime{now: day.Add(-6 * time.Hour)}

	_, err = f.uc.Create(context.Background(), tenant, &CreateRequest{
		FacilityID: gymID,
		DurationID: min60,
		StartAt:    day.Add(6 * time.Hour),
	})

	var quota *QuotaError
	require.True(t, errors.As(err, &quota))
	assert.Equal(t, 90, quota.Booked)
}

func TestCreate_MustStartInFuture(t *testing.T) {
	f := newFixture(0)
	now := day.Add(9 * time.Hour)
	f.uc.timeProvider = fixedTime{now: now}

	_, err := f.uc.Create(context.Background(), tenant, &CreateRequest{
		FacilityID: gymID,
		DurationID: min60,
		StartAt:    now,
	})

	assert.ErrorIs(t, err, ErrNotInFuture)
	assert.Equal(t, 1, f.metrics.rejected[reasonNotFuture])
}

func TestCreate_OfficerResolution(t *testing.T) {
	t.Run("tenant cannot book for another officer", func(t *testing.T) {
		f := newFixture(0)
		other := otherOfficer

		_, err := f.uc.Create(context.Background(), tenant, &CreateRequest{
			FacilityID: gymID, DurationID: min60, StartAt: day.Add(9 * time.Hour), OfficerID: &other,
		})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin books on behalf of an officer", func(t *testing.T) {
		f := newFixture(0)
		other := otherOfficer

		resp, err := f.uc.Create(context.Background(), admin, &CreateRequest{
			FacilityID: gymID, DurationID: min60, StartAt: day.Add(9 * time.Hour), OfficerID: &other,
		})

		require.NoError(t, err)
		assert.Equal(t, otherRenterID, resp.RenterID)
		assert.Equal(t, otherOfficer, resp.OfficerID)
	})

	t.Run("officer without renter", func(t *testing.T) {
		f := newFixture(0)

		_, err := f.uc.Create(context.Background(), admin, &CreateRequest{
			FacilityID: gymID, DurationID: min60, StartAt: day.Add(9 * time.Hour),
		})

		assert.ErrorIs(t, err, ErrRenterRequired)
	})
}

func TestCreate_UnknownCatalogEntries(t *testing.T) {
	f := newFixture(0)

	_, err := f.uc.Create(context.Background(), tenant, &CreateRequest{
		FacilityID: 99, DurationID: min60, StartAt: day.Add(9 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrFacilityNotFound)

	_, err = f.uc.Create(context.Background(), tenant, &CreateRequest{
		FacilityID: gymID, DurationID: 99, StartAt: day.Add(9 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrDurationNotFound)

	_, err = f.uc.Create(context.Background(), tenant, &CreateRequest{DurationID: min60, StartAt: day.Add(9 * time.Hour)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_IgnoresOwnInterval(t *testing.T) {
	own := existingBooking(1, gymID, renterID, tenantOfficer, day.Add(10*time.Hour), 60)
	f := newFixture(60, own)

	start := day.Add(10*time.Hour + 30*time.Minute)
	resp, err := f.uc.Update(context.Background(), tenant, 1, &UpdateRequest{StartAt: &start})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, start, f.bookings.items[1].StartAt)

	require.Len(t, f.changes.entries, 1)
	assert.Equal(t, domain.ChangeUpdated, f.changes.entries[0].action)
	assert.Contains(t, f.changes.entries[0].changes, "start_at")
}

func TestUpdate_ConflictWithAnotherBooking(t *testing.T) {
	f := newFixture(0,
		existingBooking(1, gymID, renterID, tenantOfficer, day.Add(10*time.Hour), 60),
		existingBooking(2, poolID, renterID, tenantOfficer, day.Add(10*time.Hour), 60),
	)

	gym := gymID
	_, err := f.uc.Update(context.Background(), tenant, 2, &UpdateRequest{FacilityID: &gym})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, poolID, f.bookings.items[2].FacilityID)
}

func TestUpdate_Authorization(t *testing.T) {
	f := newFixture(0, existingBooking(1, gymID, otherRenterID, otherOfficer, day.Add(10*time.Hour), 60))

	start := day.Add(12 * time.Hour)
	_, err := f.uc.Update(context.Background(), tenant, 1, &UpdateRequest{StartAt: &start})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, day.Add(10*time.Hour), f.bookings.items[1].StartAt)
}

func TestUpdate_ReassignOfficerMovesRenter(t *testing.T) {
	f := newFixture(0, existingBooking(1, gymID, renterID, tenantOfficer, day.Add(10*time.Hour), 60))

	other := otherOfficer
	resp, err := f.uc.Update(context.Background(), admin, 1, &UpdateRequest{OfficerID: &other})

	require.NoError(t, err)
	assert.Equal(t, otherRenterID, resp.RenterID)
	assert.Equal(t, otherRenterID, f.changes.entries[0].changes["renter_id"])
}

func TestUpdate_PastBookingCannotBeSaved(t *testing.T) {
	f := newFixture(0, existingBooking(1, gymID, renterID, tenantOfficer, day.Add(10*time.Hour), 60))
	f.uc.timeProvider = fixedTime{now: day.Add(11 * time.Hour)}

	pool := poolID
	_, err := f.uc.Update(context.Background(), tenant, 1, &UpdateRequest{FacilityID: &pool})

	assert.ErrorIs(t, err, ErrNotInFuture)
}

func TestUpdate_NotFoundAndEmpty(t *testing.T) {
	f := newFixture(0)

	start := day.Add(12 * time.Hour)
	_, err := f.uc.Update(context.Background(), admin, 42, &UpdateRequest{StartAt: &start})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.uc.Update(context.Background(), admin, 42, &UpdateRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
