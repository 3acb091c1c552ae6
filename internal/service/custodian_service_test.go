package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/venue-booking-service/internal/domain"
)

func TestCustodianLookupRejectsOtherUserTypes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	student := f.seedUser(domain.UserTypeStudent, "student@campus.edu")

	_, err := f.custodians.Get(ctx, student.ID)
	requireCode(t, err, "NOT_FOUND")

	_, err = f.custodians.Get(ctx, "missing")
	requireCode(t, err, "NOT_FOUND")

	_, err = f.custodians.VenuesFor(ctx, student.ID)
	requireCode(t, err, "NOT_FOUND")
}

func TestCustodianVenueScoping(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	keeper := f.seedUser(domain.UserTypeCustodian, "keeper@campus.edu")
	other := f.seedUser(domain.UserTypeCustodian, "other@campus.edu")
	mine := f.seedVenue("Main Hall", &keeper.ID)
	f.seedVenue("Annex", &other.ID)
	f.seedVenue("Unassigned Room", nil)

	venues, err := f.custodians.VenuesFor(ctx, keeper.ID)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, mine.ID, venues[0].ID)
}

func TestCustodianBookingsFollowCurrentOwnership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	oldKeeper := f.seedUser(domain.UserTypeCustodian, "old@campus.edu")
	newKeeper := f.seedUser(domain.UserTypeCustodian, "new@campus.edu")
	student := f.seedUser(domain.UserTypeStudent, "student@campus.edu")
	venue := f.seedVenue("Main Hall", &oldKeeper.ID)

	booking, err := f.bookings.Create(ctx, student.ID, createInput(venue.ID))
	require.NoError(t, err)

	before, err := f.custodians.BookingsFor(ctx, oldKeeper.ID)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, booking.ID, before[0].ID)

	_, err = f.venues.Update(ctx, venue.ID, VenueUpdateInput{CustodianID: &newKeeper.ID})
	require.NoError(t, err)

	// Owner-scoped views follow the venue, not the creation-time snapshot.
	after, err := f.custodians.BookingsFor(ctx, oldKeeper.ID)
	require.NoError(t, err)
	assert.Empty(t, after)

	inherited, err := f.custodians.BookingsFor(ctx, newKeeper.ID)
	require.NoError(t, err)
	require.Len(t, inherited, 1)
	assert.Equal(t, booking.ID, inherited[0].ID)
}

func TestCustodianPendingQueue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	keeper := f.seedUser(domain.UserTypeCustodian, "keeper@campus.edu")
	student := f.seedUser(domain.UserTypeStudent, "student@campus.edu")
	venue := f.seedVenue("Main Hall", &keeper.ID)

	pending, err := f.bookings.Create(ctx, student.ID, createInput(venue.ID))
	require.NoError(t, err)

	input := createInput(venue.ID)
	input.TimeSlot = "14:00-16:00"
	approved, err := f.bookings.Create(ctx, student.ID, input)
	require.NoError(t, err)
	_, err = f.bookings.UpdateStatus(ctx, approved.ID, domain.BookingStatusApproved, nil)
	require.NoError(t, err)

	queue, err := f.custodians.PendingBookingsFor(ctx, keeper.ID)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, pending.ID, queue[0].ID)

	all, err := f.custodians.BookingsFor(ctx, keeper.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCustodianList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedUser(domain.UserTypeCustodian, "keeper@campus.edu")
	f.seedUser(domain.UserTypeStudent, "student@campus.edu")

	custodians, err := f.custodians.List(ctx)
	require.NoError(t, err)
	require.Len(t, custodians, 1)
	assert.Equal(t, domain.UserTypeCustodian, custodians[0].UserType)
}
