package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/venue-booking-service/internal/domain"
	"github.com/spec-kit/venue-booking-service/internal/events"
)

func TestCreateVenueValidatesCustodian(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	keeper := f.seedUser(domain.UserTypeCustodian, "keeper@campus.edu")
	student := f.seedUser(domain.UserTypeStudent, "student@campus.edu")

	venue, err := f.venues.Create(ctx, VenueCreateInput{
		Name:        "Main Hall",
		Location:    "North Campus",
		Capacity:    200,
		CustodianID: &keeper.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, venue.CustodianID)
	assert.Equal(t, keeper.ID, *venue.CustodianID)

	_, err = f.venues.Create(ctx, VenueCreateInput{
		Name:        "Annex",
		Capacity:    50,
		CustodianID: &student.ID,
	})
	requireCode(t, err, "VALIDATION_FAILED")

	missing := "missing"
	_, err = f.venues.Create(ctx, VenueCreateInput{
		Name:        "Annex",
		Capacity:    50,
		CustodianID: &missing,
	})
	requireCode(t, err, "NOT_FOUND")

	_, err = f.venues.Create(ctx, VenueCreateInput{Name: "Annex", Capacity: 0})
	requireCode(t, err, "VALIDATION_FAILED")
}

func TestUpdateVenueReassignsCustodian(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	oldKeeper := f.seedUser(domain.UserTypeCustodian, "old@campus.edu")
	newKeeper := f.seedUser(domain.UserTypeCustodian, "new@campus.edu")
	venue := f.seedVenue("Main Hall", &oldKeeper.ID)

	updated, err := f.venues.Update(ctx, venue.ID, VenueUpdateInput{CustodianID: &newKeeper.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.CustodianID)
	assert.Equal(t, newKeeper.ID, *updated.CustodianID)

	changes := f.dispatcher.byType(events.EventVenueCustodianChanged)
	require.Len(t, changes, 1)
	payload, ok := changes[0].Payload.(events.VenueCustodianChangedPayload)
	require.True(t, ok)
	assert.Equal(t, oldKeeper.ID, *payload.OldCustodianID)
	assert.Equal(t, newKeeper.ID, *payload.NewCustodianID)

	// Empty string clears ownership.
	none := ""
	updated, err = f.venues.Update(ctx, venue.ID, VenueUpdateInput{CustodianID: &none})
	require.NoError(t, err)
	assert.Nil(t, updated.CustodianID)
	assert.Len(t, f.dispatcher.byType(events.EventVenueCustodianChanged), 2)
}

func TestUpdateVenueSameCustodianPublishesNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	keeper := f.seedUser(domain.UserTypeCustodian, "keeper@campus.edu")
	venue := f.seedVenue("Main Hall", &keeper.ID)

	_, err := f.venues.Update(ctx, venue.ID, VenueUpdateInput{CustodianID: &keeper.ID})
	require.NoError(t, err)
	assert.Empty(t, f.dispatcher.byType(events.EventVenueCustodianChanged))
}

func TestListVenuesWithFilters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedVenue("Main Hall", nil)
	small := f.seedVenue("Seminar Room", nil)
	small.Capacity = 20
	require.NoError(t, f.venueRepo.Update(ctx, small))

	minCapacity := 100
	venues, err := f.venues.List(ctx, VenueListQuery{MinCapacity: &minCapacity})
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "Main Hall", venues[0].Name)

	search := "seminar"
	venues, err = f.venues.List(ctx, VenueListQuery{NameSearch: &search})
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "Seminar Room", venues[0].Name)
}

func TestDeleteVenueNotFound(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	venue := f.seedVenue("Main Hall", nil)

	require.NoError(t, f.venues.Delete(ctx, venue.ID))
	err := f.venues.Delete(ctx, venue.ID)
	requireCode(t, err, "NOT_FOUND")
}
