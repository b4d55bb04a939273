package services

import (
	"context"
	"testing"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/lib/events"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingService_CreateSurplus_VisibleToOwnerOnly(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner", models.RoleUser)
	other := testutil.CreateUser(t, db, "other", models.RoleUser)
	recorder := &events.Recorder{}
	svc := NewListingService(recorder)

	listing, err := svc.CreateSurplus(context.Background(), owner.ID, dto.SurplusRequest{
		Company:       "Timberworks",
		Location:      "Leeds",
		MaterialType:  "wood",
		MonthlyVolume: testutil.Ptr(12.5),
		ContactEmail:  "yard@timberworks.example.org",
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, listing.UserID)
	assert.Empty(t, listing.Description)
	assert.False(t, listing.Approved)
	assert.Equal(t, []string{events.SubjectListingCreated}, recorder.Subjects())

	own, err := svc.ListSurplus(owner.ID, dto.SurplusFilter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, 12.5, own[0].MonthlyVolume)

	theirs, err := svc.ListSurplus(other.ID, dto.SurplusFilter{})
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = svc.GetSurplus(other.ID, listing.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListingService_ReplaceDemand(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, "owner", models.RoleUser)
	other := testutil.CreateUser(t, db, "other", models.RoleUser)
	svc := NewListingService(events.Nop{})

	demand := testutil.CreateDemand(t, db, owner, "Makers", models.MaterialFoam)
	require.NoError(t, db.Model(demand).Update("approved", true).Error)

	req := dto.DemandRequest{
		Organisation:   testutil.Ptr("  "),
		Location:       "Cardiff",
		MaterialWanted: "textiles",
		QuantityNeeded: testutil.Ptr(3.0),
		IntendedUse:    testutil.Ptr("Upholstery"),
	}

	_, err := svc.ReplaceDemand(other.ID, demand.ID, req)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.ReplaceDemand(owner.ID, demand.ID, req)
	require.NoError(t, err)
	assert.Nil(t, updated.Organisation)
	assert.Equal(t, models.MaterialTextiles, updated.MaterialWanted)

	reloaded, err := svc.GetDemand(owner.ID, demand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cardiff", reloaded.Location)
	assert.True(t, reloaded.Approved, "approval is not touched by the owner's form")
}

func TestListingService_DirectoryIndex(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, "a", models.RoleUser)
	b := testutil.CreateUser(t, db, "b", models.RoleUser)
	for i := 0; i < 6; i++ {
		testutil.CreateSurplus(t, db, a, "co", models.MaterialMetal)
	}
	testutil.CreateDemand(t, db, b, "", models.MaterialMetal)

	index, err := NewListingService(events.Nop{}).DirectoryIndex()
	require.NoError(t, err)
	assert.Equal(t, int64(6), index.SurplusCount)
	assert.Equal(t, int64(1), index.DemandCount)
	assert.Len(t, index.LatestSurpluses, 5)
	assert.Len(t, index.LatestDemands, 1)
}
