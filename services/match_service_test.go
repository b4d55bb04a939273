package services

import (
	"context"
	"errors"
	"testing"

	"github.com/callsoso/callsoso/lib/events"
	"github.com/callsoso/callsoso/lib/mail"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type matchFixture struct {
	db      *gorm.DB
	staff   *models.User
	owner   *models.User
	seeker  *models.User
	surplus *models.SurplusListing
	demand  *models.DemandListing
	outbox  *mail.Outbox
	events  *events.Recorder
	service *MatchService
}

func newMatchFixture(t *testing.T) *matchFixture {
	db := testutil.NewDB(t)
	f := &matchFixture{
		db:     db,
		staff:  testutil.CreateUser(t, db, "staff", models.RoleAdmin),
		owner:  testutil.CreateUser(t, db, "owner", models.RoleUser),
		seeker: testutil.CreateUser(t, db, "seeker", models.RoleUser),
		outbox: &mail.Outbox{},
		events: &events.Recorder{},
	}
	f.surplus = testutil.CreateSurplus(t, db, f.owner, "timberworks", models.MaterialWood)
	f.demand = testutil.CreateDemand(t, db, f.seeker, "", models.MaterialWood)
	f.service = NewMatchService(f.outbox, f.events, "noreply@example.org")
	return f
}

func TestMatchService_SuggestMatch(t *testing.T) {
	f := newMatchFixture(t)

	match, err := f.service.SuggestMatch(context.Background(), f.staff.ID, f.surplus.ID, f.demand.ID, testutil.Ptr("  good fit "))
	require.NoError(t, err)
	require.NotNil(t, match.SuggestedByID)
	assert.Equal(t, f.staff.ID, *match.SuggestedByID)
	assert.Equal(t, "good fit", *match.Notes)

	sent := f.outbox.Messages()
	require.Len(t, sent, 2)
	assert.Equal(t, []string{f.surplus.ContactEmail}, sent[0].To)
	assert.Equal(t, []string{f.seeker.Email}, sent[1].To)
	for _, msg := range sent {
		assert.Equal(t, MatchSubject, msg.Subject)
		assert.Equal(t, "A match has been suggested between surplus from timberworks and demand from Requester.", msg.Body)
	}

	assert.Equal(t, []string{events.SubjectMatchSuggested}, f.events.Subjects())
}

func TestMatchService_SuggestMatch_Twice(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()

	_, err := f.service.SuggestMatch(ctx, f.staff.ID, f.surplus.ID, f.demand.ID, nil)
	require.NoError(t, err)

	_, err = f.service.SuggestMatch(ctx, f.staff.ID, f.surplus.ID, f.demand.ID, nil)
	assert.ErrorIs(t, err, ErrDuplicateMatch)

	var count int64
	f.db.Model(&models.Match{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMatchService_SuggestMatch_UniqueIndex(t *testing.T) {
	f := newMatchFixture(t)

	require.NoError(t, f.db.Create(&models.Match{SurplusID: f.surplus.ID, DemandID: f.demand.ID}).Error)
	err := f.db.Create(&models.Match{SurplusID: f.surplus.ID, DemandID: f.demand.ID}).Error
	assert.Error(t, err, "the database rejects a second row for the same pair")
}

func TestMatchService_SuggestMatch_MissingListing(t *testing.T) {
	f := newMatchFixture(t)

	_, err := f.service.SuggestMatch(context.Background(), f.staff.ID, f.surplus.ID, 9999, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	f.db.Model(&models.Match{}).Count(&count)
	assert.Zero(t, count)
	assert.Empty(t, f.outbox.Messages())
}

func TestMatchService_SuggestMatch_MailFailureIsSwallowed(t *testing.T) {
	f := newMatchFixture(t)
	f.outbox.Err = errors.New("smtp unavailable")

	match, err := f.service.SuggestMatch(context.Background(), f.staff.ID, f.surplus.ID, f.demand.ID, nil)
	require.NoError(t, err)
	assert.NotZero(t, match.ID)
}

func TestMatchService_ListMatches(t *testing.T) {
	f := newMatchFixture(t)
	ctx := context.Background()
	stranger := testutil.CreateUser(t, f.db, "stranger", models.RoleUser)

	_, err := f.service.SuggestMatch(ctx, f.staff.ID, f.surplus.ID, f.demand.ID, nil)
	require.NoError(t, err)

	for _, tt := range []struct {
		name    string
		user    *models.User
		isStaff bool
		want    int
	}{
		{"staff see everything", f.staff, true, 1},
		{"surplus owner", f.owner, false, 1},
		{"demand owner", f.seeker, false, 1},
		{"unrelated user", stranger, false, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := f.service.ListMatches(tt.user.ID, tt.isStaff)
			require.NoError(t, err)
			assert.Len(t, matches, tt.want)
			for _, m := range matches {
				assert.NotNil(t, m.Surplus)
				assert.NotNil(t, m.Demand)
			}
		})
	}
}
