package services

import (
	"context"
	"errors"
	"testing"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/lib/events"
	"github.com/callsoso/callsoso/lib/mail"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteService_JoinFounders_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	recorder := &events.Recorder{}
	svc := NewSiteService(&mail.Outbox{}, recorder, "from@example.org", "contact@example.org")

	first, err := svc.JoinFounders(context.Background(), "founder@example.org")
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := svc.JoinFounders(context.Background(), " founder@example.org ")
	require.NoError(t, err)
	assert.False(t, second.Created)

	var count int64
	db.Model(&models.FoundersList{}).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, []string{events.SubjectFounderJoined}, recorder.Subjects())
}

func TestSiteService_Contact(t *testing.T) {
	testutil.NewDB(t)
	outbox := &mail.Outbox{}
	svc := NewSiteService(outbox, events.Nop{}, "from@example.org", "contact@example.org")

	err := svc.Contact(context.Background(), dto.ContactRequest{
		Name:         "Ada",
		Email:        "ada@example.org",
		Organization: "Loops Ltd",
		InquiryType:  "Partnership",
		Message:      "Hello",
	})
	require.NoError(t, err)

	sent := outbox.Messages()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"contact@example.org"}, sent[0].To)
	assert.Equal(t, "Contact Inquiry: Partnership from Ada", sent[0].Subject)
	assert.Contains(t, sent[0].Body, "Organization: Loops Ltd")
}

func TestSiteService_Contact_FailureIsReported(t *testing.T) {
	testutil.NewDB(t)
	outbox := &mail.Outbox{Err: errors.New("connection refused")}
	svc := NewSiteService(outbox, events.Nop{}, "from@example.org", "contact@example.org")

	err := svc.Contact(context.Background(), dto.ContactRequest{Email: "ada@example.org", Message: "Hello"})
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestSiteService_Lists(t *testing.T) {
	db := testutil.NewDB(t)
	user := testutil.CreateUser(t, db, "donor", models.RoleUser)

	collab := models.NewCollaboration()
	collab.Name = "Community garden"
	collab.Description = "Compost loop"
	require.NoError(t, db.Create(collab).Error)

	require.NoError(t, db.Create(&models.Contribution{UserID: &user.ID, Source: models.SourceDonation, Amount: testutil.Ptr(25.0)}).Error)

	svc := NewSiteService(&mail.Outbox{}, events.Nop{}, "", "")

	collabs, err := svc.Collaborations()
	require.NoError(t, err)
	require.Len(t, collabs, 1)
	assert.Equal(t, models.StageSeed, collabs[0].GrowthStage)
	assert.True(t, collabs[0].IsActive)

	contributions, err := svc.Contributions()
	require.NoError(t, err)
	require.Len(t, contributions, 1)
	assert.Equal(t, "donor – donation", contributions[0].String())

	assert.Len(t, svc.Tiers(), 3)
}
