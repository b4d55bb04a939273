package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/callsoso/callsoso/lib/events"
	"github.com/callsoso/callsoso/lib/mail"
	"github.com/callsoso/callsoso/metrics"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/repositories"
)

// MatchSubject is the subject of the match notification email.
const MatchSubject = "Call Soso: Potential Match Found!"

// MatchService pairs surplus with demand and notifies both sides
type MatchService struct {
	surplusRepo *repositories.SurplusRepository
	demandRepo  *repositories.DemandRepository
	matchRepo   *repositories.MatchRepository
	mailer      mail.Mailer
	events      events.Publisher
	from        string
}

// NewMatchService creates a new match service instance
func NewMatchService(mailer mail.Mailer, publisher events.Publisher, from string) *MatchService {
	return &MatchService{
		surplusRepo: repositories.NewSurplusRepository(),
		demandRepo:  repositories.NewDemandRepository(),
		matchRepo:   repositories.NewMatchRepository(),
		mailer:      mailer,
		events:      publisher,
		from:        from,
	}
}

// matchEvent is the payload of match.suggested
type matchEvent struct {
	MatchID       uint  `json:"matchId"`
	SurplusID     uint  `json:"surplusId"`
	DemandID      uint  `json:"demandId"`
	SuggestedByID *uint `json:"suggestedById"`
}

// SuggestMatch records a match between two listings and emails the
// surplus contact and the demand owner. Notification failures are logged
// and do not fail the match.
func (s *MatchService) SuggestMatch(ctx context.Context, suggesterID, surplusID, demandID uint, notes *string) (*models.Match, error) {
	surplus, err := s.surplusRepo.FindByID(surplusID)
	if err != nil {
		return nil, fmt.Errorf("surplus listing %d: %w", surplusID, notFound(err))
	}
	demand, err := s.demandRepo.FindByID(demandID)
	if err != nil {
		return nil, fmt.Errorf("demand listing %d: %w", demandID, notFound(err))
	}

	exists, err := s.matchRepo.Exists(surplusID, demandID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateMatch
	}

	match := models.Match{
		SurplusID:     surplus.ID,
		DemandID:      demand.ID,
		SuggestedByID: &suggesterID,
		Notes:         blankToNil(notes),
	}
	if err := s.matchRepo.Create(&match); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, ErrDuplicateMatch
		}
		return nil, err
	}
	match.Surplus = &surplus
	match.Demand = &demand
	metrics.MatchesSuggested.Inc()

	s.notify(ctx, surplus, demand)

	if err := s.events.Publish(ctx, events.SubjectMatchSuggested, matchEvent{
		MatchID:       match.ID,
		SurplusID:     match.SurplusID,
		DemandID:      match.DemandID,
		SuggestedByID: match.SuggestedByID,
	}); err != nil {
		slog.Warn("Failed to publish match event", slog.Uint64("matchId", uint64(match.ID)), slog.String("error", err.Error()))
	}

	return &match, nil
}

func (s *MatchService) notify(ctx context.Context, surplus models.SurplusListing, demand models.DemandListing) {
	body := fmt.Sprintf("A match has been suggested between surplus from %s and demand from %s.",
		surplus.Company, demand.OrganisationName("Requester"))

	recipients := []string{surplus.ContactEmail}
	if demand.User != nil {
		recipients = append(recipients, demand.User.Email)
	}

	for _, to := range recipients {
		if to == "" {
			continue
		}
		err := s.mailer.Send(ctx, mail.Message{
			From:    s.from,
			To:      []string{to},
			Subject: MatchSubject,
			Body:    body,
		})
		if err != nil {
			metrics.NotificationFailures.WithLabelValues("match").Inc()
			slog.Warn("Failed to send match notification",
				slog.String("to", to),
				slog.Uint64("surplusId", uint64(surplus.ID)),
				slog.Uint64("demandId", uint64(demand.ID)),
				slog.String("error", err.Error()))
		}
	}
}

// ListMatches returns every match to staff, and to everyone else the
// matches involving one of their listings
func (s *MatchService) ListMatches(userID uint, isStaff bool) ([]models.Match, error) {
	if isStaff {
		return s.matchRepo.FindAll()
	}
	return s.matchRepo.FindForUser(userID)
}
