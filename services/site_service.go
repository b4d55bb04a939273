package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/lib/events"
	"github.com/callsoso/callsoso/lib/mail"
	"github.com/callsoso/callsoso/metrics"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/repositories"
)

var tiers = []dto.Tier{
	{Title: "Creator", Description: "Access to circular community resources.", Price: "Free / $10"},
	{Title: "Business", Description: "Full directory access + features.", Price: "$50"},
	{Title: "Sponsor", Description: "Support the network & gain visibility.", Price: "$100"},
}

// SiteService handles the community pages and the site's forms
type SiteService struct {
	foundersRepo      *repositories.FoundersRepository
	collaborationRepo *repositories.CollaborationRepository
	contributionRepo  *repositories.ContributionRepository
	mailer            mail.Mailer
	events            events.Publisher
	from              string
	contact           string
}

// NewSiteService creates a new site service. Contact messages are sent
// from from to contact.
func NewSiteService(mailer mail.Mailer, publisher events.Publisher, from, contact string) *SiteService {
	return &SiteService{
		foundersRepo:      repositories.NewFoundersRepository(),
		collaborationRepo: repositories.NewCollaborationRepository(),
		contributionRepo:  repositories.NewContributionRepository(),
		mailer:            mailer,
		events:            publisher,
		from:              from,
		contact:           contact,
	}
}

// JoinFounders adds email to the founders list; repeating it is harmless
func (s *SiteService) JoinFounders(ctx context.Context, email string) (*dto.FounderSignupResponse, error) {
	email = strings.TrimSpace(email)
	entry, created, err := s.foundersRepo.GetOrCreate(email)
	if err != nil {
		return nil, err
	}

	if created {
		metrics.FounderSignups.Inc()
		if err := s.events.Publish(ctx, events.SubjectFounderJoined, map[string]interface{}{
			"id":    entry.ID,
			"email": entry.Email,
		}); err != nil {
			slog.Warn("Failed to publish founders event", slog.String("error", err.Error()))
		}
	}
	return &dto.FounderSignupResponse{Email: entry.Email, Created: created}, nil
}

// Contact forwards the contact form to the site's contact address.
// Delivery problems are returned as ErrDeliveryFailed.
func (s *SiteService) Contact(ctx context.Context, req dto.ContactRequest) error {
	msg := mail.Message{
		From:    s.from,
		To:      []string{s.contact},
		Subject: fmt.Sprintf("Contact Inquiry: %s from %s", req.InquiryType, req.Name),
		Body: fmt.Sprintf("From: %s\nEmail: %s\nOrganization: %s\n\nMessage:\n%s",
			req.Name, req.Email, req.Organization, req.Message),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.NotificationFailures.WithLabelValues("contact").Inc()
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}

// Collaborations lists the impact tracker entries
func (s *SiteService) Collaborations() ([]models.Collaboration, error) {
	return s.collaborationRepo.FindAll()
}

// Contributions lists the support page entries
func (s *SiteService) Contributions() ([]models.Contribution, error) {
	return s.contributionRepo.FindAll()
}

// Tiers lists the membership tiers
func (s *SiteService) Tiers() []dto.Tier {
	return tiers
}
