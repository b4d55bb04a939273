package services

import (
	"context"
	"log/slog"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/lib/events"
	"github.com/callsoso/callsoso/metrics"
	"github.com/callsoso/callsoso/models"
	"github.com/callsoso/callsoso/repositories"
)

// ListingService handles the surplus and demand directory
type ListingService struct {
	surplusRepo *repositories.SurplusRepository
	demandRepo  *repositories.DemandRepository
	events      events.Publisher
}

// NewListingService creates a new listing service instance
func NewListingService(publisher events.Publisher) *ListingService {
	return &ListingService{
		surplusRepo: repositories.NewSurplusRepository(),
		demandRepo:  repositories.NewDemandRepository(),
		events:      publisher,
	}
}

// listingEvent is the payload of listing.created
type listingEvent struct {
	Kind     string `json:"kind"`
	ID       uint   `json:"id"`
	UserID   uint   `json:"userId"`
	Material string `json:"material"`
	Location string `json:"location"`
}

// ListSurplus returns the caller's own surplus listings matching filter
func (s *ListingService) ListSurplus(userID uint, filter dto.SurplusFilter) ([]models.SurplusListing, error) {
	return s.surplusRepo.FindByOwner(userID, filter)
}

// GetSurplus returns one of the caller's surplus listings
func (s *ListingService) GetSurplus(userID, id uint) (*models.SurplusListing, error) {
	listing, err := s.surplusRepo.FindOwned(id, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return &listing, nil
}

// CreateSurplus stores a new surplus listing owned by the caller
func (s *ListingService) CreateSurplus(ctx context.Context, userID uint, req dto.SurplusRequest) (*models.SurplusListing, error) {
	listing := models.SurplusListing{UserID: userID}
	req.Apply(&listing)
	if err := s.surplusRepo.Create(&listing); err != nil {
		return nil, err
	}

	metrics.ListingsCreated.WithLabelValues("surplus").Inc()
	s.publish(ctx, listingEvent{
		Kind:     "surplus",
		ID:       listing.ID,
		UserID:   userID,
		Material: string(listing.MaterialType),
		Location: listing.Location,
	})
	return &listing, nil
}

// ReplaceSurplus overwrites one of the caller's surplus listings
func (s *ListingService) ReplaceSurplus(userID, id uint, req dto.SurplusRequest) (*models.SurplusListing, error) {
	listing, err := s.surplusRepo.FindOwned(id, userID)
	if err != nil {
		return nil, notFound(err)
	}
	req.Apply(&listing)
	if err := s.surplusRepo.Update(&listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListDemand returns the caller's own demand listings matching filter
func (s *ListingService) ListDemand(userID uint, filter dto.DemandFilter) ([]models.DemandListing, error) {
	return s.demandRepo.FindByOwner(userID, filter)
}

// GetDemand returns one of the caller's demand listings
func (s *ListingService) GetDemand(userID, id uint) (*models.DemandListing, error) {
	listing, err := s.demandRepo.FindOwned(id, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return &listing, nil
}

// CreateDemand stores a new demand listing owned by the caller
func (s *ListingService) CreateDemand(ctx context.Context, userID uint, req dto.DemandRequest) (*models.DemandListing, error) {
	listing := models.DemandListing{UserID: userID}
	req.Apply(&listing)
	if err := s.demandRepo.Create(&listing); err != nil {
		return nil, err
	}

	metrics.ListingsCreated.WithLabelValues("demand").Inc()
	s.publish(ctx, listingEvent{
		Kind:     "demand",
		ID:       listing.ID,
		UserID:   userID,
		Material: string(listing.MaterialWanted),
		Location: listing.Location,
	})
	return &listing, nil
}

// ReplaceDemand overwrites one of the caller's demand listings
func (s *ListingService) ReplaceDemand(userID, id uint, req dto.DemandRequest) (*models.DemandListing, error) {
	listing, err := s.demandRepo.FindOwned(id, userID)
	if err != nil {
		return nil, notFound(err)
	}
	req.Apply(&listing)
	if err := s.demandRepo.Update(&listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// DirectoryIndex returns the directory totals and the latest listings
func (s *ListingService) DirectoryIndex() (*dto.DirectoryIndex, error) {
	var (
		index dto.DirectoryIndex
		err   error
	)
	if index.SurplusCount, err = s.surplusRepo.Count(); err != nil {
		return nil, err
	}
	if index.DemandCount, err = s.demandRepo.Count(); err != nil {
		return nil, err
	}
	if index.LatestSurpluses, err = s.surplusRepo.Latest(5); err != nil {
		return nil, err
	}
	if index.LatestDemands, err = s.demandRepo.Latest(5); err != nil {
		return nil, err
	}
	return &index, nil
}

// SetSurplusApproval approves or unapproves surplus listings
func (s *ListingService) SetSurplusApproval(ids []uint, approved bool) (int64, error) {
	return s.surplusRepo.SetApproved(ids, approved)
}

// SetDemandApproval approves or unapproves demand listings
func (s *ListingService) SetDemandApproval(ids []uint, approved bool) (int64, error) {
	return s.demandRepo.SetApproved(ids, approved)
}

func (s *ListingService) publish(ctx context.Context, payload listingEvent) {
	if err := s.events.Publish(ctx, events.SubjectListingCreated, payload); err != nil {
		slog.Warn("Failed to publish listing event",
			slog.String("kind", payload.Kind),
			slog.Uint64("id", uint64(payload.ID)),
			slog.String("error", err.Error()))
	}
}

// notFound maps a missing record to ErrNotFound and passes other errors through
func notFound(err error) error {
	if repositories.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}
