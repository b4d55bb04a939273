package repositories

import (
	"errors"
	"time"

	"github.com/callsoso/callsoso/database"
	"github.com/callsoso/callsoso/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CollaborationRepository handles database operations for collaborations
type CollaborationRepository struct{}

// NewCollaborationRepository creates a new collaboration repository instance
func NewCollaborationRepository() *CollaborationRepository {
	return &CollaborationRepository{}
}

// FindAll retrieves collaborations, most recently planted first
func (r *CollaborationRepository) FindAll() ([]models.Collaboration, error) {
	items := []models.Collaboration{}
	result := database.DB.Order("planted_date DESC").Order("id DESC").Find(&items)
	return items, result.Error
}

// ContributionRepository handles database operations for contributions
type ContributionRepository struct{}

// NewContributionRepository creates a new contribution repository instance
func NewContributionRepository() *ContributionRepository {
	return &ContributionRepository{}
}

// FindAll retrieves contributions, newest first
func (r *ContributionRepository) FindAll() ([]models.Contribution, error) {
	items := []models.Contribution{}
	result := database.DB.Preload("User").Order("date DESC").Order("id DESC").Find(&items)
	return items, result.Error
}

// FoundersRepository handles database operations for the founders list
type FoundersRepository struct{}

// NewFoundersRepository creates a new founders repository instance
func NewFoundersRepository() *FoundersRepository {
	return &FoundersRepository{}
}

// GetOrCreate adds email to the list unless it is already there. It
// reports whether the entry is new.
func (r *FoundersRepository) GetOrCreate(email string) (models.FoundersList, bool, error) {
	var entry models.FoundersList
	err := database.DB.Where("email = ?", email).First(&entry).Error
	if err == nil {
		return entry, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return entry, false, err
	}

	entry = models.FoundersList{Email: email, Joined: datatypes.Date(time.Now())}
	if err := database.DB.Create(&entry).Error; err != nil {
		// Lost a race with a concurrent signup for the same address
		if IsDuplicateKey(err) {
			err = database.DB.Where("email = ?", email).First(&entry).Error
			return entry, false, err
		}
		return entry, false, err
	}
	return entry, true, nil
}
