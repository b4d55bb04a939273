package repositories

import (
	"github.com/callsoso/callsoso/database"
	"github.com/callsoso/callsoso/models"
	"gorm.io/gorm"
)

// MatchRepository handles database operations for matches
type MatchRepository struct{}

// NewMatchRepository creates a new match repository instance
func NewMatchRepository() *MatchRepository {
	return &MatchRepository{}
}

// Exists reports whether the surplus and demand listings are already matched
func (r *MatchRepository) Exists(surplusID, demandID uint) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Match{}).
		Where("surplus_id = ? AND demand_id = ?", surplusID, demandID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a new match
func (r *MatchRepository) Create(match *models.Match) error {
	return database.DB.Omit("Surplus", "Demand", "SuggestedBy").Create(match).Error
}

// FindAll retrieves every match, newest first
func (r *MatchRepository) FindAll() ([]models.Match, error) {
	matches := []models.Match{}
	result := preloadMatch(database.DB).Order("created_on DESC").Order("id DESC").Find(&matches)
	return matches, result.Error
}

// FindForUser retrieves the matches involving a listing owned by userID
func (r *MatchRepository) FindForUser(userID uint) ([]models.Match, error) {
	surplusIDs := database.DB.Model(&models.SurplusListing{}).Select("id").Where("user_id = ?", userID)
	demandIDs := database.DB.Model(&models.DemandListing{}).Select("id").Where("user_id = ?", userID)

	matches := []models.Match{}
	result := preloadMatch(database.DB).
		Where("surplus_id IN (?) OR demand_id IN (?)", surplusIDs, demandIDs).
		Order("created_on DESC").Order("id DESC").
		Find(&matches)
	return matches, result.Error
}

func preloadMatch(db *gorm.DB) *gorm.DB {
	return db.Preload("Surplus").Preload("Demand").Preload("SuggestedBy")
}
