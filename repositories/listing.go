package repositories

import (
	"strings"

	"github.com/callsoso/callsoso/database"
	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/models"
)

// SurplusRepository handles database operations for surplus listings
type SurplusRepository struct{}

// NewSurplusRepository creates a new surplus repository instance
func NewSurplusRepository() *SurplusRepository {
	return &SurplusRepository{}
}

// FindByOwner returns the owner's listings matching filter, newest first
func (r *SurplusRepository) FindByOwner(userID uint, filter dto.SurplusFilter) ([]models.SurplusListing, error) {
	query := database.DB.Where("user_id = ?", userID)

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := ContainsPattern(q)
		query = query.Where("("+LikeClause("company")+" OR "+LikeClause("material_type")+")", like, like)
	}
	if material := models.MaterialType(filter.MaterialType); material.Valid() {
		query = query.Where("material_type = ?", material)
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		query = query.Where(LikeClause("location"), ContainsPattern(loc))
	}

	listings := []models.SurplusListing{}
	result := query.Order("created_on DESC").Order("id DESC").Find(&listings)
	return listings, result.Error
}

// FindByID retrieves a listing by its ID
func (r *SurplusRepository) FindByID(id uint) (models.SurplusListing, error) {
	var listing models.SurplusListing
	result := database.DB.First(&listing, id)
	return listing, result.Error
}

// FindOwned retrieves a listing only when userID owns it
func (r *SurplusRepository) FindOwned(id, userID uint) (models.SurplusListing, error) {
	var listing models.SurplusListing
	result := database.DB.Where("user_id = ?", userID).First(&listing, id)
	return listing, result.Error
}

// Create inserts a new listing
func (r *SurplusRepository) Create(listing *models.SurplusListing) error {
	return database.DB.Create(listing).Error
}

// Update saves every column of the listing
func (r *SurplusRepository) Update(listing *models.SurplusListing) error {
	return database.DB.Omit("User", "Matches").Save(listing).Error
}

// Count returns the number of surplus listings of all users
func (r *SurplusRepository) Count() (int64, error) {
	var count int64
	err := database.DB.Model(&models.SurplusListing{}).Count(&count).Error
	return count, err
}

// Latest returns the n most recent listings of all users
func (r *SurplusRepository) Latest(n int) ([]models.SurplusListing, error) {
	listings := []models.SurplusListing{}
	result := database.DB.Order("created_on DESC").Order("id DESC").Limit(n).Find(&listings)
	return listings, result.Error
}

// SetApproved flips the approval flag of the listings with the given IDs
func (r *SurplusRepository) SetApproved(ids []uint, approved bool) (int64, error) {
	result := database.DB.Model(&models.SurplusListing{}).Where("id IN ?", ids).Update("approved", approved)
	return result.RowsAffected, result.Error
}

// DemandRepository handles database operations for demand listings
type DemandRepository struct{}

// NewDemandRepository creates a new demand repository instance
func NewDemandRepository() *DemandRepository {
	return &DemandRepository{}
}

// FindByOwner returns the owner's listings matching filter, newest first.
// Free text searches the organisation and the wanted material.
func (r *DemandRepository) FindByOwner(userID uint, filter dto.DemandFilter) ([]models.DemandListing, error) {
	query := database.DB.Where("user_id = ?", userID)

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := ContainsPattern(q)
		query = query.Where("("+LikeClause("organisation")+" OR "+LikeClause("material_wanted")+")", like, like)
	}
	if material := models.MaterialType(filter.MaterialWanted); material.Valid() {
		query = query.Where("material_wanted = ?", material)
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		query = query.Where(LikeClause("location"), ContainsPattern(loc))
	}

	listings := []models.DemandListing{}
	result := query.Order("created_on DESC").Order("id DESC").Find(&listings)
	return listings, result.Error
}

// FindByID retrieves a listing by its ID together with its owner
func (r *DemandRepository) FindByID(id uint) (models.DemandListing, error) {
	var listing models.DemandListing
	result := database.DB.Preload("User").First(&listing, id)
	return listing, result.Error
}

// FindOwned retrieves a listing only when userID owns it
func (r *DemandRepository) FindOwned(id, userID uint) (models.DemandListing, error) {
	var listing models.DemandListing
	result := database.DB.Where("user_id = ?", userID).First(&listing, id)
	return listing, result.Error
}

// Create inserts a new listing
func (r *DemandRepository) Create(listing *models.DemandListing) error {
	return database.DB.Create(listing).Error
}

// Update saves every column of the listing
func (r *DemandRepository) Update(listing *models.DemandListing) error {
	return database.DB.Omit("User", "Matches").Save(listing).Error
}

// Count returns the number of demand listings of all users
func (r *DemandRepository) Count() (int64, error) {
	var count int64
	err := database.DB.Model(&models.DemandListing{}).Count(&count).Error
	return count, err
}

// Latest returns the n most recent listings of all users
func (r *DemandRepository) Latest(n int) ([]models.DemandListing, error) {
	listings := []models.DemandListing{}
	result := database.DB.Order("created_on DESC").Order("id DESC").Limit(n).Find(&listings)
	return listings, result.Error
}

// SetApproved flips the approval flag of the listings with the given IDs
func (r *DemandRepository) SetApproved(ids []uint, approved bool) (int64, error) {
	result := database.DB.Model(&models.DemandListing{}).Where("id IN ?", ids).Update("approved", approved)
	return result.RowsAffected, result.Error
}

var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

// LikeClause is a case-insensitive substring test on column that behaves
// the same on PostgreSQL, MySQL and SQLite. Bind it to ContainsPattern.
func LikeClause(column string) string {
	return "LOWER(" + column + ") LIKE LOWER(?) ESCAPE '!'"
}

// ContainsPattern builds a LIKE pattern matching s anywhere, with the
// wildcards in s escaped
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
