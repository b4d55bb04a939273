package repositories

import (
	"github.com/callsoso/callsoso/database"
	"github.com/callsoso/callsoso/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new user repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByID retrieves a user by its ID
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	result := database.DB.First(&user, id)
	return user, result.Error
}

// FindByUsername retrieves a user by username
func (r *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	result := database.DB.Where("username = ?", username).First(&user)
	return user, result.Error
}

// UsernameTaken reports whether a user already has the username, ignoring case
func (r *UserRepository) UsernameTaken(username string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.User{}).Where("LOWER(username) = LOWER(?)", username).Count(&count).Error
	return count > 0, err
}

// EmailTaken reports whether a user already registered the email
func (r *UserRepository) EmailTaken(email string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	return count > 0, err
}

// Create inserts a new user into the database
func (r *UserRepository) Create(user *models.User) error {
	return database.DB.Create(user).Error
}

// Delete removes a user together with the listings and matches they own.
// Optional references to the user are cleared.
func (r *UserRepository) Delete(id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		surplusIDs := tx.Model(&models.SurplusListing{}).Select("id").Where("user_id = ?", id)
		demandIDs := tx.Model(&models.DemandListing{}).Select("id").Where("user_id = ?", id)

		if err := tx.Where("surplus_id IN (?) OR demand_id IN (?)", surplusIDs, demandIDs).
			Delete(&models.Match{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.SurplusListing{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.DemandListing{}).Error; err != nil {
			return err
		}

		nullify := []struct {
			model  interface{}
			column string
		}{
			{&models.Match{}, "suggested_by_id"},
			{&models.Article{}, "author_id"},
			{&models.Collaboration{}, "user_id"},
			{&models.Contribution{}, "user_id"},
		}
		for _, n := range nullify {
			if err := tx.Model(n.model).Where(n.column+" = ?", id).
				UpdateColumn(n.column, gorm.Expr("NULL")).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
