package repositories

import (
	"taskhub/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	List(db *gorm.DB, offset, limit int) ([]models.User, error)
	GetByID(db *gorm.DB, id uint) (*models.User, error)
	GetByUsername(db *gorm.DB, username string) (*models.User, error)
	// ExistsByUsername and ExistsByEmail ignore the record with excludeID, so an update
	// does not conflict with the row being updated. Pass 0 to check every row.
	ExistsByUsername(db *gorm.DB, username string, excludeID uint) (bool, error)
	ExistsByEmail(db *gorm.DB, email string, excludeID uint) (bool, error)
	Update(db *gorm.DB, user *models.User, changes map[string]any) error
	Delete(db *gorm.DB, id uint) error
}
