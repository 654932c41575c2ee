package repositories

import (
	"taskhub/internal/models"

	"gorm.io/gorm"
)

// ItemRepository defines the interface for item data access.
type ItemRepository interface {
	Create(db *gorm.DB, item *models.Item) error
	List(db *gorm.DB, offset, limit int) ([]models.Item, error)
	GetByID(db *gorm.DB, id uint) (*models.Item, error)
	Update(db *gorm.DB, item *models.Item, changes map[string]any) error
	Delete(db *gorm.DB, id uint) error
}

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	gormCRUD[models.Item]
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository() *GORMItemRepository {
	return &GORMItemRepository{gormCRUD[models.Item]{entity: "Item"}}
}
