package repositories

import (
	"taskhub/internal/models"

	"gorm.io/gorm"
)

// TaskRepository defines the interface for task data access.
type TaskRepository interface {
	Create(db *gorm.DB, task *models.Task) error
	List(db *gorm.DB, offset, limit int) ([]models.Task, error)
	GetByID(db *gorm.DB, id uint) (*models.Task, error)
	Update(db *gorm.DB, task *models.Task, changes map[string]any) error
	Delete(db *gorm.DB, id uint) error
}

// GORMTaskRepository is a GORM implementation of TaskRepository.
type GORMTaskRepository struct {
	gormCRUD[models.Task]
}

// NewGORMTaskRepository creates a new GORMTaskRepository.
func NewGORMTaskRepository() *GORMTaskRepository {
	return &GORMTaskRepository{gormCRUD[models.Task]{entity: "Task"}}
}
