package services_test

import (
	"taskhub/internal/models"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(db *gorm.DB, user *models.User) error {
	args := m.Called(user)
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) List(db *gorm.DB, offset, limit int) ([]models.User, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(db *gorm.DB, id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(db *gorm.DB, username string, excludeID uint) (bool, error) {
	args := m.Called(username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(db *gorm.DB, email string, excludeID uint) (bool, error) {
	args := m.Called(email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(db *gorm.DB, user *models.User, changes map[string]any) error {
	args := m.Called(user, changes)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(db *gorm.DB, id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of repositories.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(db *gorm.DB, item *models.Item) error {
	args := m.Called(item)
	if args.Error(0) == nil && item.ID == 0 {
		item.ID = 1
	}
	return args.Error(0)
}

func (m *MockItemRepository) List(db *gorm.DB, offset, limit int) ([]models.Item, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(db *gorm.DB, id uint) (*models.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Update(db *gorm.DB, item *models.Item, changes map[string]any) error {
	args := m.Called(item, changes)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(db *gorm.DB, id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}
