package repositories

import (
	"taskhub/internal/errs"
	"taskhub/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	gormCRUD[models.User]
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository() *GORMUserRepository {
	return &GORMUserRepository{gormCRUD[models.User]{entity: "User"}}
}

// GetByUsername retrieves a user by their username.
func (r *GORMUserRepository) GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("User")
		}
		return nil, errors.Wrapf(err, "failed to get user by username %s", username)
	}
	return &user, nil
}

func (r *GORMUserRepository) ExistsByUsername(db *gorm.DB, username string, excludeID uint) (bool, error) {
	return r.exists(db, "username", username, excludeID)
}

func (r *GORMUserRepository) ExistsByEmail(db *gorm.DB, email string, excludeID uint) (bool, error) {
	return r.exists(db, "email", email, excludeID)
}

func (r *GORMUserRepository) exists(db *gorm.DB, column, value string, excludeID uint) (bool, error) {
	var n int64
	q := db.Model(&models.User{}).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, errors.Wrapf(err, "failed to check user %s", column)
	}
	return n > 0, nil
}
