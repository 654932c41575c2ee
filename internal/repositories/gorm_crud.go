package repositories

import (
	"strings"

	"taskhub/internal/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// pgUniqueViolation is the SQLSTATE PostgreSQL reports for a unique constraint.
const pgUniqueViolation = "23505"

// gormCRUD implements the operations every entity shares. The db argument is the
// request's transaction; the repository itself holds no connection.
type gormCRUD[T any] struct {
	entity string
}

func (r gormCRUD[T]) Create(db *gorm.DB, rec *T) error {
	if err := db.Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict(r.entity + " already exists")
		}
		return errors.Wrapf(err, "failed to create %s", r.entity)
	}
	return nil
}

// List returns up to limit records after skipping offset, in insertion (id) order.
func (r gormCRUD[T]) List(db *gorm.DB, offset, limit int) ([]T, error) {
	recs := []T{}
	if limit == 0 {
		return recs, nil
	}
	if err := db.Order("id ASC").Offset(offset).Limit(limit).Find(&recs).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to list %s records", r.entity)
	}
	return recs, nil
}

func (r gormCRUD[T]) GetByID(db *gorm.DB, id uint) (*T, error) {
	var rec T
	if err := db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound(r.entity)
		}
		return nil, errors.Wrapf(err, "failed to get %s %d", r.entity, id)
	}
	return &rec, nil
}

// Update writes only the given columns, then reloads rec so it reflects the stored row.
func (r gormCRUD[T]) Update(db *gorm.DB, rec *T, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	if err := db.Model(rec).Updates(changes).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.Conflict(r.entity + " already exists")
		}
		return errors.Wrapf(err, "failed to update %s", r.entity)
	}
	if err := db.First(rec).Error; err != nil {
		return errors.Wrapf(err, "failed to reload %s", r.entity)
	}
	return nil
}

func (r gormCRUD[T]) Delete(db *gorm.DB, id uint) error {
	var rec T
	res := db.Delete(&rec, id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "failed to delete %s %d", r.entity, id)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound(r.entity)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// SQLite builds without error translation only expose the message.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
