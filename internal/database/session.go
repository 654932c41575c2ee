package database

import (
	"context"

	"gorm.io/gorm"
)

// Session is a transaction bound to a single request.
type Session struct {
	// DB is the transaction handle. Repositories receive it as their first argument.
	DB *gorm.DB

	afterCommit []func()
}

// AfterCommit registers fn to run once the transaction has committed. Callbacks are
// dropped when the transaction rolls back.
func (s *Session) AfterCommit(fn func()) {
	s.afterCommit = append(s.afterCommit, fn)
}

// Provider hands out sessions over the process-wide handle.
type Provider struct {
	db *gorm.DB
}

// NewProvider creates a new Provider.
func NewProvider(db *gorm.DB) *Provider {
	return &Provider{db: db}
}

// WithSession runs fn inside a transaction. The transaction commits when fn returns nil
// and rolls back on error or panic; either way the connection goes back to the pool
// before WithSession returns.
func (p *Provider) WithSession(ctx context.Context, fn func(s *Session) error) error {
	s := &Session{}
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s.DB = tx
		return fn(s)
	})
	if err != nil {
		return err
	}

	for _, cb := range s.afterCommit {
		cb()
	}
	return nil
}
