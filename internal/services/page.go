package services

import (
	"fmt"

	"taskhub/internal/errs"
)

const (
	DefaultLimit = 100
	MaxLimit     = 100
)

// Page selects a window of a listing.
type Page struct {
	Offset int
	Limit  int
}

// DefaultPage is the first DefaultLimit records.
func DefaultPage() Page {
	return Page{Offset: 0, Limit: DefaultLimit}
}

// Validate rejects a negative offset or a limit outside [0, MaxLimit]. Limits are never
// clamped.
func (p Page) Validate() error {
	if p.Offset < 0 {
		return errs.FieldValidation("offset", "must be greater than or equal to 0")
	}
	if p.Limit < 0 {
		return errs.FieldValidation("limit", "must be greater than or equal to 0")
	}
	if p.Limit > MaxLimit {
		return errs.FieldValidation("limit", fmt.Sprintf("must be less than or equal to %d", MaxLimit))
	}
	return nil
}
