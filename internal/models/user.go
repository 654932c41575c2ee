package models

import "time"

// User represents an account. HashedPassword never leaves the service layer.
type User struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	Username       string    `gorm:"uniqueIndex;type:varchar(100);not null"`
	Email          string    `gorm:"uniqueIndex;type:varchar(255);not null"`
	IsActive       bool      `gorm:"not null"`
	HashedPassword string    `gorm:"type:varchar(255);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UserCreate is the request body for creating a user. Password is plaintext and is
// hashed before it reaches the store.
type UserCreate struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	IsActive *bool  `json:"is_active"`
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	IsActive *bool   `json:"is_active"`
}

// UserPublic is the user as returned to callers.
type UserPublic struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// Public strips the password hash.
func (u *User) Public() UserPublic {
	return UserPublic{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsActive: u.IsActive,
	}
}
