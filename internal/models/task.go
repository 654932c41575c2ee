package models

import "time"

// Task represents a to-do entry.
type Task struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text;not null"`
	Completed   bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskCreate is the request body for a new task. Completed defaults to false.
type TaskCreate struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=1000"`
	Completed   bool   `json:"completed"`
}

// TaskUpdate is a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1,max=1000"`
	Completed   *bool   `json:"completed"`
}

// TaskPublic is the task as returned to callers.
type TaskPublic struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Public returns the externally visible fields of t.
func (t *Task) Public() TaskPublic {
	return TaskPublic{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
	}
}
