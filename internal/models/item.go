package models

import "time"

// Item is something for sale. OwnerID is a plain optional reference to a user; no
// foreign key is declared, so it may point at a user that no longer exists.
type Item struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"index;type:varchar(255);not null"`
	Description *string `gorm:"type:text"`
	Price       float64 `gorm:"not null"`
	OwnerID     *uint   `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ItemCreate struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
	OwnerID     *uint    `json:"owner_id"`
}

// ItemUpdate is a partial update. Description and OwnerID are nullable, so an explicit
// null clears them.
type ItemUpdate struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description Optional[string] `json:"description" validate:"omitempty,max=2000"`
	Price       *float64         `json:"price" validate:"omitempty,gt=0"`
	OwnerID     Optional[uint]   `json:"owner_id"`
}

type ItemPublic struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	OwnerID     *uint   `json:"owner_id"`
}

func (i *Item) Public() ItemPublic {
	return ItemPublic{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
		OwnerID:     i.OwnerID,
	}
}
