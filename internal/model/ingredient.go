package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a pantry item. Upserts are keyed on Name, so at most one
// record exists per distinct name.
type Ingredient struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Name               string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Quantity           int       `gorm:"not null;default:0" json:"quantity"`
	IsVegetableOrFruit bool      `gorm:"not null;default:false" json:"is_vegetable_or_fruit"`
	ItemAdded          time.Time `json:"itemAdded"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.ItemAdded.IsZero() {
		i.ItemAdded = time.Now()
	}
	return nil
}
