package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Author, Cuisine and Category share the same shape: a globally unique
// lowercase name stamped with the user that first created it. Name
// uniqueness spans all owners, not just the creating one.

type Author struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"author_id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Bio       *string   `gorm:"type:text" json:"bio"`
	OwnerID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Owner     *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (a *Author) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Cuisine struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"cuisine_id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	OwnerID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Owner     *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (c *Cuisine) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"category_id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	OwnerID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Owner     *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
