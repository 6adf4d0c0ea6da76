package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID             uuid.UUID       `gorm:"type:varchar(36);primaryKey" json:"recipe_id"`
	Name           string          `gorm:"size:255;not null;index" json:"name"`
	URL            *string         `gorm:"size:255" json:"url"`
	Description    *string         `gorm:"type:text" json:"description"`
	Servings       *string         `gorm:"size:50" json:"servings"`
	NutritionFacts JSONMap         `gorm:"type:json" json:"nutrition_facts"`
	Ingredients    JSONStringArray `gorm:"type:json" json:"ingredients"`
	Direction      JSONMap         `gorm:"type:json" json:"direction"`
	PrepTime       *Duration       `gorm:"type:bigint" json:"prep_time"`
	CookTime       *Duration       `gorm:"type:bigint" json:"cook_time"`
	TotalTime      *Duration       `gorm:"type:bigint" json:"total_time"`
	ImageLink      *string         `gorm:"size:255" json:"image_link"`
	VideoLink      *string         `gorm:"size:255" json:"video_link"`

	AuthorID   *uuid.UUID `gorm:"type:varchar(36);index" json:"-"`
	Author     *Author    `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL" json:"author"`
	CuisineID  *uuid.UUID `gorm:"type:varchar(36);index" json:"-"`
	Cuisine    *Cuisine   `gorm:"foreignKey:CuisineID;constraint:OnDelete:SET NULL" json:"cuisine"`
	Categories []Category `gorm:"many2many:recipe_categories;constraint:OnDelete:CASCADE" json:"categories"`

	OwnerID   uuid.UUID `gorm:"type:varchar(36);not null;index" json:"-"`
	Owner     *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
