package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrybook/backend/internal/models"
)

// CatalogService resolves referenced authors, cuisines and categories by
// name: an existing row with the exact (lowercased) name is reused,
// otherwise a new row owned by the acting user is created. Callers pass the
// transaction handle so a whole resolve-and-persist sequence commits or
// rolls back as one unit. Concurrent creates of the same new name race; the
// unique index on name is the backstop and surfaces as a Conflict upstream.
type CatalogService struct{}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

// ResolveAuthor returns the id of the author named name, creating the row
// if needed. An empty name resolves to nil without touching storage.
func (s *CatalogService) ResolveAuthor(tx *gorm.DB, name string, ownerID uuid.UUID) (*uuid.UUID, error) {
	if name == "" {
		return nil, nil
	}

	var author models.Author
	err := tx.Where("name = ?", name).First(&author).Error
	if err == nil {
		return &author.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	author = models.Author{Name: name, OwnerID: ownerID}
	if err := tx.Create(&author).Error; err != nil {
		return nil, err
	}
	return &author.ID, nil
}

// ResolveCuisine returns the id of the cuisine named name, creating the row
// if needed. An empty name resolves to nil without touching storage.
func (s *CatalogService) ResolveCuisine(tx *gorm.DB, name string, ownerID uuid.UUID) (*uuid.UUID, error) {
	if name == "" {
		return nil, nil
	}

	var cuisine models.Cuisine
	err := tx.Where("name = ?", name).First(&cuisine).Error
	if err == nil {
		return &cuisine.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cuisine = models.Cuisine{Name: name, OwnerID: ownerID}
	if err := tx.Create(&cuisine).Error; err != nil {
		return nil, err
	}
	return &cuisine.ID, nil
}

// ResolveCategories resolves every name in names independently and returns
// the full set of category rows for association with a recipe. An empty
// list resolves to nil.
func (s *CatalogService) ResolveCategories(tx *gorm.DB, names []string, ownerID uuid.UUID) ([]models.Category, error) {
	if len(names) == 0 {
		return nil, nil
	}

	categories := make([]models.Category, 0, len(names))
	for _, name := range names {
		var category models.Category
		err := tx.Where("name = ?", name).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = models.Category{Name: name, OwnerID: ownerID}
			err = tx.Create(&category).Error
		}
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}
