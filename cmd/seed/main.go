package main

import (
	"log"

	"gorm.io/gorm"

	"github.com/pantrybook/backend/config"
	"github.com/pantrybook/backend/internal/database"
	"github.com/pantrybook/backend/internal/models"
	"github.com/pantrybook/backend/internal/service"
)

type seedRecipe struct {
	name        string
	description string
	servings    string
	cuisine     string
	author      string
	categories  []string
	ingredients []string
	direction   map[string]interface{}
}

var seedRecipes = []seedRecipe{
	{
		name:        "classic pancakes",
		description: "Fluffy weekend pancakes",
		servings:    "4",
		cuisine:     "american",
		author:      "jane doe",
		categories:  []string{"breakfast", "sweet"},
		ingredients: []string{"2 eggs", "200g flour", "300ml milk", "1 tbsp sugar"},
		direction:   map[string]interface{}{"1": "whisk the wet ingredients", "2": "fold in the flour", "3": "fry on a hot pan"},
	},
	{
		name:        "spaghetti carbonara",
		description: "Roman pasta with egg and guanciale",
		servings:    "2",
		cuisine:     "italian",
		author:      "marco rossi",
		categories:  []string{"dinner", "pasta"},
		ingredients: []string{"200g spaghetti", "100g guanciale", "2 egg yolks", "50g pecorino"},
		direction:   map[string]interface{}{"1": "boil the pasta", "2": "render the guanciale", "3": "toss off heat with yolks and cheese"},
	},
	{
		name:        "green curry",
		description: "Fragrant Thai curry with vegetables",
		servings:    "4",
		cuisine:     "thai",
		author:      "jane doe",
		categories:  []string{"dinner", "spicy"},
		ingredients: []string{"2 tbsp green curry paste", "400ml coconut milk", "mixed vegetables", "fresh basil"},
		direction:   map[string]interface{}{"1": "fry the paste", "2": "add coconut milk", "3": "simmer with vegetables"},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	catalogService := service.NewCatalogService()

	owner, err := authService.Register("seed@pantrybook.dev", "seedpassword")
	if err != nil {
		// already seeded, reuse the existing account
		var existing models.User
		if findErr := db.First(&existing, "email = ?", "seed@pantrybook.dev").Error; findErr != nil {
			log.Fatalf("Failed to create seed user: %v", err)
		}
		owner = &existing
	}

	for _, seed := range seedRecipes {
		var existing models.Recipe
		if err := db.First(&existing, "name = ?", seed.name).Error; err == nil {
			log.Printf("Skipping %q, already present", seed.name)
			continue
		}

		seed := seed
		err := db.Transaction(func(tx *gorm.DB) error {
			authorID, err := catalogService.ResolveAuthor(tx, seed.author, owner.ID)
			if err != nil {
				return err
			}
			cuisineID, err := catalogService.ResolveCuisine(tx, seed.cuisine, owner.ID)
			if err != nil {
				return err
			}
			categories, err := catalogService.ResolveCategories(tx, seed.categories, owner.ID)
			if err != nil {
				return err
			}

			recipe := models.Recipe{
				Name:        seed.name,
				Description: &seed.description,
				Servings:    &seed.servings,
				Ingredients: models.JSONStringArray(seed.ingredients),
				Direction:   models.JSONMap(seed.direction),
				AuthorID:    authorID,
				CuisineID:   cuisineID,
				Categories:  categories,
				OwnerID:     owner.ID,
			}
			return tx.Create(&recipe).Error
		})
		if err != nil {
			log.Fatalf("Failed to seed %q: %v", seed.name, err)
		}
		log.Printf("Seeded %q", seed.name)
	}

	log.Println("Seeding complete")
}
