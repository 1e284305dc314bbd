package database

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/fridge-recipes/backend/internal/model"
)

//go:embed seed/sample_recipes.yaml
var defaultSeed []byte

// SeedRecipe is one entry of a seed file
type SeedRecipe struct {
	Name         string   `yaml:"name"`
	Ingredients  []string `yaml:"ingredients"`
	Instructions string   `yaml:"instructions"`
	CookingTime  string   `yaml:"cookingTime"`
	Difficulty   string   `yaml:"difficulty"`
}

type seedFile struct {
	Recipes []SeedRecipe `yaml:"recipes"`
}

// RunMigrations creates or updates the catalog schema
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.SampleRecipe{}); err != nil {
		return fmt.Errorf("failed to migrate sample_recipes: %w", err)
	}
	return nil
}

// DefaultSeed returns the sample recipes bundled with the binary
func DefaultSeed() ([]SeedRecipe, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeedFile reads a seed file from disk
func LoadSeedFile(path string) ([]SeedRecipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes YAML seed data and rejects unnamed entries
func ParseSeed(data []byte) ([]SeedRecipe, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	for i, r := range f.Recipes {
		if r.Name == "" {
			return nil, fmt.Errorf("seed recipe %d has no name", i)
		}
	}
	return f.Recipes, nil
}

// SeedSampleRecipes upserts the given recipes by name, keeping their order as position
func SeedSampleRecipes(db *gorm.DB, recipes []SeedRecipe) error {
	for i, r := range recipes {
		row := model.SampleRecipe{
			Position:     i,
			Name:         r.Name,
			Ingredients:  model.JSONBStringArray(r.Ingredients),
			Instructions: r.Instructions,
			CookingTime:  r.CookingTime,
			Difficulty:   r.Difficulty,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "ingredients", "instructions", "cooking_time", "difficulty", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to seed recipe %q: %w", r.Name, err)
		}
	}

	logrus.WithField("component", "database").Infof("seeded %d sample recipes", len(recipes))
	return nil
}

// Prepare migrates the schema and loads the bundled sample recipes
func Prepare(db *gorm.DB) error {
	if err := RunMigrations(db); err != nil {
		return err
	}
	recipes, err := DefaultSeed()
	if err != nil {
		return err
	}
	return SeedSampleRecipes(db, recipes)
}
