package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipeai/backend/internal/model"
)

// RecipeService handles recipe persistence
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Create stores a recipe and returns it with its generated id
func (s *RecipeService) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// SaveFavorite stores a recipe explicitly saved by the caller. Saved recipes
// are always marked is_fav=true regardless of the submitted flag.
func (s *RecipeService) SaveFavorite(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.IsFav = true
	return s.Create(ctx, recipe)
}

// List returns every stored recipe
func (s *RecipeService) List(ctx context.Context) ([]*model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*model.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// Delete removes a recipe by id
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error
}
