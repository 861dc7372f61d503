package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/recipeai/backend/internal/model"
)

// IngredientService handles pantry persistence
type IngredientService struct {
	db         *gorm.DB
	expiryDays int
}

// NewIngredientService creates a new IngredientService instance
func NewIngredientService(db *gorm.DB, expiryDays int) *IngredientService {
	return &IngredientService{
		db:         db,
		expiryDays: expiryDays,
	}
}

// Upsert inserts the ingredient or, if one with the same name exists,
// overwrites its fields. The stored record is returned.
func (s *IngredientService) Upsert(ctx context.Context, ingredient *model.Ingredient) (*model.Ingredient, error) {
	if ingredient.ItemAdded.IsZero() {
		ingredient.ItemAdded = time.Now()
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "is_vegetable_or_fruit", "item_added", "updated_at"}),
	}).Create(ingredient).Error
	if err != nil {
		return nil, err
	}

	// On conflict the insert id is discarded, so read back the stored row.
	var stored model.Ingredient
	if err := s.db.WithContext(ctx).First(&stored, "name = ?", ingredient.Name).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// List returns every pantry ingredient
func (s *IngredientService) List(ctx context.Context) ([]*model.Ingredient, error) {
	var ingredients []model.Ingredient
	if err := s.db.WithContext(ctx).Order("name").Find(&ingredients).Error; err != nil {
		return nil, err
	}

	result := make([]*model.Ingredient, len(ingredients))
	for i := range ingredients {
		result[i] = &ingredients[i]
	}
	return result, nil
}

// ListExpiring returns fruit/vegetable items added at least expiryDays ago
func (s *IngredientService) ListExpiring(ctx context.Context) ([]*model.Ingredient, error) {
	cutoff := time.Now().AddDate(0, 0, -s.expiryDays)

	var ingredients []model.Ingredient
	err := s.db.WithContext(ctx).
		Where("item_added <= ? AND is_vegetable_or_fruit = ?", cutoff, true).
		Order("item_added").
		Find(&ingredients).Error
	if err != nil {
		return nil, err
	}

	result := make([]*model.Ingredient, len(ingredients))
	for i := range ingredients {
		result[i] = &ingredients[i]
	}
	return result, nil
}

// Delete removes an ingredient by id
func (s *IngredientService) Delete(ctx context.Context, id uuid.UUID) error {
	var ingredient model.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&model.Ingredient{}, "id = ?", id).Error
}
