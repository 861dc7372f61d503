package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/recipeai/backend/internal/model"
	"github.com/recipeai/backend/internal/service"
)

// MockIngredientService is a mock implementation of the pantry service
type MockIngredientService struct {
	mock.Mock
}

func (m *MockIngredientService) Upsert(ctx context.Context, ingredient *model.Ingredient) (*model.Ingredient, error) {
	args := m.Called(ctx, ingredient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ingredient), args.Error(1)
}

func (m *MockIngredientService) List(ctx context.Context) ([]*model.Ingredient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ingredient), args.Error(1)
}

func (m *MockIngredientService) ListExpiring(ctx context.Context) ([]*model.Ingredient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ingredient), args.Error(1)
}

func (m *MockIngredientService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecipeService is a mock implementation of the recipe store
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) SaveFavorite(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) List(ctx context.Context) ([]*model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockChefService is a mock implementation of the recipe pipeline
type MockChefService struct {
	mock.Mock
}

func (m *MockChefService) GenerateRecipe(ctx context.Context, mode service.RecipeMode, pantry []service.PantryItem) (*model.Recipe, error) {
	args := m.Called(ctx, mode, pantry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockChefService) SuggestRecipes(ctx context.Context, pantry []service.PantryItem) (interface{}, error) {
	args := m.Called(ctx, pantry)
	return args.Get(0), args.Error(1)
}

// MockInvoiceService is a mock implementation of the invoice pipeline
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) ProcessInvoice(ctx context.Context, fileName string, data []byte) (*service.InvoiceResult, error) {
	args := m.Called(ctx, fileName, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceResult), args.Error(1)
}
