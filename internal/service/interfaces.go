package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/recipeai/backend/internal/model"
)

// CompletionClient is an opaque text-completion function: persona and task in,
// free-form text out. The content is provider-generated and not validated
// against any schema by the client itself.
type CompletionClient interface {
	Complete(ctx context.Context, persona Persona, task, expectedOutput string) (string, error)
}

// SearchClient wraps a single call to a hosted web-search API.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// DietaryAdvisor reports dietary restrictions applicable today. It never
// fails: every internal error degrades to an empty set.
type DietaryAdvisor interface {
	TodaysRestrictions(ctx context.Context) []string
}

// PDFExtractor returns the plain text of each page in order. Pages with no
// extractable text contribute an empty string.
type PDFExtractor interface {
	ExtractText(data []byte) ([]string, error)
}

// InvoiceArchiver stores the raw uploaded invoice and returns its location.
type InvoiceArchiver interface {
	ArchiveInvoice(ctx context.Context, fileName string, data []byte) (string, error)
}

// EventPublisher emits pantry change notifications.
type EventPublisher interface {
	PublishPantryUpdated(ctx context.Context, changedIDs []uuid.UUID) error
}

// IIngredientService defines the interface for pantry operations
type IIngredientService interface {
	Upsert(ctx context.Context, ingredient *model.Ingredient) (*model.Ingredient, error)
	List(ctx context.Context) ([]*model.Ingredient, error)
	ListExpiring(ctx context.Context) ([]*model.Ingredient, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// IRecipeService defines the interface for recipe persistence
type IRecipeService interface {
	Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	SaveFavorite(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	List(ctx context.Context) ([]*model.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// IChefService defines the interface for recipe generation
type IChefService interface {
	GenerateRecipe(ctx context.Context, mode RecipeMode, pantry []PantryItem) (*model.Recipe, error)
	SuggestRecipes(ctx context.Context, pantry []PantryItem) (interface{}, error)
}

// IInvoiceService defines the interface for invoice ingestion
type IInvoiceService interface {
	ProcessInvoice(ctx context.Context, fileName string, data []byte) (*InvoiceResult, error)
}
