package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/recipeai/backend/internal/model"
)

// completionStub returns scripted responses in call order and records the
// tasks it was given.
type completionStub struct {
	responses []string
	tasks     []string
	err       error
}

func (s *completionStub) Complete(ctx context.Context, persona Persona, task, expectedOutput string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.tasks = append(s.tasks, task)
	if len(s.tasks) > len(s.responses) {
		return "", fmt.Errorf("unexpected completion call %d", len(s.tasks))
	}
	return s.responses[len(s.tasks)-1], nil
}

type searchStub struct {
	results []SearchResult
	err     error
	queries []string
}

func (s *searchStub) Search(ctx context.Context, query string) ([]SearchResult, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

type dietaryStub struct {
	restrictions []string
}

func (s *dietaryStub) TodaysRestrictions(ctx context.Context) []string {
	return s.restrictions
}

// recipeStoreStub records created recipes and assigns ids like the real
// store does.
type recipeStoreStub struct {
	created []*model.Recipe
}

func (s *recipeStoreStub) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.ID = uuid.New()
	s.created = append(s.created, recipe)
	return recipe, nil
}

func (s *recipeStoreStub) SaveFavorite(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.IsFav = true
	return s.Create(ctx, recipe)
}

func (s *recipeStoreStub) List(ctx context.Context) ([]*model.Recipe, error) {
	return s.created, nil
}

func (s *recipeStoreStub) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type pdfStub struct {
	pages []string
	err   error
}

func (s *pdfStub) ExtractText(data []byte) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pages, nil
}
