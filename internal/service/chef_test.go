package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecipe_StrictModeRequiresIngredients(t *testing.T) {
	llm := &completionStub{}
	store := &recipeStoreStub{}
	chef := NewChefService(llm, &searchStub{}, &dietaryStub{}, store)

	_, err := chef.GenerateRecipe(context.Background(), ModeStrict, nil)

	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, llm.tasks, "no external call should be made")
	assert.Empty(t, store.created)
}

func TestGenerateRecipe_UnknownModeRejected(t *testing.T) {
	chef := NewChefService(&completionStub{}, &searchStub{}, &dietaryStub{}, &recipeStoreStub{})

	_, err := chef.GenerateRecipe(context.Background(), RecipeMode(7), []PantryItem{{Name: "rice", Quantity: 1}})

	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGenerateRecipe_StrictModeFullPipeline(t *testing.T) {
	llm := &completionStub{
		responses: []string{
			"Rice pairs well with egg and soy.",
			"Egg Fried Rice.\nIngredients: rice, egg.\nSteps: cook rice, fry egg, combine.",
			"Reasonably balanced; consider adding vegetables.",
			"```json\n{\"name\": \"Egg Fried Rice\", \"is_veg\": false, \"ingredients\": [\"2 cups rice\", \"6 eggs\"], \"steps\": [\"Cook the rice\", \"Fry the eggs\", \"Combine\"]}\n```",
		},
	}
	store := &recipeStoreStub{}
	chef := NewChefService(llm, &searchStub{}, &dietaryStub{}, store)

	pantry := []PantryItem{{Name: "rice", Quantity: 2}, {Name: "egg", Quantity: 6}}
	recipe, err := chef.GenerateRecipe(context.Background(), ModeStrict, pantry)

	require.NoError(t, err)
	assert.Len(t, llm.tasks, 4, "idea, draft, review, format")
	assert.Contains(t, llm.tasks[0], "rice (2)")
	assert.Contains(t, llm.tasks[0], "egg (6)")
	assert.Contains(t, llm.tasks[1], "ONLY these ingredients")

	// Synonym fields must be reconciled onto the canonical names.
	assert.Equal(t, "Egg Fried Rice", recipe.Name)
	assert.Contains(t, []string(recipe.Items), "2 cups rice")
	assert.Contains(t, []string(recipe.Items), "6 eggs")
	assert.Len(t, recipe.Instructions, 3)

	assert.True(t, recipe.IsRecipe)
	assert.False(t, recipe.IsFav)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", recipe.ID.String())
	require.Len(t, store.created, 1)
}

func TestGenerateRecipe_DietaryRestrictionsAppendedToDraft(t *testing.T) {
	llm := &completionStub{
		responses: []string{
			"pairings",
			"draft",
			"review",
			`{"name": "Veg Curry", "is_veg": true, "items": ["potato"], "instructions": ["boil"]}`,
		},
	}
	chef := NewChefService(llm, &searchStub{}, &dietaryStub{restrictions: []string{"no beef", "no pork"}}, &recipeStoreStub{})

	_, err := chef.GenerateRecipe(context.Background(), ModeExtend, []PantryItem{{Name: "potato", Quantity: 4}})

	require.NoError(t, err)
	assert.Contains(t, llm.tasks[1], "Respect these dietary restrictions: no beef, no pork")
}

func TestGenerateRecipe_FreeformModeUsesWebSearch(t *testing.T) {
	search := &searchStub{results: []SearchResult{{Content: "trending pasta recipes"}}}
	llm := &completionStub{
		responses: []string{
			`[{"name": "idea one"}, {"name": "idea two"}, {"name": "idea three"}]`,
			"draft",
			"review",
			`{"name": "Pasta", "is_veg": true, "items": ["pasta"], "instructions": ["boil"]}`,
		},
	}
	chef := NewChefService(llm, search, &dietaryStub{}, &recipeStoreStub{})

	recipe, err := chef.GenerateRecipe(context.Background(), ModeFreeform, nil)

	require.NoError(t, err)
	require.Len(t, search.queries, 1)
	assert.Contains(t, llm.tasks[0], "trending pasta recipes")
	assert.Equal(t, "Pasta", recipe.Name)
}

func TestGenerateRecipe_NonObjectFormatOutputFails(t *testing.T) {
	llm := &completionStub{
		responses: []string{"pairings", "draft", "review", `["not", "an", "object"]`},
	}
	store := &recipeStoreStub{}
	chef := NewChefService(llm, &searchStub{}, &dietaryStub{}, store)

	_, err := chef.GenerateRecipe(context.Background(), ModeStrict, []PantryItem{{Name: "rice", Quantity: 1}})

	var malformed *MalformedOutputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "format", malformed.Stage)
	assert.Empty(t, store.created, "nothing may be persisted on failure")
}

func TestGenerateRecipe_StageErrorPropagates(t *testing.T) {
	llm := &completionStub{err: &UpstreamError{Service: "completion", Err: errors.New("boom")}}
	chef := NewChefService(llm, &searchStub{}, &dietaryStub{}, &recipeStoreStub{})

	_, err := chef.GenerateRecipe(context.Background(), ModeStrict, []PantryItem{{Name: "rice", Quantity: 1}})

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
}

func TestSuggestRecipes(t *testing.T) {
	llm := &completionStub{
		responses: []string{"```json\n[{\"name\": \"Dal\", \"description\": \"lentil stew\"}]\n```"},
	}
	chef := NewChefService(llm, &searchStub{}, &dietaryStub{}, &recipeStoreStub{})

	got, err := chef.SuggestRecipes(context.Background(), []PantryItem{{Name: "lentils", Quantity: 1}})

	require.NoError(t, err)
	list, ok := got.([]interface{})
	require.True(t, ok)
	assert.Len(t, list, 1)
	assert.Contains(t, llm.tasks[0], "lentils")
}

func TestReconcileFields(t *testing.T) {
	t.Run("should rename synonyms to canonical names", func(t *testing.T) {
		obj := map[string]interface{}{
			"ingredients": []interface{}{"rice"},
			"steps":       []interface{}{"cook"},
		}

		got := reconcileFields(obj)

		assert.Equal(t, []interface{}{"rice"}, got["items"])
		assert.Equal(t, []interface{}{"cook"}, got["instructions"])
		assert.NotContains(t, got, "ingredients")
		assert.NotContains(t, got, "steps")
	})

	t.Run("should be idempotent", func(t *testing.T) {
		obj := map[string]interface{}{"ingredients": []interface{}{"rice"}}

		once := reconcileFields(obj)
		twice := reconcileFields(once)

		assert.Equal(t, once, twice)
	})

	t.Run("canonical key wins when both are present", func(t *testing.T) {
		obj := map[string]interface{}{
			"items":       []interface{}{"canonical"},
			"ingredients": []interface{}{"synonym"},
		}

		got := reconcileFields(obj)

		assert.Equal(t, []interface{}{"canonical"}, got["items"])
		assert.NotContains(t, got, "ingredients")
	})
}
