package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/recipeai/backend/internal/model"
)

// RecipeMode selects how the pipeline constrains ingredient choice.
type RecipeMode int

const (
	// ModeStrict uses only the listed ingredients.
	ModeStrict RecipeMode = 1
	// ModeExtend uses the listed ingredients plus 1-2 additions of the
	// model's choice.
	ModeExtend RecipeMode = 2
	// ModeFreeform lets the model pick the recipe with no ingredient
	// constraint.
	ModeFreeform RecipeMode = 3
)

// PantryItem is a (name, quantity) pair fed into the recipe pipeline.
type PantryItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

var (
	foodPairingExpert = Persona{
		Role:      "Food Pairing Expert",
		Goal:      "Suggest complementary flavors and ingredients.",
		Backstory: "A culinary expert specializing in food pairings and flavor combinations.",
	}
	webResearcher = Persona{
		Role:      "Web Researcher",
		Goal:      "Find popular recipes and cooking techniques online.",
		Backstory: "A culinary researcher who finds the best recipes and cooking methods online.",
	}
	recipeCreator = Persona{
		Role:      "Recipe Creator",
		Goal:      "Create delicious recipes based on available ingredients.",
		Backstory: "A professional chef with expertise in creating recipes from available ingredients.",
	}
	nutritionist = Persona{
		Role:      "Nutritionist",
		Goal:      "Ensure recipes are balanced and healthy.",
		Backstory: "A certified nutritionist who specializes in creating balanced meals.",
	}
	recipeFormatter = Persona{
		Role:      "Recipe Formatter",
		Goal:      "Format recipes into clear, structured instructions.",
		Backstory: "A technical writer specializing in recipe documentation and formatting.",
	}
	suggestionExpert = Persona{
		Role:      "Recipe Suggestion Expert",
		Goal:      "Suggest recipe ideas based on available ingredients.",
		Backstory: "A culinary expert who specializes in creating recipe ideas from available ingredients.",
	}
)

// fieldSynonyms maps synonym field names emitted by the formatter stage to
// their canonical names. The canonical key wins when both are present.
var fieldSynonyms = map[string]string{
	"ingredients": "items",
	"steps":       "instructions",
}

// ChefService runs the four-stage recipe generation pipeline:
// idea -> draft -> nutrition review -> format. Stages are strictly
// sequential; each stage's prompt embeds the previous stage's output.
type ChefService struct {
	llm     CompletionClient
	search  SearchClient
	dietary DietaryAdvisor
	recipes IRecipeService
}

// NewChefService creates a new ChefService instance
func NewChefService(llm CompletionClient, search SearchClient, dietary DietaryAdvisor, recipes IRecipeService) *ChefService {
	return &ChefService{
		llm:     llm,
		search:  search,
		dietary: dietary,
		recipes: recipes,
	}
}

// GenerateRecipe runs the pipeline for the given mode and persists the result
// with is_recipe=true and is_fav=false. Strict and extend modes require a
// non-empty pantry and are rejected before any external call otherwise.
func (s *ChefService) GenerateRecipe(ctx context.Context, mode RecipeMode, pantry []PantryItem) (*model.Recipe, error) {
	switch mode {
	case ModeStrict, ModeExtend:
		if len(pantry) == 0 {
			return nil, fmt.Errorf("%w: no ingredients available for recipe type %d", ErrInvalidRequest, mode)
		}
	case ModeFreeform:
	default:
		return nil, fmt.Errorf("%w: unknown recipe type %d", ErrInvalidRequest, mode)
	}

	ingredientList := formatPantry(pantry)

	idea, err := s.ideaStage(ctx, mode, ingredientList)
	if err != nil {
		return nil, err
	}

	draft, err := s.draftStage(ctx, mode, ingredientList, idea)
	if err != nil {
		return nil, err
	}

	review, err := s.llm.Complete(ctx, nutritionist,
		fmt.Sprintf("Evaluate the nutritional balance of the following recipe and suggest modifications if needed:\n%s", draft),
		"An analysis of the recipe's nutritional balance.")
	if err != nil {
		return nil, err
	}

	formatted, err := s.llm.Complete(ctx, recipeFormatter,
		fmt.Sprintf("Format the following recipe into a clear JSON object with name, is_veg (boolean), items (list of strings), and instructions (list of strings).\nRecipe:\n%s\nNutritional notes:\n%s", draft, review),
		"A formatted recipe in JSON format.")
	if err != nil {
		return nil, err
	}

	value, err := Normalize("format", TextOutput(formatted))
	if err != nil {
		return nil, err
	}

	obj, ok := value.(map[string]interface{})
	if !ok {
		return nil, &MalformedOutputError{Stage: "format", Raw: formatted}
	}

	var data struct {
		Name         string   `json:"name"`
		IsVeg        bool     `json:"is_veg"`
		Items        []string `json:"items"`
		Instructions []string `json:"instructions"`
	}
	if err := decodeInto(reconcileFields(obj), &data); err != nil {
		return nil, &MalformedOutputError{Stage: "format", Raw: formatted}
	}

	recipe := &model.Recipe{
		Name:         data.Name,
		IsVeg:        data.IsVeg,
		IsRecipe:     true,
		IsFav:        false,
		Items:        model.JSONBStringArray(data.Items),
		Instructions: model.JSONBStringArray(data.Instructions),
	}

	return s.recipes.Create(ctx, recipe)
}

// ideaStage produces flavor pairings (strict), complementary additions
// (extend), or three web-sourced recipe ideas (freeform).
func (s *ChefService) ideaStage(ctx context.Context, mode RecipeMode, ingredientList string) (string, error) {
	switch mode {
	case ModeStrict:
		return s.llm.Complete(ctx, foodPairingExpert,
			fmt.Sprintf("Analyze the following ingredients and suggest optimal flavor combinations: %s", ingredientList),
			"A list of complementary flavor combinations.")
	case ModeExtend:
		return s.llm.Complete(ctx, foodPairingExpert,
			fmt.Sprintf("Suggest 1-2 additional ingredients that would complement these ingredients: %s", ingredientList),
			"A list of 1-2 complementary ingredients.")
	default:
		results, err := s.search.Search(ctx, "popular recipes")
		if err != nil {
			return "", err
		}
		snippets := make([]string, 0, len(results))
		for _, r := range results {
			snippets = append(snippets, r.Content)
		}
		return s.llm.Complete(ctx, webResearcher,
			fmt.Sprintf("Based on the following search results, return 3 recipe ideas in JSON format:\n%s", strings.Join(snippets, "\n")),
			"Three recipe ideas in JSON format.")
	}
}

func (s *ChefService) draftStage(ctx context.Context, mode RecipeMode, ingredientList, idea string) (string, error) {
	var task string
	switch mode {
	case ModeStrict:
		task = fmt.Sprintf("Create a recipe using ONLY these ingredients: %s. ", ingredientList)
	case ModeExtend:
		task = fmt.Sprintf("Create a recipe using these available ingredients: %s plus 1-2 additional ingredients of your choice. ", ingredientList)
	default:
		task = "Create a completely new recipe idea. "
	}

	if restrictions := s.dietary.TodaysRestrictions(ctx); len(restrictions) > 0 {
		task += fmt.Sprintf("Respect these dietary restrictions: %s. ", strings.Join(restrictions, ", "))
	}

	task += fmt.Sprintf("\nSuggestions from the previous step:\n%s", idea)

	return s.llm.Complete(ctx, recipeCreator, task, "A recipe with title, ingredients, and steps.")
}

// SuggestRecipes asks for five recipe ideas from the current pantry in a
// single completion call. The normalized value is returned as-is.
func (s *ChefService) SuggestRecipes(ctx context.Context, pantry []PantryItem) (interface{}, error) {
	names := make([]string, 0, len(pantry))
	for _, item := range pantry {
		names = append(names, item.Name)
	}

	raw, err := s.llm.Complete(ctx, suggestionExpert,
		fmt.Sprintf("Suggest 5 recipe ideas using some or all of these ingredients: %s", strings.Join(names, ", ")),
		"A list of 5 recipe ideas in JSON format with name and brief description.")
	if err != nil {
		return nil, err
	}

	return Normalize("suggest", TextOutput(raw))
}

// reconcileFields applies the synonym rename table once. Applying it twice
// yields the same result as once.
func reconcileFields(obj map[string]interface{}) map[string]interface{} {
	for synonym, canonical := range fieldSynonyms {
		v, ok := obj[synonym]
		if !ok {
			continue
		}
		if _, exists := obj[canonical]; !exists {
			obj[canonical] = v
		}
		delete(obj, synonym)
	}
	return obj
}

func formatPantry(pantry []PantryItem) string {
	parts := make([]string, 0, len(pantry))
	for _, item := range pantry {
		parts = append(parts, fmt.Sprintf("%s (%d)", item.Name, item.Quantity))
	}
	return strings.Join(parts, ", ")
}
