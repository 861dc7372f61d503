package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/recipeai/backend/internal/mocks"
	"github.com/recipeai/backend/internal/model"
)

func setupIngredientRouter(ingredients *mocks.MockIngredientService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewIngredientHandler(ingredients, nil)
	handler.RegisterRoutes(router.Group("/api"))
	return router
}

func TestAddIngredient(t *testing.T) {
	t.Run("should upsert and return the stored ingredient", func(t *testing.T) {
		ingredients := new(mocks.MockIngredientService)
		stored := &model.Ingredient{ID: uuid.New(), Name: "Apple", Quantity: 3, IsVegetableOrFruit: true}
		ingredients.On("Upsert", mock.Anything, mock.MatchedBy(func(i *model.Ingredient) bool {
			return i.Name == "Apple" && i.Quantity == 3
		})).Return(stored, nil)

		router := setupIngredientRouter(ingredients)
		body, _ := json.Marshal(map[string]interface{}{"name": "Apple", "quantity": 3, "is_vegetable_or_fruit": true})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/add-ingredient", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, true, resp["success"])
		ingredients.AssertExpectations(t)
	})

	t.Run("should reject a payload without a name", func(t *testing.T) {
		router := setupIngredientRouter(new(mocks.MockIngredientService))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/add-ingredient", bytes.NewBufferString(`{"quantity": 3}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetIngredients(t *testing.T) {
	ingredients := new(mocks.MockIngredientService)
	ingredients.On("List", mock.Anything).Return([]*model.Ingredient{
		{ID: uuid.New(), Name: "Apple", Quantity: 3},
		{ID: uuid.New(), Name: "Rice", Quantity: 1},
	}, nil)

	router := setupIngredientRouter(ingredients)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/get-ingredients", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []model.Ingredient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestGetExpiringIngredients(t *testing.T) {
	ingredients := new(mocks.MockIngredientService)
	ingredients.On("ListExpiring", mock.Anything).Return([]*model.Ingredient{
		{ID: uuid.New(), Name: "Spinach", IsVegetableOrFruit: true},
	}, nil)

	router := setupIngredientRouter(ingredients)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/get-expiring-ingredients", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []model.Ingredient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Spinach", resp[0].Name)
}

func TestDeleteIngredient(t *testing.T) {
	t.Run("should delete an existing ingredient", func(t *testing.T) {
		id := uuid.New()
		ingredients := new(mocks.MockIngredientService)
		ingredients.On("Delete", mock.Anything, id).Return(nil)

		router := setupIngredientRouter(ingredients)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/ingredients/"+id.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		ingredients.AssertExpectations(t)
	})

	t.Run("should reject a malformed id", func(t *testing.T) {
		router := setupIngredientRouter(new(mocks.MockIngredientService))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/ingredients/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should return 404 for an unknown id", func(t *testing.T) {
		id := uuid.New()
		ingredients := new(mocks.MockIngredientService)
		ingredients.On("Delete", mock.Anything, id).Return(gorm.ErrRecordNotFound)

		router := setupIngredientRouter(ingredients)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/ingredients/"+id.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
