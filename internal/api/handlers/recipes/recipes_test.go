package recipes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipe-planner/internal/core/plan"
	"recipe-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPlanService struct {
	recipes []plan.Recipe
	recipe  plan.Recipe
	err     error

	scope          string
	generateReq    plan.GenerateRequest
	regenerateReq  plan.RegenerateRequest
	generateCalled bool
}

func (m *mockPlanService) GenerateRecipes(ctx context.Context, scope string, req plan.GenerateRequest) ([]plan.Recipe, error) {
	m.scope = scope
	m.generateReq = req
	m.generateCalled = true
	return m.recipes, m.err
}

func (m *mockPlanService) RegenerateRecipe(ctx context.Context, scope string, req plan.RegenerateRequest) (plan.Recipe, error) {
	m.scope = scope
	m.regenerateReq = req
	return m.recipe, m.err
}

func setupTestRouter(svc PlanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(svc)
	router.POST("/api/v1/recipes/generate", handler.HandleGenerate)
	router.POST("/api/v1/recipes/regenerate", handler.HandleRegenerate)
	router.POST("/api/v1/recipes/shopping-list", handler.HandleShoppingList)
	return router
}

func postJSON(router *gin.Engine, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validGenerateBody = `{
  "mealsCount": 3,
  "categories": {"economique": 2, "gourmand": 1, "plaisir": 0},
  "personsCount": 4,
  "excludedTags": ["gluten"],
  "timeFilter": "quick",
  "healthy": true
}`

func TestHandleGenerate(t *testing.T) {
	svc := &mockPlanService{recipes: []plan.Recipe{
		{ID: "1", Name: "Gratin de courgettes", Category: plan.BudgetEconomique},
	}}
	router := setupTestRouter(svc)

	w := postJSON(router, "/api/v1/recipes/generate", validGenerateBody,
		map[string]string{"X-Session-Id": "session-42"})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Recipes []plan.Recipe `json:"recipes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Recipes, 1)
	assert.Equal(t, "Gratin de courgettes", resp.Data.Recipes[0].Name)

	assert.Equal(t, "session-42", svc.scope)
	assert.Equal(t, 3, svc.generateReq.MealsCount)
	assert.Equal(t, plan.TimeQuick, svc.generateReq.TimeFilter)
	assert.True(t, svc.generateReq.Healthy)
}

func TestHandleGenerateScopeFallsBackToClientIP(t *testing.T) {
	svc := &mockPlanService{}
	router := setupTestRouter(svc)

	w := postJSON(router, "/api/v1/recipes/generate", validGenerateBody, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, svc.scope)
}

func TestHandleGenerateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing mealsCount", `{"categories": {"economique": 1}, "personsCount": 2}`},
		{"mealsCount too high", `{"mealsCount": 15, "categories": {"economique": 15}, "personsCount": 2}`},
		{"personsCount too high", `{"mealsCount": 1, "categories": {"economique": 1}, "personsCount": 13}`},
		{"distribution mismatch", `{"mealsCount": 3, "categories": {"economique": 1}, "personsCount": 2}`},
		{"bad time filter", `{"mealsCount": 1, "categories": {"economique": 1}, "personsCount": 2, "timeFilter": "instant"}`},
		{"too many tags", `{"mealsCount": 1, "categories": {"economique": 1}, "personsCount": 2,
			"excludedTags": ["a","b","c","d","e","f","g","h","i","j","k","l","m","n","o","p","q","r","s","t","u"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockPlanService{}
			router := setupTestRouter(svc)

			w := postJSON(router, "/api/v1/recipes/generate", tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, svc.generateCalled, "service must not be called on invalid input")

			var resp struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, common.ErrCodeInvalidRequest, resp.Error.Code)
		})
	}
}

func TestHandleGenerateErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"upstream failure", common.NewUpstreamError("api down", nil),
			http.StatusServiceUnavailable, common.ErrCodeAIServiceError},
		{"parse failure", common.NewParseError("not json", nil),
			http.StatusBadGateway, common.ErrCodeParseError},
		{"unknown failure", assert.AnError,
			http.StatusInternalServerError, common.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockPlanService{err: tt.err}
			router := setupTestRouter(svc)

			w := postJSON(router, "/api/v1/recipes/generate", validGenerateBody, nil)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp struct {
				Success bool `json:"success"`
				Error   struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleRegenerate(t *testing.T) {
	svc := &mockPlanService{recipe: plan.Recipe{ID: "2", Name: "Nouvelle recette"}}
	router := setupTestRouter(svc)

	w := postJSON(router, "/api/v1/recipes/regenerate", `{
	  "index": 1,
	  "category": "gourmand",
	  "personsCount": 2,
	  "excludedTags": [],
	  "currentRecipeName": "Ancienne recette",
	  "existingRecipeNames": ["Autre plat"]
	}`, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Recipe plan.Recipe `json:"recipe"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Nouvelle recette", resp.Data.Recipe.Name)

	assert.Equal(t, plan.BudgetGourmand, svc.regenerateReq.Category)
	assert.Equal(t, "Ancienne recette", svc.regenerateReq.CurrentName)
	assert.Equal(t, []string{"Autre plat"}, svc.regenerateReq.ExistingNames)
}

func TestHandleRegenerateRejectsUnknownCategory(t *testing.T) {
	router := setupTestRouter(&mockPlanService{})

	w := postJSON(router, "/api/v1/recipes/regenerate",
		`{"index": 0, "category": "luxueux", "personsCount": 2}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleShoppingList(t *testing.T) {
	router := setupTestRouter(&mockPlanService{})

	w := postJSON(router, "/api/v1/recipes/shopping-list", `{
	  "recipes": [
	    {"id": "1", "name": "Plat", "category": "economique", "pricePerPerson": 5.0,
	     "ingredients": [
	       {"name": "Farine", "quantity": 200, "unit": "g", "category": "epicerie"},
	       {"name": "Farine", "quantity": 0.3, "unit": "kg", "category": "epicerie"}
	     ],
	     "steps": []}
	  ],
	  "personsCount": 2
	}`, nil)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Categories          map[string][]plan.ShoppingItem `json:"categories"`
			TotalEstimatedPrice float64                        `json:"totalEstimatedPrice"`
			Stores              plan.StoreComparison           `json:"stores"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	assert.Len(t, resp.Data.Categories, len(plan.ShoppingCategories))
	require.Len(t, resp.Data.Categories["epicerie"], 1)
	assert.Equal(t, 500.0, resp.Data.Categories["epicerie"][0].TotalQuantity)
	assert.Equal(t, "g", resp.Data.Categories["epicerie"][0].Unit)

	assert.Equal(t, 10.0, resp.Data.TotalEstimatedPrice)
	assert.Len(t, resp.Data.Stores.Stores, 4)
	assert.NotEmpty(t, resp.Data.Stores.BestValue)
}

func TestHandleShoppingListRequiresRecipes(t *testing.T) {
	router := setupTestRouter(&mockPlanService{})

	w := postJSON(router, "/api/v1/recipes/shopping-list",
		`{"recipes": [], "personsCount": 2}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
