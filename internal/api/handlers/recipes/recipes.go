package recipes

import (
	"context"
	"errors"
	"net/http"

	"recipe-planner/internal/core/plan"
	"recipe-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlanService is the planning operations the handlers call.
type PlanService interface {
	GenerateRecipes(ctx context.Context, scope string, req plan.GenerateRequest) ([]plan.Recipe, error)
	RegenerateRecipe(ctx context.Context, scope string, req plan.RegenerateRequest) (plan.Recipe, error)
}

// Handler serves the recipe-planning endpoints.
type Handler struct {
	service PlanService
}

// NewHandler creates a recipes handler.
func NewHandler(service PlanService) *Handler {
	return &Handler{service: service}
}

type generateRecipesRequest struct {
	MealsCount          int                       `json:"mealsCount" binding:"required,min=1,max=14"`
	Categories          plan.CategoryDistribution `json:"categories"`
	PersonsCount        int                       `json:"personsCount" binding:"required,min=1,max=12"`
	ExcludedTags        []string                  `json:"excludedTags" binding:"max=20"`
	TimeFilter          string                    `json:"timeFilter" binding:"omitempty,oneof=quick medium long any"`
	Healthy             bool                      `json:"healthy"`
	PreviousRecipeNames []string                  `json:"previousRecipeNames"`
}

type regenerateRecipeRequest struct {
	Index               int      `json:"index"`
	Category            string   `json:"category" binding:"required,oneof=economique gourmand plaisir"`
	PersonsCount        int      `json:"personsCount" binding:"required,min=1,max=12"`
	ExcludedTags        []string `json:"excludedTags" binding:"max=20"`
	TimeFilter          string   `json:"timeFilter" binding:"omitempty,oneof=quick medium long any"`
	Healthy             bool     `json:"healthy"`
	CurrentRecipeName   string   `json:"currentRecipeName"`
	ExistingRecipeNames []string `json:"existingRecipeNames"`
}

type shoppingListRequest struct {
	Recipes      []plan.Recipe `json:"recipes" binding:"required,min=1"`
	PersonsCount int           `json:"personsCount" binding:"required,min=1,max=12"`
}

// HandleGenerate serves POST /api/v1/recipes/generate.
func (h *Handler) HandleGenerate(c *gin.Context) {
	var req generateRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if req.Categories.Total() != req.MealsCount {
		respondBadRequest(c, "Category distribution must sum to mealsCount")
		return
	}

	recipes, err := h.service.GenerateRecipes(c.Request.Context(), scopeKey(c), plan.GenerateRequest{
		MealsCount:    req.MealsCount,
		Categories:    req.Categories,
		PersonsCount:  req.PersonsCount,
		ExcludedTags:  req.ExcludedTags,
		TimeFilter:    timeFilter(req.TimeFilter),
		Healthy:       req.Healthy,
		PreviousNames: req.PreviousRecipeNames,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"recipes": recipes},
	})
}

// HandleRegenerate serves POST /api/v1/recipes/regenerate.
func (h *Handler) HandleRegenerate(c *gin.Context) {
	var req regenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	recipe, err := h.service.RegenerateRecipe(c.Request.Context(), scopeKey(c), plan.RegenerateRequest{
		Category:      plan.BudgetCategory(req.Category),
		PersonsCount:  req.PersonsCount,
		ExcludedTags:  req.ExcludedTags,
		TimeFilter:    timeFilter(req.TimeFilter),
		Healthy:       req.Healthy,
		CurrentName:   req.CurrentRecipeName,
		ExistingNames: req.ExistingRecipeNames,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"recipe": recipe},
	})
}

// HandleShoppingList serves POST /api/v1/recipes/shopping-list. Aggregation
// is pure so this endpoint never touches the generation API.
func (h *Handler) HandleShoppingList(c *gin.Context) {
	var req shoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	list := plan.BuildShoppingList(req.Recipes, req.PersonsCount)
	comparison := plan.CompareStores(list.TotalEstimatedPrice)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"categories":          list.Categories,
			"totalEstimatedPrice": list.TotalEstimatedPrice,
			"stores":              comparison,
		},
	})
}

// scopeKey identifies the history scope for a request. Browser sessions send
// X-Session-Id; anything else falls back to the client address.
func scopeKey(c *gin.Context) string {
	if id := c.GetHeader("X-Session-Id"); id != "" {
		return id
	}
	return c.ClientIP()
}

func timeFilter(raw string) plan.TimeFilter {
	if raw == "" {
		return plan.TimeAny
	}
	return plan.TimeFilter(raw)
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    common.ErrCodeInvalidRequest,
			"message": message,
		},
	})
}

// respondError maps service failures onto HTTP statuses: upstream failures
// are 503, unparseable model output is 502, anything else 500.
func respondError(c *gin.Context, err error) {
	var upstream *common.UpstreamError
	var parse *common.ParseError

	status := http.StatusInternalServerError
	code := common.ErrCodeInternalError
	message := "Internal server error"

	switch {
	case errors.As(err, &upstream):
		status = http.StatusServiceUnavailable
		code = common.ErrCodeAIServiceError
		message = "Recipe generation service unavailable"
	case errors.As(err, &parse):
		status = http.StatusBadGateway
		code = common.ErrCodeParseError
		message = "Recipe generation returned an unreadable response"
	}

	common.LogError("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)

	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
