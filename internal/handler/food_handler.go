package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gainmaster/internal/catalog"
	"gainmaster/internal/model"
	"gainmaster/internal/progress"
)

type FoodHandler struct {
	registry *progress.Registry
	logger   *zap.Logger
}

func NewFoodHandler(registry *progress.Registry, logger *zap.Logger) *FoodHandler {
	return &FoodHandler{registry: registry, logger: logger}
}

// CreateFood handles POST /foods. Nutrition fields are optional.
func (h *FoodHandler) CreateFood(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Icon        string  `json:"icon"`
		Calories    *int    `json:"calories"`
		Protein     *int    `json:"protein"`
		Carbs       *int    `json:"carbs"`
		Fat         *int    `json:"fat"`
		Portion     *string `json:"portion"`
		Timing      *string `json:"timing"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	store, ok := storeFor(c, h.registry)
	if !ok {
		return
	}
	food := store.AddCustomFood(req.Name, req.Description, req.Icon,
		req.Calories, req.Protein, req.Carbs, req.Fat, req.Portion, req.Timing)
	h.logger.Info("CreateFood: success", zap.String("food_id", food.ID))
	c.JSON(http.StatusOK, gin.H{"food": food})
}

// DeleteFood handles DELETE /foods/:id.
func (h *FoodHandler) DeleteFood(c *gin.Context) {
	store, ok := storeFor(c, h.registry)
	if !ok {
		return
	}
	store.RemoveCustomFood(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetTemplates handles GET /foods/templates: the stock food templates
// offered to new users as starting points.
func (h *FoodHandler) GetTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": catalog.DefaultFoods})
}

// GetNutritionTotals handles GET /foods/totals: summed macros across the
// user's custom foods.
func (h *FoodHandler) GetNutritionTotals(c *gin.Context) {
	store, ok := storeFor(c, h.registry)
	if !ok {
		return
	}
	snap := store.Snapshot()
	c.JSON(http.StatusOK, gin.H{"totals": model.TotalNutrition(snap.CustomFoods)})
}
