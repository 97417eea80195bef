package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gainmaster/internal/model"
	"gainmaster/internal/progress"
)

type PlanHandler struct {
	registry *progress.Registry
	logger   *zap.Logger
}

func NewPlanHandler(registry *progress.Registry, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{registry: registry, logger: logger}
}

type planFoodRequest struct {
	Name     string `json:"name" binding:"required"`
	Calories int    `json:"calories"`
	Portion  string `json:"portion"`
}

// CreatePlan handles POST /plans. The calorie total is computed here, the
// client's numbers for it are ignored.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req struct {
		Name  string            `json:"name" binding:"required"`
		Foods []planFoodRequest `json:"foods"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	store, ok := storeFor(c, h.registry)
	if !ok {
		return
	}

	foods := make([]model.FoodItem, 0, len(req.Foods))
	for _, f := range req.Foods {
		foods = append(foods, model.FoodItem{Name: f.Name, Calories: f.Calories, Portion: f.Portion})
	}
	plan := store.AddMealPlan(req.Name, foods)
	h.logger.Info("CreatePlan: success",
		zap.String("plan_id", plan.ID),
		zap.Int("total_calories", plan.TotalCalories),
	)
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// DeletePlan handles DELETE /plans/:id.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	store, ok := storeFor(c, h.registry)
	if !ok {
		return
	}
	store.RemoveMealPlan(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AddFood handles POST /plans/:id/foods.
func (h *PlanHandler) AddFood(c *gin.Context) {
	var req planFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	store, ok := storeFor(c, h.registry)
	if !ok {
		return
	}
	if !store.AddFoodToPlan(c.Param("id"), req.Name, req.Calories, req.Portion) {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RemoveFood handles DELETE /plans/:id/foods/:foodId.
func (h *PlanHandler) RemoveFood(c *gin.Context) {
	store, ok := storeFor(c, h.registry)
	if !ok {
		return
	}
	if !store.RemoveFoodFromPlan(c.Param("id"), c.Param("foodId")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
