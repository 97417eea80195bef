package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gainmaster/internal/catalog"
	"gainmaster/internal/model"
	"gainmaster/internal/progress"
)

type TaskHandler struct {
	registry *progress.Registry
	logger   *zap.Logger
}

func NewTaskHandler(registry *progress.Registry, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{registry: registry, logger: logger}
}

// CreateTask handles POST /tasks. The response carries the task as known
// right now; its id may still be swapped for the remote-assigned one, so
// clients should re-read state before deleting a just-created task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category" binding:"required"`
		ExpReward   int    `json:"exp_reward"`
		Icon        string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !model.ValidCategory(model.Category(req.Category)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	store, ok := storeFor(c, h.registry)
	if !ok {
		return
	}
	task := store.AddTask(req.Title, req.Description, model.Category(req.Category), req.ExpReward, req.Icon)
	h.logger.Info("CreateTask: success",
		zap.String("task_id", task.ID),
		zap.String("category", req.Category),
	)
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// GetCategories handles GET /categories: the task category ids with
// their display labels and icons.
func (h *TaskHandler) GetCategories(c *gin.Context) {
	cats := []model.Category{
		model.CategoryMeal,
		model.CategoryWorkout,
		model.CategoryRest,
		model.CategorySupplement,
	}
	out := make([]gin.H, 0, len(cats))
	for _, cat := range cats {
		out = append(out, gin.H{
			"id":    cat,
			"label": catalog.CategoryLabels[cat],
			"icon":  catalog.CategoryIcons[cat],
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// DeleteTask handles DELETE /tasks/:id.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	store, ok := storeFor(c, h.registry)
	if !ok {
		return
	}
	store.RemoveTask(c.Param("id"))
	h.logger.Debug("DeleteTask: success", zap.String("task_id", c.Param("id")))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
