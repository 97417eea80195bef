package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gainmaster/internal/handler"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	sessionHandler *handler.SessionHandler,
	progressHandler *handler.ProgressHandler,
	taskHandler *handler.TaskHandler,
	foodHandler *handler.FoodHandler,
	planHandler *handler.PlanHandler,
	jwtSecret string,
	db *pgxpool.Pool,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(MetricsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public. Ranks, categories and food templates are static catalog data.
	r.POST("/session", sessionHandler.Create)
	r.GET("/ranks", progressHandler.GetRanks)
	r.GET("/categories", taskHandler.GetCategories)
	r.GET("/foods/templates", foodHandler.GetTemplates)

	// Protected
	auth := r.Group("/")
	auth.Use(AuthMiddleware(jwtSecret))
	{
		auth.GET("/state", progressHandler.GetState)
		auth.POST("/items/:id/toggle", progressHandler.ToggleItem)
		auth.POST("/day/complete", progressHandler.CompleteDay)
		auth.GET("/progress/:date", progressHandler.GetCompletedForDate)

		auth.POST("/tasks", taskHandler.CreateTask)
		auth.DELETE("/tasks/:id", taskHandler.DeleteTask)

		auth.POST("/foods", foodHandler.CreateFood)
		auth.DELETE("/foods/:id", foodHandler.DeleteFood)
		auth.GET("/foods/totals", foodHandler.GetNutritionTotals)

		auth.POST("/plans", planHandler.CreatePlan)
		auth.DELETE("/plans/:id", planHandler.DeletePlan)
		auth.POST("/plans/:id/foods", planHandler.AddFood)
		auth.DELETE("/plans/:id/foods/:foodId", planHandler.RemoveFood)
	}

	return &Router{Engine: r}
}
