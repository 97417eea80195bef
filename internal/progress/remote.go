package progress

import (
	"context"

	"gainmaster/internal/model"
)

// Remote is the capability the store needs from the backing relational
// store, one method per table operation. Production wires the pgx
// repositories behind it; tests inject an in-memory fake.
type Remote interface {
	Profile(ctx context.Context, userID int) (*model.Profile, error)
	UpdateTotalExp(ctx context.Context, userID, totalExp int) error
	UpdateStreak(ctx context.Context, userID, streak int) error

	ProgressFor(ctx context.Context, userID int, date string) (*model.DailyProgress, error)
	InsertProgress(ctx context.Context, p *model.DailyProgress) (int, error)
	UpdateCompletedItems(ctx context.Context, progressID int, itemIDs []string) error
	MarkDayCompleted(ctx context.Context, progressID int) error

	CustomTasks(ctx context.Context, userID int) ([]model.CustomTask, error)
	InsertCustomTask(ctx context.Context, t *model.CustomTask) (string, error)
	DeleteCustomTask(ctx context.Context, userID int, taskID string) error

	CustomFoods(ctx context.Context, userID int) ([]model.CustomFood, error)
	InsertCustomFood(ctx context.Context, f *model.CustomFood) (string, error)
	DeleteCustomFood(ctx context.Context, userID int, foodID string) error

	MealPlans(ctx context.Context, userID int) ([]model.MealPlan, error)
	InsertMealPlan(ctx context.Context, p *model.MealPlan) (string, error)
	UpdateMealPlanFoods(ctx context.Context, planID string, items []model.FoodItem, totalCalories int) error
	DeleteMealPlan(ctx context.Context, userID int, planID string) error
}
