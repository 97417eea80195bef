package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gainmaster/internal/model"
)

// Remote bundles the per-table repositories into the single capability the
// progress store consumes.
type Remote struct {
	profiles *ProfileRepository
	progress *DailyProgressRepository
	tasks    *CustomTaskRepository
	foods    *CustomFoodRepository
	plans    *MealPlanRepository
}

func NewRemote(db *pgxpool.Pool, logger *zap.Logger) *Remote {
	return &Remote{
		profiles: NewProfileRepository(db, logger),
		progress: NewDailyProgressRepository(db, logger),
		tasks:    NewCustomTaskRepository(db, logger),
		foods:    NewCustomFoodRepository(db, logger),
		plans:    NewMealPlanRepository(db, logger),
	}
}

func (r *Remote) Profiles() *ProfileRepository { return r.profiles }

func (r *Remote) Profile(ctx context.Context, userID int) (*model.Profile, error) {
	return r.profiles.Get(ctx, userID)
}

func (r *Remote) UpdateTotalExp(ctx context.Context, userID, totalExp int) error {
	return r.profiles.UpdateTotalExp(ctx, userID, totalExp)
}

func (r *Remote) UpdateStreak(ctx context.Context, userID, streak int) error {
	return r.profiles.UpdateStreak(ctx, userID, streak)
}

func (r *Remote) ProgressFor(ctx context.Context, userID int, date string) (*model.DailyProgress, error) {
	return r.progress.FindByUserAndDate(ctx, userID, date)
}

func (r *Remote) InsertProgress(ctx context.Context, p *model.DailyProgress) (int, error) {
	return r.progress.Insert(ctx, p)
}

func (r *Remote) UpdateCompletedItems(ctx context.Context, progressID int, itemIDs []string) error {
	return r.progress.UpdateCompletedItems(ctx, progressID, itemIDs)
}

func (r *Remote) MarkDayCompleted(ctx context.Context, progressID int) error {
	return r.progress.MarkDayCompleted(ctx, progressID)
}

func (r *Remote) CustomTasks(ctx context.Context, userID int) ([]model.CustomTask, error) {
	return r.tasks.ListByUser(ctx, userID)
}

func (r *Remote) InsertCustomTask(ctx context.Context, t *model.CustomTask) (string, error) {
	return r.tasks.Insert(ctx, t)
}

func (r *Remote) DeleteCustomTask(ctx context.Context, userID int, taskID string) error {
	return r.tasks.Delete(ctx, userID, taskID)
}

func (r *Remote) CustomFoods(ctx context.Context, userID int) ([]model.CustomFood, error) {
	return r.foods.ListByUser(ctx, userID)
}

func (r *Remote) InsertCustomFood(ctx context.Context, f *model.CustomFood) (string, error) {
	return r.foods.Insert(ctx, f)
}

func (r *Remote) DeleteCustomFood(ctx context.Context, userID int, foodID string) error {
	return r.foods.Delete(ctx, userID, foodID)
}

func (r *Remote) MealPlans(ctx context.Context, userID int) ([]model.MealPlan, error) {
	return r.plans.ListByUser(ctx, userID)
}

func (r *Remote) InsertMealPlan(ctx context.Context, p *model.MealPlan) (string, error) {
	return r.plans.Insert(ctx, p)
}

func (r *Remote) UpdateMealPlanFoods(ctx context.Context, planID string, items []model.FoodItem, totalCalories int) error {
	return r.plans.UpdateFoods(ctx, planID, items, totalCalories)
}

func (r *Remote) DeleteMealPlan(ctx context.Context, userID int, planID string) error {
	return r.plans.Delete(ctx, userID, planID)
}
