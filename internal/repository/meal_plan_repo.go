package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gainmaster/internal/model"
)

// Foods are stored as one serialized blob per plan row, not as separate
// rows. Every update writes the full list plus the recomputed total.
type MealPlanRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMealPlanRepository(db *pgxpool.Pool, logger *zap.Logger) *MealPlanRepository {
	return &MealPlanRepository{db: db, logger: logger}
}

func (r *MealPlanRepository) Insert(ctx context.Context, p *model.MealPlan) (string, error) {
	r.logger.Debug("Inserting meal plan",
		zap.Int("user_id", p.UserID),
		zap.String("name", p.Name),
		zap.Int("total_calories", p.TotalCalories),
	)
	foods, err := json.Marshal(p.Foods)
	if err != nil {
		return "", err
	}
	query := `
        INSERT INTO meal_plans (user_id, name, foods, total_calories, exp_reward)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	var id string
	err = r.db.QueryRow(ctx, query,
		p.UserID,
		p.Name,
		foods,
		p.TotalCalories,
		p.ExpReward,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert meal plan",
			zap.Int("user_id", p.UserID),
			zap.Error(err),
		)
		return "", err
	}
	r.logger.Info("Meal plan inserted",
		zap.String("plan_id", id),
		zap.Int("user_id", p.UserID),
	)
	return id, nil
}

func (r *MealPlanRepository) ListByUser(ctx context.Context, userID int) ([]model.MealPlan, error) {
	query := `
        SELECT id, user_id, name, foods, total_calories, exp_reward
        FROM meal_plans
        WHERE user_id = $1
        ORDER BY id
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list meal plans",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	plans := []model.MealPlan{}
	for rows.Next() {
		var p model.MealPlan
		var foods []byte
		if err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&foods,
			&p.TotalCalories,
			&p.ExpReward,
		); err != nil {
			r.logger.Error("Failed to scan meal plan", zap.Error(err))
			return nil, err
		}
		if len(foods) > 0 {
			if err := json.Unmarshal(foods, &p.Foods); err != nil {
				r.logger.Warn("Skipping malformed foods blob",
					zap.String("plan_id", p.ID),
					zap.Error(err),
				)
				p.Foods = nil
			}
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// UpdateFoods persists the full food list and the recomputed calorie total
// for one plan.
func (r *MealPlanRepository) UpdateFoods(ctx context.Context, planID string, items []model.FoodItem, totalCalories int) error {
	foods, err := json.Marshal(items)
	if err != nil {
		return err
	}
	query := `UPDATE meal_plans SET foods = $2, total_calories = $3 WHERE id = $1`
	_, err = r.db.Exec(ctx, query, planID, foods, totalCalories)
	if err != nil {
		r.logger.Error("Failed to update meal plan foods",
			zap.String("plan_id", planID),
			zap.Error(err),
		)
		return err
	}
	r.logger.Debug("Meal plan foods updated",
		zap.String("plan_id", planID),
		zap.Int("food_count", len(items)),
		zap.Int("total_calories", totalCalories),
	)
	return nil
}

func (r *MealPlanRepository) Delete(ctx context.Context, userID int, planID string) error {
	query := `DELETE FROM meal_plans WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, planID, userID)
	if err != nil {
		r.logger.Error("Failed to delete meal plan",
			zap.String("plan_id", planID),
			zap.Error(err),
		)
		return err
	}
	r.logger.Debug("Meal plan deleted",
		zap.String("plan_id", planID),
		zap.Int64("rows_affected", result.RowsAffected()),
	)
	return nil
}
