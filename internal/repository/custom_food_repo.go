package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gainmaster/internal/model"
)

type CustomFoodRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCustomFoodRepository(db *pgxpool.Pool, logger *zap.Logger) *CustomFoodRepository {
	return &CustomFoodRepository{db: db, logger: logger}
}

func (r *CustomFoodRepository) Insert(ctx context.Context, f *model.CustomFood) (string, error) {
	r.logger.Debug("Inserting custom food",
		zap.Int("user_id", f.UserID),
		zap.String("name", f.Name),
	)
	query := `
        INSERT INTO custom_foods (user_id, name, description, icon, calories, protein, carbs, fat, portion, timing, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `
	var id string
	err := r.db.QueryRow(ctx, query,
		f.UserID,
		f.Name,
		f.Description,
		f.Icon,
		f.Calories,
		f.Protein,
		f.Carbs,
		f.Fat,
		f.Portion,
		f.Timing,
		f.CreatedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert custom food",
			zap.Int("user_id", f.UserID),
			zap.Error(err),
		)
		return "", err
	}
	r.logger.Info("Custom food inserted",
		zap.String("food_id", id),
		zap.Int("user_id", f.UserID),
	)
	return id, nil
}

func (r *CustomFoodRepository) ListByUser(ctx context.Context, userID int) ([]model.CustomFood, error) {
	query := `
        SELECT id, user_id, name, description, icon, calories, protein, carbs, fat, portion, timing, created_at
        FROM custom_foods
        WHERE user_id = $1
        ORDER BY created_at
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list custom foods",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	foods := []model.CustomFood{}
	for rows.Next() {
		var f model.CustomFood
		if err := rows.Scan(
			&f.ID,
			&f.UserID,
			&f.Name,
			&f.Description,
			&f.Icon,
			&f.Calories,
			&f.Protein,
			&f.Carbs,
			&f.Fat,
			&f.Portion,
			&f.Timing,
			&f.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan custom food", zap.Error(err))
			return nil, err
		}
		foods = append(foods, f)
	}
	return foods, rows.Err()
}

func (r *CustomFoodRepository) Delete(ctx context.Context, userID int, foodID string) error {
	query := `DELETE FROM custom_foods WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, foodID, userID)
	if err != nil {
		r.logger.Error("Failed to delete custom food",
			zap.String("food_id", foodID),
			zap.Error(err),
		)
		return err
	}
	r.logger.Debug("Custom food deleted",
		zap.String("food_id", foodID),
		zap.Int64("rows_affected", result.RowsAffected()),
	)
	return nil
}
