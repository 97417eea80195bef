package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gainmaster/internal/model"
)

type CustomTaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCustomTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *CustomTaskRepository {
	return &CustomTaskRepository{db: db, logger: logger}
}

// Insert stores a custom task and returns the id the store assigned. The
// caller swaps its locally generated id for this one.
func (r *CustomTaskRepository) Insert(ctx context.Context, t *model.CustomTask) (string, error) {
	r.logger.Debug("Inserting custom task",
		zap.Int("user_id", t.UserID),
		zap.String("title", t.Title),
		zap.String("category", string(t.Category)),
	)
	query := `
        INSERT INTO custom_tasks (user_id, title, description, category, exp_reward, icon, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	var id string
	err := r.db.QueryRow(ctx, query,
		t.UserID,
		t.Title,
		t.Description,
		t.Category,
		t.ExpReward,
		t.Icon,
		t.CreatedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert custom task",
			zap.Int("user_id", t.UserID),
			zap.Error(err),
		)
		return "", err
	}
	r.logger.Info("Custom task inserted",
		zap.String("task_id", id),
		zap.Int("user_id", t.UserID),
	)
	return id, nil
}

func (r *CustomTaskRepository) ListByUser(ctx context.Context, userID int) ([]model.CustomTask, error) {
	query := `
        SELECT id, user_id, title, description, category, exp_reward, icon, created_at
        FROM custom_tasks
        WHERE user_id = $1
        ORDER BY created_at
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list custom tasks",
			zap.Int("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	tasks := []model.CustomTask{}
	for rows.Next() {
		var t model.CustomTask
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Description,
			&t.Category,
			&t.ExpReward,
			&t.Icon,
			&t.CreatedAt,
		); err != nil {
			r.logger.Error("Failed to scan custom task", zap.Error(err))
			return nil, err
		}
		t.IsCustom = true
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *CustomTaskRepository) Delete(ctx context.Context, userID int, taskID string) error {
	query := `DELETE FROM custom_tasks WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, taskID, userID)
	if err != nil {
		r.logger.Error("Failed to delete custom task",
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return err
	}
	r.logger.Debug("Custom task deleted",
		zap.String("task_id", taskID),
		zap.Int64("rows_affected", result.RowsAffected()),
	)
	return nil
}
