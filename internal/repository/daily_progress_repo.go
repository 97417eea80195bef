package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gainmaster/internal/model"
)

type DailyProgressRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDailyProgressRepository(db *pgxpool.Pool, logger *zap.Logger) *DailyProgressRepository {
	return &DailyProgressRepository{db: db, logger: logger}
}

// FindByUserAndDate returns the progress record for one business date, or
// pgx.ErrNoRows when the user has not touched that day yet.
func (r *DailyProgressRepository) FindByUserAndDate(ctx context.Context, userID int, date string) (*model.DailyProgress, error) {
	query := `
        SELECT id, user_id, date, completed_item_ids, is_day_completed
        FROM daily_progress
        WHERE user_id = $1 AND date = $2
    `
	var p model.DailyProgress
	err := r.db.QueryRow(ctx, query, userID, date).Scan(
		&p.ID, &p.UserID, &p.Date, &p.CompletedItemIDs, &p.IsDayCompleted,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *DailyProgressRepository) Insert(ctx context.Context, p *model.DailyProgress) (int, error) {
	r.logger.Debug("Inserting daily progress",
		zap.Int("user_id", p.UserID),
		zap.String("date", p.Date),
	)
	query := `
        INSERT INTO daily_progress (user_id, date, completed_item_ids, is_day_completed)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	var id int
	err := r.db.QueryRow(ctx, query,
		p.UserID,
		p.Date,
		p.CompletedItemIDs,
		p.IsDayCompleted,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert daily progress",
			zap.Int("user_id", p.UserID),
			zap.String("date", p.Date),
			zap.Error(err),
		)
		return 0, err
	}
	return id, nil
}

func (r *DailyProgressRepository) UpdateCompletedItems(ctx context.Context, id int, itemIDs []string) error {
	query := `UPDATE daily_progress SET completed_item_ids = $2 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, itemIDs)
	if err != nil {
		r.logger.Error("Failed to update completed items",
			zap.Int("id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *DailyProgressRepository) MarkDayCompleted(ctx context.Context, id int) error {
	query := `UPDATE daily_progress SET is_day_completed = TRUE WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to mark day completed",
			zap.Int("id", id),
			zap.Error(err),
		)
		return err
	}
	return nil
}
