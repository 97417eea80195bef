package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gainmaster/internal/model"
)

type ProfileRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProfileRepository(db *pgxpool.Pool, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, logger: logger}
}

// EnsureExists creates a zero-valued profile row for the user if none is
// there yet. Called once on session establishment.
func (r *ProfileRepository) EnsureExists(ctx context.Context, userID int) error {
	query := `
        INSERT INTO profiles (user_id, total_exp, streak)
        VALUES ($1, 0, 0)
        ON CONFLICT (user_id) DO NOTHING
    `
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		r.logger.Error("Failed to ensure profile", zap.Int("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (r *ProfileRepository) Get(ctx context.Context, userID int) (*model.Profile, error) {
	query := `
        SELECT user_id, total_exp, streak
        FROM profiles
        WHERE user_id = $1
    `
	var p model.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(&p.UserID, &p.TotalExp, &p.Streak)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) UpdateTotalExp(ctx context.Context, userID, totalExp int) error {
	query := `UPDATE profiles SET total_exp = $2 WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, totalExp)
	if err != nil {
		r.logger.Error("Failed to update total_exp",
			zap.Int("user_id", userID),
			zap.Int("total_exp", totalExp),
			zap.Error(err),
		)
		return err
	}
	r.logger.Debug("Updated total_exp", zap.Int("user_id", userID), zap.Int("total_exp", totalExp))
	return nil
}

func (r *ProfileRepository) UpdateStreak(ctx context.Context, userID, streak int) error {
	query := `UPDATE profiles SET streak = $2 WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, streak)
	if err != nil {
		r.logger.Error("Failed to update streak",
			zap.Int("user_id", userID),
			zap.Int("streak", streak),
			zap.Error(err),
		)
		return err
	}
	r.logger.Debug("Updated streak", zap.Int("user_id", userID), zap.Int("streak", streak))
	return nil
}
