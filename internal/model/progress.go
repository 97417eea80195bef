package model

// Profile holds the per-user reward counters. One row per user, created
// with zero values on first session.
type Profile struct {
	UserID   int `json:"user_id"`
	TotalExp int `json:"total_exp"`
	Streak   int `json:"streak"`
}

// DailyProgress records what a user checked off on one business date
// (YYYY-MM-DD, local wall clock).
type DailyProgress struct {
	ID               int      `json:"id"`
	UserID           int      `json:"user_id"`
	Date             string   `json:"date"`
	CompletedItemIDs []string `json:"completed_item_ids"`
	IsDayCompleted   bool     `json:"is_day_completed"`
}
