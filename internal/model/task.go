package model

import "time"

type Category string

const (
	CategoryMeal       Category = "meal"
	CategoryWorkout    Category = "workout"
	CategoryRest       Category = "rest"
	CategorySupplement Category = "supplement"
)

// ValidCategory reports whether c is one of the four task categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryMeal, CategoryWorkout, CategoryRest, CategorySupplement:
		return true
	}
	return false
}

type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ExpReward   int      `json:"exp_reward"`
	Category    Category `json:"category"`
	Icon        string   `json:"icon"`
	IsCustom    bool     `json:"is_custom"`
}

// CustomTask is a user-authored task. Built-in tasks have no owner or
// creation time.
type CustomTask struct {
	Task
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
