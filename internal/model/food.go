package model

import "time"

// FoodItem lives inside a meal plan. It is serialized into the plan row,
// never persisted on its own.
type FoodItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Portion  string `json:"portion"`
}

// CustomFood is an independently persisted food with optional nutrition
// detail. Nil means the user did not fill the field in.
type CustomFood struct {
	ID          string    `json:"id"`
	UserID      int       `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Calories    *int      `json:"calories,omitempty"`
	Protein     *int      `json:"protein,omitempty"`
	Carbs       *int      `json:"carbs,omitempty"`
	Fat         *int      `json:"fat,omitempty"`
	Portion     *string   `json:"portion,omitempty"`
	Timing      *string   `json:"timing,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Nutrition struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// TotalNutrition sums the filled-in macros across foods.
func TotalNutrition(foods []CustomFood) Nutrition {
	var total Nutrition
	for _, f := range foods {
		if f.Calories != nil {
			total.Calories += *f.Calories
		}
		if f.Protein != nil {
			total.Protein += *f.Protein
		}
		if f.Carbs != nil {
			total.Carbs += *f.Carbs
		}
		if f.Fat != nil {
			total.Fat += *f.Fat
		}
	}
	return total
}
