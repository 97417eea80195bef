package model

type MealPlan struct {
	ID            string     `json:"id"`
	UserID        int        `json:"user_id"`
	Name          string     `json:"name"`
	Foods         []FoodItem `json:"foods"`
	TotalCalories int        `json:"total_calories"`
	ExpReward     int        `json:"exp_reward"`
}

// RecomputeTotal derives TotalCalories from the current food list. The
// stored total is never trusted as input.
func (p *MealPlan) RecomputeTotal() {
	total := 0
	for _, f := range p.Foods {
		total += f.Calories
	}
	p.TotalCalories = total
}
