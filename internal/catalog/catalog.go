// Package catalog constructs the user-authored entities: custom tasks,
// foods, food items and meal plans. Constructors are total over well-formed
// input; validation belongs to the caller.
package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"gainmaster/internal/model"
)

const (
	DefaultTaskReward = 10
	DefaultMealReward = 15
)

// BuiltinTasks is the stock daily routine. The stock entries were retired,
// users author their own tasks now.
var BuiltinTasks = []model.Task{}

var CategoryLabels = map[model.Category]string{
	model.CategoryMeal:       "Nutrisi",
	model.CategoryWorkout:    "Latihan",
	model.CategoryRest:       "Istirahat",
	model.CategorySupplement: "Suplemen",
}

var CategoryIcons = map[model.Category]string{
	model.CategoryMeal:       "🍽️",
	model.CategoryWorkout:    "🏋️",
	model.CategoryRest:       "😴",
	model.CategorySupplement: "💊",
}

// newID produces a kind-prefixed identifier, unique for the process and
// beyond. The prefix survives id reconciliation only until the remote store
// assigns its own id.
func newID(kind string) string {
	return fmt.Sprintf("%s-%s", kind, uuid.NewString())
}

func NewCustomTask(title, description string, category model.Category, expReward int, icon string) model.CustomTask {
	if expReward <= 0 {
		expReward = DefaultTaskReward
	}
	if icon == "" {
		icon = CategoryIcons[category]
	}
	return model.CustomTask{
		Task: model.Task{
			ID:          newID("custom"),
			Title:       title,
			Description: description,
			ExpReward:   expReward,
			Category:    category,
			Icon:        icon,
			IsCustom:    true,
		},
		CreatedAt: time.Now(),
	}
}

func NewFoodItem(name string, calories int, portion string) model.FoodItem {
	return model.FoodItem{
		ID:       newID("fooditem"),
		Name:     name,
		Calories: calories,
		Portion:  portion,
	}
}

// NewMealPlan computes the calorie total at construction. Pass expReward 0
// for the default. Foods arriving without an id get one minted, so every
// food in a plan stays addressable for later removal.
func NewMealPlan(name string, foods []model.FoodItem, expReward int) model.MealPlan {
	if expReward <= 0 {
		expReward = DefaultMealReward
	}
	for i := range foods {
		if foods[i].ID == "" {
			foods[i].ID = newID("fooditem")
		}
	}
	p := model.MealPlan{
		ID:        newID("meal"),
		Name:      name,
		Foods:     foods,
		ExpReward: expReward,
	}
	p.RecomputeTotal()
	return p
}

func NewCustomFood(name, description, icon string, calories, protein, carbs, fat *int, portion, timing *string) model.CustomFood {
	if icon == "" {
		icon = "🍽️"
	}
	return model.CustomFood{
		ID:          newID("food"),
		Name:        name,
		Description: description,
		Icon:        icon,
		Calories:    calories,
		Protein:     protein,
		Carbs:       carbs,
		Fat:         fat,
		Portion:     portion,
		Timing:      timing,
		CreatedAt:   time.Now(),
	}
}

func intp(v int) *int { return &v }

// DefaultFoods are the stock food templates offered to new users.
var DefaultFoods = []model.CustomFood{
	{ID: "food-1", Name: "Telur + Oatmeal", Description: "4 telur + oatmeal + pisang", Icon: "🍳", Calories: intp(450), Protein: intp(25)},
	{ID: "food-2", Name: "Protein Shake", Description: "Whey protein + almond 30g", Icon: "🥤", Calories: intp(250), Protein: intp(30)},
	{ID: "food-3", Name: "Dada Ayam + Nasi", Description: "Dada ayam 200g + nasi + sayur", Icon: "🍗", Calories: intp(600), Protein: intp(45)},
	{ID: "food-4", Name: "Roti Gandum + Selai", Description: "Roti gandum + selai kacang + susu", Icon: "🥜", Calories: intp(400), Protein: intp(15)},
	{ID: "food-5", Name: "Ikan Salmon", Description: "Salmon 150g + brokoli + nasi", Icon: "🐟", Calories: intp(550), Protein: intp(35)},
}
