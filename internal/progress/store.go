// Package progress holds the per-user authoritative view of exp, streak,
// today's completions, custom tasks/foods and meal plans. Mutations apply
// to memory first and mirror to the remote store best-effort; a failed
// write is logged and counted, never rolled back.
package progress

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gainmaster/internal/catalog"
	"gainmaster/internal/model"
	"gainmaster/pkg/metrics"
)

const persistTimeout = 10 * time.Second

type Store struct {
	userID int
	remote Remote
	logger *zap.Logger
	now    func() time.Time

	mu sync.Mutex
	wg sync.WaitGroup

	totalExp       int
	streak         int
	lastDate       string
	completedToday []string
	completedDates map[string][]string
	dayCompleted   map[string]bool
	customTasks    []model.CustomTask
	customFoods    []model.CustomFood
	mealPlans      []model.MealPlan
}

func NewStore(userID int, remote Remote, logger *zap.Logger) *Store {
	s := &Store{
		userID:         userID,
		remote:         remote,
		logger:         logger,
		now:            time.Now,
		completedDates: make(map[string][]string),
		dayCompleted:   make(map[string]bool),
	}
	s.lastDate = s.today()
	return s
}

// today is the single place the business date comes from: the ISO date
// portion of the local wall clock.
func (s *Store) today() string {
	return s.now().Format("2006-01-02")
}

// Load pulls the five per-user snapshots concurrently. Reads fail
// independently: a missing or unreadable record defaults to zero values and
// never blocks the others.
func (s *Store) Load(ctx context.Context) {
	start := time.Now()
	today := s.today()

	var (
		profile *model.Profile
		plans   []model.MealPlan
		tasks   []model.CustomTask
		foods   []model.CustomFood
		daily   *model.DailyProgress
	)

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		p, err := s.remote.Profile(ctx, s.userID)
		if err != nil {
			s.logLoadMiss("profiles", err)
			return
		}
		profile = p
	}()
	go func() {
		defer wg.Done()
		ps, err := s.remote.MealPlans(ctx, s.userID)
		if err != nil {
			s.logLoadMiss("meal_plans", err)
			return
		}
		plans = ps
	}()
	go func() {
		defer wg.Done()
		ts, err := s.remote.CustomTasks(ctx, s.userID)
		if err != nil {
			s.logLoadMiss("custom_tasks", err)
			return
		}
		tasks = ts
	}()
	go func() {
		defer wg.Done()
		fs, err := s.remote.CustomFoods(ctx, s.userID)
		if err != nil {
			s.logLoadMiss("custom_foods", err)
			return
		}
		foods = fs
	}()
	go func() {
		defer wg.Done()
		d, err := s.remote.ProgressFor(ctx, s.userID, today)
		if err != nil {
			s.logLoadMiss("daily_progress", err)
			return
		}
		daily = d
	}()
	wg.Wait()

	s.mu.Lock()
	s.lastDate = today
	if profile != nil {
		s.totalExp = profile.TotalExp
		s.streak = profile.Streak
	}
	s.mealPlans = plans
	s.customTasks = tasks
	s.customFoods = foods
	if daily != nil {
		s.completedToday = daily.CompletedItemIDs
		s.dayCompleted[today] = daily.IsDayCompleted
	}
	s.mu.Unlock()

	metrics.RecordStoreLoad(time.Since(start))
	s.logger.Info("Progress store loaded",
		zap.Int("user_id", s.userID),
		zap.String("date", today),
		zap.Int("custom_tasks", len(tasks)),
		zap.Int("meal_plans", len(plans)),
	)
}

func (s *Store) logLoadMiss(table string, err error) {
	if errors.Is(err, pgx.ErrNoRows) {
		// No record yet for this user, zero values apply.
		return
	}
	s.logger.Warn("Load read failed, defaulting",
		zap.String("table", table),
		zap.Int("user_id", s.userID),
		zap.Error(err),
	)
}

// rolloverLocked moves completedToday into history when the wall clock has
// crossed midnight since the last operation.
func (s *Store) rolloverLocked() {
	today := s.today()
	if s.lastDate == today {
		return
	}
	if len(s.completedToday) > 0 {
		s.completedDates[s.lastDate] = s.completedToday
	}
	s.completedToday = nil
	s.lastDate = today
}

// persist runs one remote mirror write off the caller's path. The caller
// already observes the new in-memory state; a failure here means silent
// desync until the next load.
func (s *Store) persist(op string, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			metrics.IncrementSyncFailure(op)
			s.logger.Warn("Remote write failed, keeping local state",
				zap.String("op", op),
				zap.Int("user_id", s.userID),
				zap.Error(err),
			)
		}
	}()
}

// Wait drains in-flight remote writes. Used on shutdown and in tests.
func (s *Store) Wait() {
	s.wg.Wait()
}

// upsertProgress mirrors today's record: update the existing row or insert
// a fresh one. Reads then writes, so two rapid mutations can race
// last-write-wins against each other.
func (s *Store) upsertProgress(ctx context.Context, date string, items []string, dayDone bool) error {
	existing, err := s.remote.ProgressFor(ctx, s.userID, date)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if existing != nil {
		if dayDone {
			return s.remote.MarkDayCompleted(ctx, existing.ID)
		}
		return s.remote.UpdateCompletedItems(ctx, existing.ID, items)
	}
	_, err = s.remote.InsertProgress(ctx, &model.DailyProgress{
		UserID:           s.userID,
		Date:             date,
		CompletedItemIDs: items,
		IsDayCompleted:   dayDone,
	})
	return err
}

func (s *Store) allTasksLocked() []model.Task {
	all := append([]model.Task(nil), catalog.BuiltinTasks...)
	for _, t := range s.customTasks {
		all = append(all, t.Task)
	}
	return all
}

// rewardForLocked resolves an item id against tasks then meal plans.
// kind "" means the id resolves to nothing.
func (s *Store) rewardForLocked(itemID string) (reward int, kind string) {
	for _, t := range s.allTasksLocked() {
		if t.ID == itemID {
			return t.ExpReward, "task"
		}
	}
	for _, p := range s.mealPlans {
		if p.ID == itemID {
			r := p.ExpReward
			if r <= 0 {
				r = catalog.DefaultMealReward
			}
			return r, "meal"
		}
	}
	return 0, ""
}

// Toggle flips an item's completed-today status and adjusts exp. Unknown
// ids are a no-op. Toggle is its own inverse: doing it twice restores both
// exp and the completed set, except that exp is floored at zero.
func (s *Store) Toggle(itemID string) {
	s.mu.Lock()
	s.rolloverLocked()
	reward, kind := s.rewardForLocked(itemID)
	if kind == "" {
		s.mu.Unlock()
		return
	}

	completed := false
	for i, id := range s.completedToday {
		if id == itemID {
			s.completedToday = append(s.completedToday[:i], s.completedToday[i+1:]...)
			completed = true
			break
		}
	}
	if completed {
		s.totalExp -= reward
		if s.totalExp < 0 {
			s.totalExp = 0
		}
		metrics.IncrementToggle(kind, "undo")
	} else {
		s.completedToday = append(s.completedToday, itemID)
		s.totalExp += reward
		metrics.IncrementToggle(kind, "complete")
		metrics.AddExpAwarded(reward)
	}

	totalExp := s.totalExp
	items := append([]string(nil), s.completedToday...)
	date := s.lastDate
	s.mu.Unlock()

	s.persist("toggle", func(ctx context.Context) error {
		if err := s.remote.UpdateTotalExp(ctx, s.userID, totalExp); err != nil {
			return err
		}
		return s.upsertProgress(ctx, date, items, false)
	})
}

// CompleteDay marks today done and bumps the streak. The per-date flag
// guards the streak: a second call on the same date is a no-op. Returns
// whether the day was newly completed.
func (s *Store) CompleteDay() bool {
	s.mu.Lock()
	s.rolloverLocked()
	today := s.lastDate
	if s.dayCompleted[today] {
		s.mu.Unlock()
		return false
	}
	s.streak++
	s.dayCompleted[today] = true
	streak := s.streak
	items := append([]string(nil), s.completedToday...)
	s.mu.Unlock()

	metrics.IncrementDayCompleted()
	s.persist("complete_day", func(ctx context.Context) error {
		if err := s.remote.UpdateStreak(ctx, s.userID, streak); err != nil {
			return err
		}
		return s.upsertProgress(ctx, today, items, true)
	})
	return true
}

// adoptRemoteID swaps a locally generated id for the one the remote store
// assigned. Every created entity goes through this, so later toggles and
// deletes always address the authoritative id.
func (s *Store) adoptRemoteID(localID, remoteID string) {
	if remoteID == "" || remoteID == localID {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customTasks {
		if s.customTasks[i].ID == localID {
			s.customTasks[i].ID = remoteID
		}
	}
	for i := range s.customFoods {
		if s.customFoods[i].ID == localID {
			s.customFoods[i].ID = remoteID
		}
	}
	for i := range s.mealPlans {
		if s.mealPlans[i].ID == localID {
			s.mealPlans[i].ID = remoteID
		}
	}
	for i, id := range s.completedToday {
		if id == localID {
			s.completedToday[i] = remoteID
		}
	}
}

// removeCompletedLocked drops an id from completedToday so the set only
// ever holds ids that still resolve. Earned exp stays banked.
func (s *Store) removeCompletedLocked(itemID string) {
	for i, id := range s.completedToday {
		if id == itemID {
			s.completedToday = append(s.completedToday[:i], s.completedToday[i+1:]...)
			return
		}
	}
}

// AddTask creates a custom task. The returned task carries the local id;
// once the insert lands the store adopts the remote-assigned one.
func (s *Store) AddTask(title, description string, category model.Category, expReward int, icon string) model.CustomTask {
	task := catalog.NewCustomTask(title, description, category, expReward, icon)
	task.UserID = s.userID

	s.mu.Lock()
	s.rolloverLocked()
	s.customTasks = append(s.customTasks, task)
	s.mu.Unlock()

	localID := task.ID
	s.persist("add_task", func(ctx context.Context) error {
		t := task
		remoteID, err := s.remote.InsertCustomTask(ctx, &t)
		if err != nil {
			return err
		}
		s.adoptRemoteID(localID, remoteID)
		return nil
	})
	return task
}

func (s *Store) RemoveTask(taskID string) {
	s.mu.Lock()
	s.rolloverLocked()
	for i := range s.customTasks {
		if s.customTasks[i].ID == taskID {
			s.customTasks = append(s.customTasks[:i], s.customTasks[i+1:]...)
			break
		}
	}
	s.removeCompletedLocked(taskID)
	s.mu.Unlock()

	s.persist("remove_task", func(ctx context.Context) error {
		return s.remote.DeleteCustomTask(ctx, s.userID, taskID)
	})
}

func (s *Store) AddCustomFood(name, description, icon string, calories, protein, carbs, fat *int, portion, timing *string) model.CustomFood {
	food := catalog.NewCustomFood(name, description, icon, calories, protein, carbs, fat, portion, timing)
	food.UserID = s.userID

	s.mu.Lock()
	s.rolloverLocked()
	s.customFoods = append(s.customFoods, food)
	s.mu.Unlock()

	localID := food.ID
	s.persist("add_food", func(ctx context.Context) error {
		f := food
		remoteID, err := s.remote.InsertCustomFood(ctx, &f)
		if err != nil {
			return err
		}
		s.adoptRemoteID(localID, remoteID)
		return nil
	})
	return food
}

func (s *Store) RemoveCustomFood(foodID string) {
	s.mu.Lock()
	s.rolloverLocked()
	for i := range s.customFoods {
		if s.customFoods[i].ID == foodID {
			s.customFoods = append(s.customFoods[:i], s.customFoods[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.persist("remove_food", func(ctx context.Context) error {
		return s.remote.DeleteCustomFood(ctx, s.userID, foodID)
	})
}

// AddMealPlan creates a plan whose calorie total is computed from its
// foods at construction.
func (s *Store) AddMealPlan(name string, foods []model.FoodItem) model.MealPlan {
	plan := catalog.NewMealPlan(name, foods, 0)
	plan.UserID = s.userID

	s.mu.Lock()
	s.rolloverLocked()
	s.mealPlans = append(s.mealPlans, plan)
	s.mu.Unlock()

	localID := plan.ID
	s.persist("add_plan", func(ctx context.Context) error {
		p := plan
		remoteID, err := s.remote.InsertMealPlan(ctx, &p)
		if err != nil {
			return err
		}
		s.adoptRemoteID(localID, remoteID)
		return nil
	})
	return plan
}

func (s *Store) RemoveMealPlan(planID string) {
	s.mu.Lock()
	s.rolloverLocked()
	for i := range s.mealPlans {
		if s.mealPlans[i].ID == planID {
			s.mealPlans = append(s.mealPlans[:i], s.mealPlans[i+1:]...)
			break
		}
	}
	s.removeCompletedLocked(planID)
	s.mu.Unlock()

	s.persist("remove_plan", func(ctx context.Context) error {
		return s.remote.DeleteMealPlan(ctx, s.userID, planID)
	})
}

func (s *Store) planIndexLocked(planID string) int {
	for i := range s.mealPlans {
		if s.mealPlans[i].ID == planID {
			return i
		}
	}
	return -1
}

// AddFoodToPlan appends a food to a plan, recomputes the calorie total and
// mirrors the full list. Returns false when the plan is unknown.
func (s *Store) AddFoodToPlan(planID, name string, calories int, portion string) bool {
	item := catalog.NewFoodItem(name, calories, portion)

	s.mu.Lock()
	idx := s.planIndexLocked(planID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	p := &s.mealPlans[idx]
	p.Foods = append(p.Foods, item)
	p.RecomputeTotal()
	items := append([]model.FoodItem(nil), p.Foods...)
	total := p.TotalCalories
	s.mu.Unlock()

	s.persist("update_plan_foods", func(ctx context.Context) error {
		return s.remote.UpdateMealPlanFoods(ctx, planID, items, total)
	})
	return true
}

// RemoveFoodFromPlan drops a food from a plan, recomputes the total and
// mirrors the full list. Returns false when the plan is unknown.
func (s *Store) RemoveFoodFromPlan(planID, foodID string) bool {
	s.mu.Lock()
	idx := s.planIndexLocked(planID)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	p := &s.mealPlans[idx]
	for i := range p.Foods {
		if p.Foods[i].ID == foodID {
			p.Foods = append(p.Foods[:i], p.Foods[i+1:]...)
			break
		}
	}
	p.RecomputeTotal()
	items := append([]model.FoodItem(nil), p.Foods...)
	total := p.TotalCalories
	s.mu.Unlock()

	s.persist("update_plan_foods", func(ctx context.Context) error {
		return s.remote.UpdateMealPlanFoods(ctx, planID, items, total)
	})
	return true
}

// CompletedForDate returns today's live set for today's date; for past
// dates only what rolled over in this process is available.
func (s *Store) CompletedForDate(date string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rolloverLocked()
	if date == s.lastDate {
		return append([]string(nil), s.completedToday...)
	}
	return append([]string(nil), s.completedDates[date]...)
}

// DailyProgress is the share of tasks checked off today, 0 when the user
// has no tasks at all.
func (s *Store) DailyProgress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rolloverLocked()
	total := len(s.allTasksLocked())
	if total == 0 {
		return 0
	}
	return float64(len(s.completedToday)) / float64(total) * 100
}

// Snapshot is a copy of the store's current view, safe to serialize.
type Snapshot struct {
	Date           string             `json:"date"`
	TotalExp       int                `json:"total_exp"`
	Streak         int                `json:"streak"`
	CompletedToday []string           `json:"completed_today"`
	IsDayCompleted bool               `json:"is_day_completed"`
	DailyProgress  float64            `json:"daily_progress"`
	AllTasks       []model.Task       `json:"all_tasks"`
	CustomFoods    []model.CustomFood `json:"custom_foods"`
	MealPlans      []model.MealPlan   `json:"meal_plans"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rolloverLocked()

	all := s.allTasksLocked()
	var pct float64
	if len(all) > 0 {
		pct = float64(len(s.completedToday)) / float64(len(all)) * 100
	}
	return Snapshot{
		Date:           s.lastDate,
		TotalExp:       s.totalExp,
		Streak:         s.streak,
		CompletedToday: append([]string(nil), s.completedToday...),
		IsDayCompleted: s.dayCompleted[s.lastDate],
		DailyProgress:  pct,
		AllTasks:       all,
		CustomFoods:    append([]model.CustomFood(nil), s.customFoods...),
		MealPlans:      append([]model.MealPlan(nil), s.mealPlans...),
	}
}

func (s *Store) TotalExp() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalExp
}

func (s *Store) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streak
}
