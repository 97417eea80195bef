package handler

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gainmaster/internal/progress"
	"gainmaster/internal/rank"
	"gainmaster/internal/util"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type ProgressHandler struct {
	registry *progress.Registry
	deduper  *util.Deduper
	logger   *zap.Logger
}

func NewProgressHandler(registry *progress.Registry, deduper *util.Deduper, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{registry: registry, deduper: deduper, logger: logger}
}

func storeFor(c *gin.Context, registry *progress.Registry) (*progress.Store, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return nil, false
	}
	return registry.ForUser(c.Request.Context(), userID.(int)), true
}

// GetState handles GET /state: the full snapshot plus rank placement.
func (h *ProgressHandler) GetState(c *gin.Context) {
	store, ok := storeFor(c, h.registry)
	if !ok {
		return
	}
	snap := store.Snapshot()
	r := rank.Current(snap.TotalExp)
	c.JSON(http.StatusOK, gin.H{
		"state":        snap,
		"rank":         r,
		"exp_progress": rank.Progress(snap.TotalExp),
		"exp_to_next":  rank.ToNext(snap.TotalExp),
	})
}

// ToggleItem handles POST /items/:id/toggle. Unknown ids are a silent
// no-op, mirroring the store's contract.
func (h *ProgressHandler) ToggleItem(c *gin.Context) {
	store, ok := storeFor(c, h.registry)
	if !ok {
		return
	}
	store.Toggle(c.Param("id"))
	snap := store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"total_exp":       snap.TotalExp,
		"completed_today": snap.CompletedToday,
		"daily_progress":  snap.DailyProgress,
	})
}

// CompleteDay handles POST /day/complete. A redis guard keeps the streak
// from double-incrementing across instances; the store's per-date flag is
// the authoritative check.
func (h *ProgressHandler) CompleteDay(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	store := h.registry.ForUser(c.Request.Context(), userID.(int))
	snap := store.Snapshot()

	if !h.deduper.AcquireOnce(c.Request.Context(), "complete_day", userID.(int), snap.Date) {
		c.JSON(http.StatusOK, gin.H{"status": "already_completed", "streak": snap.Streak})
		return
	}
	if !store.CompleteDay() {
		c.JSON(http.StatusOK, gin.H{"status": "already_completed", "streak": snap.Streak})
		return
	}
	h.logger.Info("CompleteDay: success",
		zap.Int("user_id", userID.(int)),
		zap.String("date", snap.Date),
		zap.Int("streak", store.Streak()),
	)
	c.JSON(http.StatusOK, gin.H{"status": "completed", "streak": store.Streak()})
}

// GetCompletedForDate handles GET /progress/:date.
func (h *ProgressHandler) GetCompletedForDate(c *gin.Context) {
	store, ok := storeFor(c, h.registry)
	if !ok {
		return
	}
	date := c.Param("date")
	if !datePattern.MatchString(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":               date,
		"completed_item_ids": store.CompletedForDate(date),
	})
}

// GetRanks handles GET /ranks: the full ladder for the rank list view.
func (h *ProgressHandler) GetRanks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ranks": rank.Ranks})
}
