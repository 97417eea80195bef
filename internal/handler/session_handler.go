package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gainmaster/internal/service"
)

type SessionHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewSessionHandler(auth *service.AuthService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{auth: auth, logger: logger}
}

// Create handles POST /session. The client sends only its device id; the
// account is provisioned on first contact.
func (h *SessionHandler) Create(c *gin.Context) {
	var req struct {
		DeviceID string `json:"device_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id required"})
		return
	}

	token, user, err := h.auth.SessionForDevice(c.Request.Context(), req.DeviceID)
	if err != nil {
		if errors.Is(err, service.ErrBadDeviceID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid device_id"})
			return
		}
		h.logger.Error("Session establishment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not establish session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"user_id":  user.ID,
		"username": user.Username,
	})
}
