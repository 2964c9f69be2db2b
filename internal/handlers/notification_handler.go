package handlers

import (
	"net/http"

	"github.com/ArowuTest/gaspay-backend/internal/services"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// List handles GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	_, msisdn := identity(c)
	list, err := h.notificationService.List(c.Request.Context(), msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// MarkAllRead handles POST /notifications/read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	_, msisdn := identity(c)
	list, err := h.notificationService.MarkAllRead(c.Request.Context(), msisdn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
