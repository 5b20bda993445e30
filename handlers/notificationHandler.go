package handlers

import (
	"PalmCare/middlewares"
	"PalmCare/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) GetAllNotifications(c *gin.Context) {
	ok(c, h.service.List(c.Request.Context(), queryBool(c, "unread")))
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notification, err := h.service.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, notification)
}

func (h *NotificationHandler) MarkUnread(c *gin.Context) {
	notification, err := h.service.MarkUnread(c.Request.Context(), c.Param("id"))
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	ok(c, notification)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	ok(c, gin.H{
		"marked": h.service.MarkAllRead(c.Request.Context()),
		"unread": h.service.UnreadCount(c.Request.Context()),
	})
}
