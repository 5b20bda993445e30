package models

import (
	"time"
)

// Notification kinds
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationAlert   = "alert"
	NotificationSuccess = "success"
)

// Notification model
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
