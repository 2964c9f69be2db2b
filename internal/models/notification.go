package models

import "time"

// NotificationType classifies a user-facing notification
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationReward  NotificationType = "reward"
)

// Valid reports whether t is one of the known notification types
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationReward:
		return true
	}
	return false
}

// Notification represents an in-app notification. Only Read ever changes.
type Notification struct {
	ID      string           `bson:"id" json:"id"`
	Message string           `bson:"message" json:"message"`
	Date    time.Time        `bson:"date" json:"date"`
	Read    bool             `bson:"read" json:"read"`
	Type    NotificationType `bson:"type" json:"type"`
}

// NotificationEvent is a notification to be appended by the sink
type NotificationEvent struct {
	Message string
	Type    NotificationType
}
