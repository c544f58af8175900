package api

import (
	"encoding/json"
	"time"
)

type CreateNotificationRequest struct {
	UserID         string          `json:"userId" validate:"required"`
	BudgetID       string          `json:"budgetId,omitempty"`
	Type           string          `json:"type" validate:"required"`
	Title          string          `json:"title" validate:"required"`
	Body           string          `json:"body,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	TriggerContext string          `json:"triggerContext,omitempty" validate:"omitempty,oneof=system user"`
}

type CreateNotificationResponse struct {
	Notification *Notification `json:"notification"`
}

type GetUserNotificationsRequest struct {
	BudgetID   string `json:"budgetId,omitempty"`
	UnreadOnly bool   `json:"unreadOnly,omitempty"`
	Limit      int    `json:"limit,omitempty" validate:"gte=0,lte=500"`
}

type GetUserNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
	Count         int             `json:"count"`
	UnreadCount   int             `json:"unreadCount"`
}

type MarkNotificationAsReadRequest struct {
	NotificationID string `json:"notificationId" validate:"required"`
}

type MarkNotificationAsReadResponse struct {
	NotificationID string    `json:"notificationId"`
	ReadAt         time.Time `json:"readAt"`
}

type DeleteNotificationRequest struct {
	NotificationID string `json:"notificationId" validate:"required"`
}

type DeleteNotificationResponse struct{}

type ClearAllNotificationsRequest struct{}

type ClearAllNotificationsResponse struct {
	DeletedCount int `json:"deletedCount"`
}
