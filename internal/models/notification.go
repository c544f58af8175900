package models

import (
	"encoding/json"
	"time"
)

// TriggerContext records what caused a notification.
type TriggerContext string

const (
	TriggerSystem TriggerContext = "system"
	TriggerUser   TriggerContext = "user"
)

// Valid reports whether c is a known trigger context.
func (c TriggerContext) Valid() bool {
	return c == TriggerSystem || c == TriggerUser
}

// Notification types recorded by the server itself.
const (
	NotificationMemberJoined  = "member_joined"
	NotificationMemberRemoved = "member_removed"
)

// Notification is a per-user message record.
type Notification struct {
	ID       string
	UserID   string
	BudgetID string

	Type  string
	Title string
	Body  string

	// Payload is opaque JSON supplied by the creator.
	Payload json.RawMessage

	Read           bool
	TriggerContext TriggerContext

	CreatedAt time.Time
	ReadAt    *time.Time
}
