package api

import (
	"encoding/json"
	"time"
)

// User is a user profile.
type User struct {
	ID                 string            `json:"userId"`
	Name               string            `json:"name"`
	Email              string            `json:"email"`
	PhotoURL           string            `json:"photoURL,omitempty"`
	Preferences        map[string]string `json:"preferences,omitempty"`
	BudgetIDs          []string          `json:"budgetIds"`
	LastActiveBudgetID string            `json:"lastActiveBudgetId,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// Member is a budget member's public profile.
type Member struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	PhotoURL string `json:"photoURL,omitempty"`
	IsOwner  bool   `json:"isOwner"`
}

// Budget is a shared budget document.
type Budget struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	BudgetAmount     float64   `json:"budgetAmount"`
	BudgetPeriod     string    `json:"budgetPeriod"`
	OwnerID          string    `json:"ownerId"`
	MemberIDs        []string  `json:"memberIds"`
	CurrentPeriodEnd time.Time `json:"currentPeriodEnd"`
	IconName         string    `json:"iconName,omitempty"`
	ColorHex         string    `json:"colorHex,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BudgetStatus is the spend state returned alongside item mutations.
type BudgetStatus struct {
	TotalSpent float64 `json:"totalSpent"`
	Remaining  float64 `json:"remaining"`
	Exceeded   bool    `json:"exceeded"`
}

// ShoppingItem is one shopping list entry.
type ShoppingItem struct {
	ID             string     `json:"id"`
	BudgetID       string     `json:"budgetId"`
	Name           string     `json:"name"`
	EstimatedPrice float64    `json:"estimatedPrice"`
	Category       string     `json:"category,omitempty"`
	CreatedBy      string     `json:"createdBy"`
	CreatedByName  string     `json:"createdByName,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	IsPurchased    bool       `json:"isPurchased"`
	PurchasedBy    string     `json:"purchasedBy,omitempty"`
	PurchasedAt    *time.Time `json:"purchasedAt,omitempty"`
}

// BudgetSnapshot is a frozen period total.
type BudgetSnapshot struct {
	ID             string    `json:"id"`
	BudgetID       string    `json:"budgetId"`
	BudgetName     string    `json:"budgetName"`
	BudgetAmount   float64   `json:"budgetAmount"`
	BudgetPeriod   string    `json:"budgetPeriod"`
	TotalSpent     float64   `json:"totalSpent"`
	Remaining      float64   `json:"remaining"`
	PercentageUsed float64   `json:"percentageUsed"`
	MemberIDs      []string  `json:"memberIds"`
	MemberCount    int       `json:"memberCount"`
	ItemCount      int       `json:"itemCount"`
	PeriodStart    time.Time `json:"periodStart"`
	PeriodEnd      time.Time `json:"periodEnd"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// Notification is a per-user message.
type Notification struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	BudgetID       string          `json:"budgetId,omitempty"`
	Type           string          `json:"type"`
	Title          string          `json:"title"`
	Body           string          `json:"body,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	Read           bool            `json:"read"`
	TriggerContext string          `json:"triggerContext"`
	CreatedAt      time.Time       `json:"createdAt"`
	ReadAt         *time.Time      `json:"readAt,omitempty"`
}
