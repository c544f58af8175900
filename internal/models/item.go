package models

import "time"

// ShoppingItem is one entry on a budget's shopping list.
//
// PurchasedBy and PurchasedAt are set together when IsPurchased becomes
// true and cleared together when it becomes false.
type ShoppingItem struct {
	ID       string
	BudgetID string

	Name           string
	EstimatedPrice float64
	Category       string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	IsPurchased bool
	PurchasedBy string
	PurchasedAt *time.Time
}
