package api

type AddShoppingItemRequest struct {
	BudgetID       string  `json:"budgetId" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	EstimatedPrice float64 `json:"estimatedPrice" validate:"gt=0"`
	Category       string  `json:"category,omitempty"`
}

type AddShoppingItemResponse struct {
	Item         *ShoppingItem `json:"item"`
	BudgetStatus *BudgetStatus `json:"budgetStatus"`
}

// UpdateShoppingItemRequest changes only the fields that are set.
type UpdateShoppingItemRequest struct {
	ItemID         string   `json:"itemId" validate:"required"`
	Name           *string  `json:"name,omitempty"`
	EstimatedPrice *float64 `json:"estimatedPrice,omitempty"`
	Category       *string  `json:"category,omitempty"`
	IsPurchased    *bool    `json:"isPurchased,omitempty"`
}

type UpdateShoppingItemResponse struct {
	Item         *ShoppingItem `json:"item"`
	BudgetStatus *BudgetStatus `json:"budgetStatus"`
}

type DeleteShoppingItemRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

type DeleteShoppingItemResponse struct {
	BudgetStatus *BudgetStatus `json:"budgetStatus"`
}

// Item list filters.
const (
	FilterAll       = "all"
	FilterActive    = "active"
	FilterPurchased = "purchased"
)

type GetBudgetItemsRequest struct {
	BudgetID string `json:"budgetId" validate:"required"`
	Filter   string `json:"filter,omitempty" validate:"omitempty,oneof=all active purchased"`
}

type GetBudgetItemsResponse struct {
	Items      []*ShoppingItem `json:"items"`
	TotalItems int             `json:"totalItems"`
	// TotalValue is the budget's purchased spend, independent of Filter.
	TotalValue   float64       `json:"totalValue"`
	BudgetStatus *BudgetStatus `json:"budgetStatus"`
}
