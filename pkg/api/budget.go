package api

import "time"

type CreateBudgetRequest struct {
	Name            string     `json:"name" validate:"required"`
	Description     string     `json:"description,omitempty"`
	BudgetAmount    float64    `json:"budgetAmount" validate:"gt=0"`
	BudgetPeriod    string     `json:"budgetPeriod" validate:"required,oneof=weekly monthly custom"`
	CustomPeriodEnd *time.Time `json:"customPeriodEnd,omitempty"`
	IconName        string     `json:"iconName,omitempty"`
	ColorHex        string     `json:"colorHex,omitempty"`
}

type CreateBudgetResponse struct {
	Budget *Budget `json:"budget"`
}

type GetBudgetDetailsRequest struct {
	BudgetID string `json:"budgetId" validate:"required"`
}

// BudgetDetails is a budget with its derived spend figures and members.
type BudgetDetails struct {
	Budget
	TotalSpent         float64   `json:"totalSpent"`
	Remaining          float64   `json:"remaining"`
	PercentageUsed     float64   `json:"percentageUsed"`
	Status             string    `json:"status"`
	DaysRemaining      int       `json:"daysRemaining"`
	ItemCount          int       `json:"itemCount"`
	PurchasedItemCount int       `json:"purchasedItemCount"`
	Members            []*Member `json:"members"`
}

type GetBudgetDetailsResponse struct {
	Budget *BudgetDetails `json:"budget"`
}

// UpdateBudgetRequest changes only the fields that are set. An empty string
// clears description, iconName and colorHex.
type UpdateBudgetRequest struct {
	BudgetID        string     `json:"budgetId" validate:"required"`
	Name            *string    `json:"name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	BudgetAmount    *float64   `json:"budgetAmount,omitempty"`
	BudgetPeriod    *string    `json:"budgetPeriod,omitempty"`
	CustomPeriodEnd *time.Time `json:"customPeriodEnd,omitempty"`
	IconName        *string    `json:"iconName,omitempty"`
	ColorHex        *string    `json:"colorHex,omitempty"`
}

type UpdateBudgetResponse struct {
	Budget *Budget `json:"budget"`
}

type DeleteBudgetRequest struct {
	BudgetID string `json:"budgetId" validate:"required"`
}

type DeleteBudgetResponse struct {
	ItemsDeleted   int      `json:"itemsDeleted"`
	MembersUpdated int      `json:"membersUpdated"`
	FailedMembers  []string `json:"failedMembers,omitempty"`
}

type GetBudgetMembersRequest struct {
	BudgetID string `json:"budgetId" validate:"required"`
}

type GetBudgetMembersResponse struct {
	Members []*Member `json:"members"`
	OwnerID string    `json:"ownerId"`
	Count   int       `json:"count"`
}

type GetMemberExpensesRequest struct {
	BudgetID string `json:"budgetId" validate:"required"`
}

// MemberExpense is one member's purchases within a budget.
type MemberExpense struct {
	UserID     string          `json:"userId"`
	Name       string          `json:"name"`
	Total      float64         `json:"total"`
	ItemCount  int             `json:"itemCount"`
	Percentage float64         `json:"percentage"`
	Items      []*ShoppingItem `json:"items"`
}

type GetMemberExpensesResponse struct {
	Members    []*MemberExpense `json:"members"`
	GrandTotal float64          `json:"grandTotal"`
	TotalItems int              `json:"totalItems"`
}
